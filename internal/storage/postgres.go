package storage

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"downtimes/internal/model"
)

type postgresStore struct {
	baseStore
}

func NewPostgres(dsn string) (Store, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = "postgres://localhost:5432/downtimes?sslmode=disable"
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &postgresStore{baseStore{db: db}}, nil
}

func (s *postgresStore) Init(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS downtimes (
			id BIGSERIAL PRIMARY KEY,
			captured_at TIMESTAMPTZ NOT NULL,
			source TEXT NOT NULL,
			downtime_type TEXT NOT NULL,
			downtime_id TEXT,
			host_name TEXT,
			service_description TEXT,
			author TEXT,
			comment TEXT,
			is_in_effect TEXT,
			entry_time TEXT,
			start_time TEXT,
			end_time TEXT NOT NULL,
			end_epoch BIGINT NOT NULL,
			extras_json JSONB
		)`,
		`CREATE INDEX IF NOT EXISTS idx_downtimes_end_epoch ON downtimes(end_epoch)`,
		`CREATE INDEX IF NOT EXISTS idx_downtimes_captured_at ON downtimes(captured_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *postgresStore) SaveSnapshot(ctx context.Context, source string, records []model.Downtime) error {
	if s.db == nil || len(records) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO downtimes (captured_at, source, downtime_type, downtime_id, host_name, service_description, author, comment, is_in_effect, entry_time, start_time, end_time, end_epoch, extras_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	captured := nowUTC()
	for i := range records {
		rec := &records[i]
		epoch, _ := rec.EndEpoch()
		if _, err := stmt.ExecContext(ctx,
			captured,
			source,
			rec.Type,
			rec.ID,
			rec.HostName,
			rec.ServiceDescription,
			rec.Author,
			rec.Comment,
			rec.IsInEffect,
			rec.EntryTime,
			rec.StartTime,
			rec.EndTime,
			epoch,
			encodeJSON(rec.Extras),
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
