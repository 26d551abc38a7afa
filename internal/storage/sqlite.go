package storage

import (
	"context"
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"

	"downtimes/internal/model"
)

type sqliteStore struct {
	baseStore
}

func NewSQLite(dsn string) (Store, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = "file:downtimes.db?_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &sqliteStore{baseStore{db: db}}, nil
}

func (s *sqliteStore) Init(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS downtimes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			captured_at TEXT NOT NULL,
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
			end_epoch INTEGER NOT NULL,
			extras_json TEXT
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

func (s *sqliteStore) SaveSnapshot(ctx context.Context, source string, records []model.Downtime) error {
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
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
