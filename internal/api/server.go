package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"downtimes/internal/annotate"
	"downtimes/internal/config"
	"downtimes/internal/model"
	"downtimes/internal/report"
	"downtimes/internal/retention"
)

type Server struct {
	cfg     *config.Manager
	logger  *slog.Logger
	version string

	mu       sync.Mutex
	modTime  time.Time
	cached   []model.Downtime
	cachedAt time.Time
}

type statusResponse struct {
	Status        string `json:"status"`
	Time          string `json:"time"`
	Version       string `json:"version"`
	ConfigPath    string `json:"config_path"`
	RetentionPath string `json:"retention_path"`
	RecordCount   int    `json:"record_count"`
	ParsedAt      string `json:"parsed_at,omitempty"`
}

func Start(ctx context.Context, cfg *config.Manager, logger *slog.Logger, version string) *http.Server {
	if cfg == nil {
		return nil
	}
	current := cfg.Get().API
	if !current.Enabled {
		if logger != nil {
			logger.Info("api disabled")
		}
		return nil
	}
	if logger != nil {
		logger.Info("api enabled", "addr", current.Addr)
	}
	server := &Server{cfg: cfg, logger: logger, version: version}
	mux := http.NewServeMux()
	mux.HandleFunc("/downtimes", server.handleDowntimes)
	mux.HandleFunc("/status", server.handleStatus)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	httpServer := &http.Server{Addr: current.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctxShutdown)
	}()
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Error("api server error", "err", err)
			}
		}
	}()
	return httpServer
}

// snapshot re-parses the retention file only when its mtime moved.
func (s *Server) snapshot() ([]model.Downtime, time.Time, error) {
	cfg := s.cfg.Get()
	path := cfg.Retention.Path

	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("stat retention file: %w", err)
	}
	if !info.ModTime().After(s.modTime) && s.cached != nil {
		return s.cached, s.cachedAt, nil
	}
	records, err := retention.ParseFile(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	annotate.All(records, annotate.Location(cfg.Retention.Timezone))
	report.Sort(records)
	s.cached = records
	s.modTime = info.ModTime()
	s.cachedAt = time.Now().UTC()
	if s.logger != nil {
		s.logger.Info("retention file parsed", "path", path, "records", len(records))
	}
	return records, s.cachedAt, nil
}

func (s *Server) handleDowntimes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	records, _, err := s.snapshot()
	if err != nil {
		if s.logger != nil {
			s.logger.Error("snapshot error", "err", err)
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	columns := report.ColumnsFromConfig(s.cfg.Get().Report.Columns)
	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, map[string]any{
			"downtimes": records,
			"count":     len(records),
		})
	case "tab":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_ = report.RenderTab(w, columns, records)
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		_ = report.RenderCSV(w, columns, records)
	case "table":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_ = report.RenderTable(w, columns, records)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	cfg := s.cfg.Get()
	s.mu.Lock()
	count := len(s.cached)
	parsedAt := s.cachedAt
	s.mu.Unlock()
	resp := statusResponse{
		Status:        "ok",
		Time:          time.Now().UTC().Format(time.RFC3339Nano),
		Version:       s.version,
		ConfigPath:    s.cfg.Path(),
		RetentionPath: cfg.Retention.Path,
		RecordCount:   count,
	}
	if !parsedAt.IsZero() {
		resp.ParsedAt = parsedAt.Format(time.RFC3339Nano)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
