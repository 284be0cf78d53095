// Package web serves the trade ledger and period performance reports as
// CSV downloads. The ledger is reloaded from the trade export on every
// request so the served data always reflects the file on disk.
package web

import (
	"context"
	"fmt"
	"net/http"

	"tradeTools/internal/domain"
	"tradeTools/internal/ports"
	"tradeTools/internal/render"
	"tradeTools/internal/report"
)

// LedgerLoader loads the current trade ledger.
type LedgerLoader interface {
	Load(ctx context.Context) (*domain.Ledger, error)
}

// Config holds configuration for the report server.
type Config struct {
	Addr          string
	Loader        LedgerLoader
	DefaultPeriod report.PeriodType
	Logger        ports.Logger
}

// Server serves the trade CSV reports over HTTP.
type Server struct {
	addr          string
	loader        LedgerLoader
	defaultPeriod report.PeriodType
	logger        ports.Logger
	mux           *http.ServeMux
}

// NewServer creates the report server and registers its routes.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for report server")
	}
	if cfg.Loader == nil {
		return nil, fmt.Errorf("ledger loader is required for report server")
	}
	defaultPeriod := cfg.DefaultPeriod
	if defaultPeriod == "" {
		defaultPeriod = report.PeriodMonth
	}

	s := &Server{
		addr:          cfg.Addr,
		loader:        cfg.Loader,
		defaultPeriod: defaultPeriod,
		logger:        cfg.Logger,
		mux:           http.NewServeMux(),
	}
	s.mux.HandleFunc("/OrderClerkTrades.csv", s.handleTradeDetails)
	s.mux.HandleFunc("/PeriodPerformance.csv", s.handlePeriodPerformance)
	return s, nil
}

// Handler returns the server's HTTP handler, useful for testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start runs the HTTP server until it fails or the listener is closed.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "Report server starting", map[string]interface{}{"addr": s.addr})
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) loadLedger(w http.ResponseWriter, r *http.Request) *domain.Ledger {
	ledger, err := s.loader.Load(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), err, "Failed to load trade ledger")
		http.Error(w, "No data available", http.StatusNotFound)
		return nil
	}
	return ledger
}

// handleTradeDetails streams the full trade list with derived columns.
func (s *Server) handleTradeDetails(w http.ResponseWriter, r *http.Request) {
	ledger := s.loadLedger(w, r)
	if ledger == nil {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	if err := render.WriteTradeDetails(w, ledger.Trades()); err != nil {
		s.logger.Error(r.Context(), err, "Failed to stream trade details")
	}
}

// handlePeriodPerformance streams the (period, strategy) aggregation. The
// roll-up is selectable per request via ?period=Day|Week|Month.
func (s *Server) handlePeriodPerformance(w http.ResponseWriter, r *http.Request) {
	periodType := s.defaultPeriod
	if raw := r.URL.Query().Get("period"); raw != "" {
		parsed, err := report.ParsePeriodType(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		periodType = parsed
	}

	ledger := s.loadLedger(w, r)
	if ledger == nil {
		return
	}

	perf := report.NewPeriodPerformance(ledger, periodType)
	w.Header().Set("Content-Type", "text/csv")
	if err := render.WritePerformance(w, perf.Rows()); err != nil {
		s.logger.Error(r.Context(), err, "Failed to stream period performance")
	}
}
