package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	worth "go-btc-worth"
	"go-btc-worth/calc"
)

// Engine observes the reconciliation state.
type Engine interface {
	Snapshot() calc.Snapshot
}

// Scheduler exposes and changes the refresh loop's selected input.
type Scheduler interface {
	Input() calc.Input
	SetInput(calc.Input)
}

// Server dependencies for HTTP Server functions
type Server struct {
	Engine    Engine
	Scheduler Scheduler

	logger log.Logger
	router *http.ServeMux

	// now injectable clock for tests
	now func() time.Time
}

func NewServer(engine Engine, scheduler Scheduler, logger log.Logger) *Server {
	server := &Server{
		Engine:    engine,
		Scheduler: scheduler,
		logger:    logger,
		router:    http.NewServeMux(),
		now:       time.Now,
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	s.router.Handle("GET /api/currencies", s.currencies())
	s.router.Handle("GET /api/snapshot", s.snapshot())
	s.router.Handle("GET /api/worth", s.worth())
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok"))
	})
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	defer func(begin time.Time) {
		s.logger.Log(
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"took", time.Since(begin),
		)
	}(time.Now())
	s.router.ServeHTTP(rw, r)
}

// currencies produces an HTTP handler listing the currency catalog
func (s *Server) currencies() http.HandlerFunc {

	// entry for marshalling one catalog currency
	type entry struct {
		Code   string `json:"code"`
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		entries := make([]entry, 0, len(worth.Currencies))
		for _, c := range worth.Currencies {
			entries = append(entries, entry{Code: c.Code, Symbol: c.Symbol, Name: c.Name})
		}
		writeJSON(rw, http.StatusOK, entries)
	}
}

// snapshotResponse for marshalling engine snapshots to clients
type snapshotResponse struct {
	State           string  `json:"state"`
	Currency        string  `json:"currency,omitempty"`
	CurrentPrice    float64 `json:"currentPrice,omitempty"`
	HistoricalPrice float64 `json:"historicalPrice,omitempty"`
	Error           string  `json:"error,omitempty"`
}

func toSnapshotResponse(snapshot calc.Snapshot) snapshotResponse {
	response := snapshotResponse{
		State:    snapshot.State.String(),
		Currency: snapshot.Currency.Code,
		Error:    snapshot.Err,
	}
	if snapshot.State == calc.Ready {
		response.CurrentPrice = float64(snapshot.Current.Price)
		response.HistoricalPrice = float64(snapshot.Historical.Price)
	}
	return response
}

// snapshot produces an HTTP handler exposing the engine state
func (s *Server) snapshot() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		writeJSON(rw, http.StatusOK, toSnapshotResponse(s.Engine.Snapshot()))
	}
}

// worth produces the HTTP handler computing an investment's present worth
func (s *Server) worth() http.HandlerFunc {

	// response for marshalling JSON responses to return to clients
	type response struct {
		State     string  `json:"state"`
		Worth     float64 `json:"worth,omitempty"`
		Formatted string  `json:"formatted,omitempty"`
		Symbol    string  `json:"symbol,omitempty"`
		Error     string  `json:"error,omitempty"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		currency, ok := worth.Lookup(q.Get("currency"))
		if !ok {
			writeJSON(rw, http.StatusBadRequest, response{State: "error", Error: "unknown currency"})
			return
		}

		amount, err := worth.ParseAmount(q.Get("amount"))
		if err != nil {
			writeJSON(rw, http.StatusBadRequest, response{State: "error", Error: err.Error()})
			return
		}

		day, err := time.Parse(time.DateOnly, q.Get("date"))
		if err != nil {
			writeJSON(rw, http.StatusBadRequest, response{State: "error", Error: "invalid date"})
			return
		}
		if err := worth.ValidateDate(day, s.now()); err != nil {
			writeJSON(rw, http.StatusBadRequest, response{State: "error", Error: err.Error()})
			return
		}

		// a new currency or day starts a fresh cycle; the client polls
		// while the engine reloads
		requested := calc.Input{Currency: currency, Date: day}
		if !requested.Equal(s.Scheduler.Input()) {
			s.Scheduler.SetInput(requested)
			writeJSON(rw, http.StatusOK, response{State: calc.Loading.String()})
			return
		}

		snapshot := s.Engine.Snapshot()
		switch snapshot.State {
		case calc.Ready:
			value, err := worth.ComputeWorth(amount, snapshot.Historical.Price, snapshot.Current.Price)
			if err != nil {
				writeJSON(rw, http.StatusOK, response{State: "error", Error: err.Error()})
				return
			}
			writeJSON(rw, http.StatusOK, response{
				State:     snapshot.State.String(),
				Worth:     float64(value),
				Formatted: worth.FormatWorth(value),
				Symbol:    currency.Symbol,
			})
		case calc.Errored:
			writeJSON(rw, http.StatusOK, response{State: snapshot.State.String(), Error: snapshot.Err})
		default:
			writeJSON(rw, http.StatusOK, response{State: calc.Loading.String()})
		}
	}
}

func writeJSON(rw http.ResponseWriter, status int, body any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	enc := json.NewEncoder(rw)
	_ = enc.Encode(body)
}
