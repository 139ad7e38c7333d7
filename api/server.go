package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gregtusar/paper-dashboard/pkg/dashboard"
	"github.com/gregtusar/paper-dashboard/pkg/normalize"
	"github.com/gregtusar/paper-dashboard/pkg/session"
	"github.com/sirupsen/logrus"
)

const maxOrderLimit = 500

type ctxKey int

const requestIDKey ctxKey = iota

type Server struct {
	registry *session.Registry
	loader   *dashboard.Loader
	tokens   *TokenIssuer
	logger   *logrus.Logger
	http     *http.Server
}

// NewServer wires the dashboard API. A nil tokens disables bearer auth.
func NewServer(registry *session.Registry, loader *dashboard.Loader, tokens *TokenIssuer, logger *logrus.Logger, port int) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Server{
		registry: registry,
		loader:   loader,
		tokens:   tokens,
		logger:   logger,
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed API with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/accounts", s.handleAccounts)
	mux.HandleFunc("GET /api/accounts/{label}/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/accounts/{label}/balance", s.handleBalance)
	mux.HandleFunc("GET /api/accounts/{label}/positions", s.handlePositions)
	mux.HandleFunc("GET /api/accounts/{label}/orders", s.handleOrders)
	mux.HandleFunc("GET /api/accounts/{label}/history", s.handleHistory)

	return s.requestMiddleware(corsMiddleware(s.authMiddleware(mux)))
}

func (s *Server) Start() error {
	s.logger.Infof("Starting API server on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestMiddleware tags every request with an ID and logs its outcome.
func (s *Server) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, id))

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.entry(r).WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Debug("Handled request")
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *Server) entry(r *http.Request) *logrus.Entry {
	return s.logger.WithField("request_id", requestID(r.Context()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"accounts": s.registry.Status(),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	days, ok := s.queryInt(w, r, "days", 0, 1, 0)
	if !ok {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	view, err := s.loader.WithHistoryDays(days).Load(r.Context(), sess.Label(), sess)
	if err != nil {
		var accErr *dashboard.AccountError
		if errors.As(err, &accErr) {
			s.writeError(w, r, http.StatusBadGateway, accErr.Error())
			return
		}
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	account, err := sess.FetchAccount(r.Context())
	if err != nil {
		s.entry(r).WithError(err).WithField("account", sess.Label()).Error("Failed to fetch account")
		s.writeError(w, r, http.StatusBadGateway, (&dashboard.AccountError{Label: sess.Label(), Err: err}).Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"label":   sess.Label(),
		"account": account,
		"balance": normalize.Metrics(account),
	})
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	rows, err := sess.FetchPositions(r.Context())
	writeResult(s, w, r, sess.Label(), "active positions", rows, err)
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	q := s.loader.Query()

	status := q.OrderStatus
	if v := r.URL.Query().Get("status"); v != "" {
		switch v {
		case "open", "closed", "all":
			status = v
		default:
			s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("status must be open, closed or all, got %q", v))
			return
		}
	}
	limit, ok := s.queryInt(w, r, "limit", q.OrderLimit, 1, maxOrderLimit)
	if !ok {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	rows, err := sess.FetchOrders(r.Context(), status, limit)
	writeResult(s, w, r, sess.Label(), "order history", rows, err)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := s.loader.Query()

	days, ok := s.queryInt(w, r, "days", q.HistoryDays, 1, 0)
	if !ok {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	points, err := sess.FetchPortfolioHistory(r.Context(), q.Timeframe, days)
	writeResult(s, w, r, sess.Label(), "portfolio history", points, err)
}

// session resolves the {label} path value, writing 404 for labels that were
// never configured and 503 for accounts whose session failed to build.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	label := strings.ToUpper(r.PathValue("label"))

	sess, err := s.registry.Get(label)
	if err != nil {
		if errors.Is(err, session.ErrUnknownAccount) {
			s.writeError(w, r, http.StatusNotFound, err.Error())
			return nil, false
		}
		s.writeError(w, r, http.StatusServiceUnavailable, err.Error())
		return nil, false
	}
	return sess, true
}

// queryInt parses an optional integer query parameter. hi <= 0 means
// unbounded.
func (s *Server) queryInt(w http.ResponseWriter, r *http.Request, name string, def, lo, hi int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || (hi > 0 && n > hi) {
		msg := fmt.Sprintf("%s must be an integer >= %d", name, lo)
		if hi > 0 {
			msg = fmt.Sprintf("%s must be an integer between %d and %d", name, lo, hi)
		}
		s.writeError(w, r, http.StatusBadRequest, msg)
		return 0, false
	}
	return n, true
}

func writeResult[T any](s *Server, w http.ResponseWriter, r *http.Request, label, what string, data []T, err error) {
	if err != nil {
		s.entry(r).WithError(err).WithField("account", label).Errorf("Failed to fetch %s", what)
		s.writeJSON(w, http.StatusBadGateway, dashboard.Failed[T](fmt.Errorf("Error fetching %s: %w", what, err)))
		return
	}
	s.writeJSON(w, http.StatusOK, dashboard.Succeeded(data))
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, status, map[string]string{
		"error":      msg,
		"request_id": requestID(r.Context()),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("Failed to encode JSON response")
	}
}
