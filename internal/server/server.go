// Package server implements the HTTP API of the application: harmonic
// partial sums over GET /api/v1/sum, a liveness probe, and a Prometheus
// metrics endpoint, wrapped in security and instrumentation middleware.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/harmcalc/internal/errors"

	"github.com/agbru/harmcalc/internal/config"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/logging"
)

const (
	// ShutdownGracePeriod bounds how long in-flight requests may run after
	// the server is asked to stop.
	ShutdownGracePeriod = 10 * time.Second

	// ReadHeaderTimeout bounds how long a client may take to send request
	// headers. Summation responses can be slow; reading a GET line cannot.
	ReadHeaderTimeout = 5 * time.Second

	// MaxTasksPerRequest caps the tasks query parameter. Every task costs a
	// block descriptor and a pool slot, so remote callers do not get to pick
	// arbitrarily large values.
	MaxTasksPerRequest = 1024
)

// Server serves the harmonic sum API.
type Server struct {
	addr     string
	timeout  time.Duration
	security SecurityConfig
	metrics  *Metrics
	logger   logging.Logger
	factory  harmonic.SummerFactory

	httpServer *http.Server
}

// New creates a Server bound to addr. Each summation request runs under
// timeout; the factory provides the engines selectable via the algo query
// parameter.
func New(addr string, timeout time.Duration, factory harmonic.SummerFactory, logger logging.Logger) *Server {
	return &Server{
		addr:     addr,
		timeout:  timeout,
		security: DefaultSecurityConfig(),
		metrics:  NewMetrics(),
		logger:   logger,
		factory:  factory,
	}
}

// Start runs the server until ctx is canceled, then drains in-flight
// requests within ShutdownGracePeriod. It returns nil after a clean
// shutdown.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", logging.String("addr", s.addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownGracePeriod)
		defer cancel()
		s.logger.Info("HTTP server shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// registerRoutes wires the endpoints. The API route carries the full
// middleware chain; the probe and metrics endpoints stay outside it so a
// scrape never shows up in its own request counters.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/sum",
		SecurityMiddleware(s.security, s.metricsMiddleware(s.loggingMiddleware(s.handleSum))))
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/metrics", s.handleMetrics)
}

// metricsMiddleware tracks the in-flight gauge, the request counter, and the
// latency histogram around next.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		start := time.Now()
		next(w, r)
		s.metrics.RecordRequest(time.Since(start))
	}
}

// loggingMiddleware emits one structured log line per request.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.logger.Info("request served",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("remote", r.RemoteAddr),
			logging.Dur("duration", time.Since(start)),
		)
	}
}

// sumResponse is the JSON body of a successful summation request.
type sumResponse struct {
	N        uint64  `json:"n"`
	Tasks    int     `json:"tasks"`
	Algo     string  `json:"algo"`
	Value    float64 `json:"value"`
	Elapsed  string  `json:"elapsed"`
	Estimate float64 `json:"estimate"`
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// handleSum computes H(n) for the requested bound and algorithm.
//
// Query parameters:
//   - n: Upper summation bound, required, 1 <= n <= MaxNValue.
//   - tasks: Number of parallel tasks, optional; 0 or absent selects the
//     adaptive default.
//   - algo: Engine name, optional; defaults to "parallel".
func (s *Server) handleSum(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	n, err := strconv.ParseUint(r.URL.Query().Get("n"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "parameter n must be a positive integer")
		return
	}
	if n < 1 {
		s.writeError(w, http.StatusBadRequest, "parameter n must be at least 1")
		return
	}
	if n > s.security.MaxNValue {
		s.writeError(w, http.StatusBadRequest,
			"parameter n exceeds the maximum of "+strconv.FormatUint(s.security.MaxNValue, 10))
		return
	}

	tasks := 0
	if raw := r.URL.Query().Get("tasks"); raw != "" {
		tasks, err = strconv.Atoi(raw)
		if err != nil || tasks < 0 {
			s.writeError(w, http.StatusBadRequest, "parameter tasks must be a non-negative integer")
			return
		}
		if tasks > MaxTasksPerRequest {
			s.writeError(w, http.StatusBadRequest,
				"parameter tasks exceeds the maximum of "+strconv.Itoa(MaxTasksPerRequest))
			return
		}
	}
	if tasks == 0 {
		tasks = config.EstimateOptimalTasks()
	}

	algo := r.URL.Query().Get("algo")
	if algo == "" {
		algo = "parallel"
	}
	summer, err := s.factory.Get(algo)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	start := time.Now()
	value, err := summer.Sum(ctx, nil, 0, n, harmonic.Options{Tasks: tasks})
	elapsed := time.Since(start)
	if err != nil {
		if apperrors.IsContextError(err) {
			s.writeError(w, http.StatusGatewayTimeout, "summation timed out")
			return
		}
		s.logger.Error("summation failed", err, logging.Uint64("n", n), logging.String("algo", algo))
		s.writeError(w, http.StatusInternalServerError, "summation failed")
		return
	}

	s.metrics.RecordSummation(algo, n, elapsed)
	s.writeJSON(w, http.StatusOK, sumResponse{
		N:        n,
		Tasks:    tasks,
		Algo:     algo,
		Value:    value,
		Elapsed:  elapsed.String(),
		Estimate: harmonic.Estimate(n),
	})
}

// handleHealthz answers liveness probes.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics serves the Prometheus exposition. Only GET is allowed.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// writeJSON writes v as the JSON response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encoding failed", err)
	}
}

// writeError writes a JSON error body with the given status.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
