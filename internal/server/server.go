// Package server exposes the prediction action over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"calorieburn/internal/analysis"
	"calorieburn/internal/config"
	"calorieburn/internal/input"
	"calorieburn/internal/report"
	"calorieburn/internal/service"
)

// ShutdownTimeout bounds how long in-flight requests may run after the
// context is cancelled
const ShutdownTimeout = 5 * time.Second

// Server serves predictions and report downloads
type Server struct {
	svc      *service.PredictionService
	defaults config.DefaultsConfig
	addr     string
	origins  []string
	logger   logr.Logger
}

// New creates a server around a prediction service
func New(svc *service.PredictionService, cfg *config.Config, logger logr.Logger) *Server {
	return &Server{
		svc:      svc,
		defaults: cfg.Defaults,
		addr:     cfg.Server.Addr,
		origins:  cfg.Server.AllowedOrigins,
		logger:   logger.WithName("http"),
	}
}

// Handler returns the routed handler wrapped in CORS and request logging
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	// registered on the root router so a wrong method answers 405, not 404
	r.HandleFunc("/api/v1/predict", s.predict).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/report", s.report).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Disposition"},
	})

	return c.Handler(s.loggingMiddleware(r))
}

// Run listens on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	s.logger.Info("server listening", "addr", listener.Addr().String())

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	res, ok := s.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	res, ok := s.run(w, r)
	if !ok {
		return
	}

	data, err := res.Report.CSV()
	if err != nil {
		s.logger.Error(err, "encoding report")
		writeError(w, http.StatusInternalServerError, "could not encode report")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// run decodes a request into a fresh session and predicts on it
func (s *Server) run(w http.ResponseWriter, r *http.Request) (*service.Result, bool) {
	var req PredictRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return nil, false
	}

	sess, err := req.session(s.defaults, s.logger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	res, err := s.svc.Predict(sess)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return res, true
}

// PredictRequest carries any subset of the inputs; absent fields use the
// configured defaults
type PredictRequest struct {
	Gender      *string  `json:"gender,omitempty"`
	Age         *float64 `json:"age,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Duration    *float64 `json:"duration,omitempty"`
	HeartRate   *float64 `json:"heart_rate,omitempty"`
	BodyTemp    *float64 `json:"body_temp,omitempty"`
	CalorieGoal *float64 `json:"calorie_goal,omitempty"`
}

func (req PredictRequest) session(defaults config.DefaultsConfig, logger logr.Logger) (*input.Session, error) {
	gender := defaults.GenderValue()
	if req.Gender != nil {
		g, err := analysis.ParseGender(*req.Gender)
		if err != nil {
			return nil, err
		}
		gender = g
	}

	sess := input.NewSession(defaults.Map(), gender, logger)

	values := map[string]*float64{
		input.KeyAge:         req.Age,
		input.KeyHeight:      req.Height,
		input.KeyWeight:      req.Weight,
		input.KeyDuration:    req.Duration,
		input.KeyHeartRate:   req.HeartRate,
		input.KeyBodyTemp:    req.BodyTemp,
		input.KeyCalorieGoal: req.CalorieGoal,
	}
	for _, f := range input.Fields {
		v := values[f.Key]
		if v == nil {
			continue
		}
		// the session trusts its controls, so range checks happen here
		if !f.Contains(*v) {
			return nil, fmt.Errorf("%s must be between %v and %v, got %v", f.Key, f.Min, f.Max, *v)
		}
		if err := sess.Sync(f.Key, f.Clamp(*v), input.SourceEntry); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start).String())
	})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
