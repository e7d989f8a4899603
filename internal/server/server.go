package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/Tippspiel_Go/internal/bettable"
	"github.com/osse101/Tippspiel_Go/internal/database"
	"github.com/osse101/Tippspiel_Go/internal/engine"
	"github.com/osse101/Tippspiel_Go/internal/handler"
	"github.com/osse101/Tippspiel_Go/internal/logger"
	"github.com/osse101/Tippspiel_Go/internal/metrics"
	"github.com/osse101/Tippspiel_Go/internal/schedule"
	"github.com/osse101/Tippspiel_Go/internal/statistics"
	"github.com/osse101/Tippspiel_Go/internal/user"
)

// Server wires the HTTP surface on top of the services. All mutations of
// betting state route through the propagation engine; the other services
// are read/management surfaces.
type Server struct {
	httpServer        *http.Server
	dbPool            database.Pool
	userService       user.Service
	bettableService   bettable.Service
	engineService     engine.Service
	statisticsService statistics.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, userService user.Service, bettableService bettable.Service, engineService engine.Service, statisticsService statistics.Service, scheduleService schedule.Service, betReader handler.BetReader) *Server {
	r := chi.NewRouter()

	// Middleware stack, outermost first
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(maxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", handler.HandleRegisterUser(userService))
			r.Get("/", handler.HandleListUsers(userService))
			r.Get("/{id}", handler.HandleGetUser(userService))
			r.Get("/{id}/bets", handler.HandleGetUserBets(userService))
			r.Get("/{id}/statistics", handler.HandleGetUserStatistics(statisticsService))
		})

		r.Route("/bettables", func(r chi.Router) {
			r.Post("/", handler.HandleCreateBettable(bettableService))
			r.Get("/", handler.HandleListBettables(bettableService))
			r.Get("/{id}", handler.HandleGetBettable(bettableService))
			r.Delete("/{id}", handler.HandleDeleteBettable(bettableService))
			r.Get("/{id}/bets", handler.HandleGetBettableBets(bettableService))

			// Result writes cascade through the propagation engine
			r.Put("/{id}/result", handler.HandleSetMatchResult(engineService))
			r.Put("/{id}/outcome", handler.HandleSetExtraResult(engineService))
		})

		r.Route("/bets", func(r chi.Router) {
			r.Post("/", handler.HandlePlaceBet(engineService, bettableService))
			r.Put("/{id}", handler.HandleUpdateBet(engineService, bettableService, betReader))
			r.Delete("/{id}", handler.HandleDeleteBet(engineService, bettableService, betReader))
		})

		r.Get("/leaderboard", handler.HandleGetLeaderboard(statisticsService))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/schedule", handler.HandleImportSchedule(scheduleService))
			r.Post("/statistics/{id}/recompute", handler.HandleRecomputeStatistics(statisticsService))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:            dbPool,
		userService:       userService,
		bettableService:   bettableService,
		engineService:     engineService,
		statisticsService: statisticsService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics probes are too chatty to log
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
