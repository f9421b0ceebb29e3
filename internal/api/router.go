package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/gometeo/weatherform/internal/api/handlers"
	"github.com/gometeo/weatherform/internal/web"
)

func NewRouter(h *handlers.WeatherHandler, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", h.Index).Methods(http.MethodGet)
	router.HandleFunc("/", h.Search).Methods(http.MethodPost)
	router.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet)
	router.PathPrefix("/static/").Handler(web.StaticHandler()).Methods(http.MethodGet)

	router.Use(loggingMiddleware(logger))

	return router
}

func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			logger.Info("HTTP запрос",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"user_agent", r.UserAgent(),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// responseWriter records the status code for the request log.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
