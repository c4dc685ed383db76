package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pandawok/pos/internal/adapter/logger"
)

func LoggingMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			logger.Debug("http_request", fmt.Sprintf("%s %s", r.Method, r.URL.Path), requestID, map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			next.ServeHTTP(w, r)

			duration := time.Since(start)
			logger.Debug("http_response", "Request completed", requestID, map[string]interface{}{
				"duration_ms": duration.Milliseconds(),
			})
		})
	}
}

func RecoveryMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic_recovered", "Panic recovered", "", nil, fmt.Errorf("%v", err))
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}
