package middlewares

import (
	"fmt"
	"net/http"
	"time"

	"github.com/technotes/backend/internal/logger"
	"go.uber.org/zap"
)

// LoggerMiddleware logs HTTP requests with request ID and records each inbound
// request in the append-only request event log before it is handled
func LoggerMiddleware(log *zap.Logger, events *logger.EventLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			if events != nil {
				events.Log(fmt.Sprintf("%s\t%s\t%s", r.Method, r.URL.String(), r.Header.Get("Origin")), "reqLog.log")
			}

			// Wrap response writer to capture status code
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			requestID := GetRequestID(r.Context())

			log.Info("HTTP request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.statusCode),
				zap.Duration("duration", duration),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
