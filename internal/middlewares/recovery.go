package middlewares

import (
	"fmt"
	"net/http"

	"github.com/technotes/backend/internal/logger"
	"go.uber.org/zap"
)

// RecoveryMiddleware recovers from panics, logs the error, and records it in the
// error event log
func RecoveryMiddleware(log *zap.Logger, events *logger.EventLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID := GetRequestID(r.Context())
					log.Error("panic recovered",
						zap.String("request_id", requestID),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Any("error", err),
					)
					if events != nil {
						events.Log(fmt.Sprintf("%v\t%s\t%s", err, r.Method, r.URL.Path), "errLog.log")
					}

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"message":"internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
