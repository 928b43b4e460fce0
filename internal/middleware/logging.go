package middleware

import (
	"net/http"
	"time"

	"github.com/mwarren/todoapp/internal/logger"
)

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// Logging logs one line per request: method, path, status, duration.
func Logging(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			if rec.statusCode >= 500 {
				log.Error("%s %s %d %s", r.Method, r.URL.Path, rec.statusCode, duration)
			} else if rec.statusCode >= 400 {
				log.Warn("%s %s %d %s", r.Method, r.URL.Path, rec.statusCode, duration)
			} else {
				log.Info("%s %s %d %s", r.Method, r.URL.Path, rec.statusCode, duration)
			}
		})
	}
}
