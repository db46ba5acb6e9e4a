package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/kcalvin/solarsizer/internal/logging"
)

// requestIDHeader is read from and echoed to the client.
const requestIDHeader = "X-Request-Id"

// requestLogger attaches a trace ID and a request-scoped logger to the
// context and logs each completed request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		traceID := r.Header.Get(requestIDHeader)
		if traceID == "" {
			traceID = logging.NewID()
		}
		logger := s.logger.With().Str(logging.TraceIDField, traceID).Logger()

		ctx := logging.ContextWithTraceID(r.Context(), traceID)
		ctx = logger.WithContext(ctx)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set(requestIDHeader, traceID)

		next.ServeHTTP(ww, r.WithContext(ctx))

		evt := logger.Info()
		if ww.Status() >= http.StatusInternalServerError {
			evt = logger.Warn()
		}
		evt.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Msg("request completed")
	})
}
