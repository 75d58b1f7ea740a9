package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// AddLogging attaches a request scoped logger to the context and logs every
// request once it was served.
func AddLogging(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := log.With().Str("path", r.URL.Path).Str("remote", r.RemoteAddr).Logger()
		r = r.WithContext(logger.WithContext(r.Context()))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug().Int("status", rec.status).Dur("took", time.Since(start)).Msgf("%s %s", r.Method, r.URL.Path)
	}
	return http.HandlerFunc(fn)
}
