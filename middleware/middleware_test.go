package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestAddLogging(t *testing.T) {
	logBuffer := bytes.NewBuffer([]byte{})
	original := log.Logger
	log.Logger = zerolog.New(logBuffer).Level(zerolog.DebugLevel).With().Str("test", "test").Logger()
	t.Cleanup(func() { log.Logger = original })

	called := false
	next := http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			called = true
			log.Ctx(r.Context()).Info().Msg("AAA")
			w.WriteHeader(http.StatusTeapot)
		},
	)
	handler := AddLogging(next)
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert := assert.New(t)
	assert.True(called, "middleware handler must call next handler")
	assert.Equal(http.StatusTeapot, rec.Code)
	assert.Contains(logBuffer.String(), `"level":"info","test":"test","path":"/metrics"`)
	assert.Contains(logBuffer.String(), `AAA`)
	assert.Contains(logBuffer.String(), `"status":418`)
}
