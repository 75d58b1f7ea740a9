package app

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/klinekart/middleware"
)

func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return middleware.AddLogging(mux)
}

// ServeMetrics serves the prometheus endpoint on conf.MetricsAddr until ctx
// is done.
func ServeMetrics(ctx context.Context, conf Config, gatherer prometheus.Gatherer) error {
	server := http.Server{
		Addr:         conf.MetricsAddr,
		Handler:      MetricsHandler(gatherer),
		ReadTimeout:  conf.HTTPTimeout,
		WriteTimeout: conf.HTTPTimeout,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.Shutdown(shutdown)
	}()
	log.Info().Msgf("serving metrics on http://%s/metrics", conf.MetricsAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "metrics server")
	}
	return nil
}
