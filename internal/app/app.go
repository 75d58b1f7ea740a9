package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/klinekart/db"
	"github.com/suxatcode/klinekart/db/postgres"
	"github.com/suxatcode/klinekart/graph"
	"github.com/suxatcode/klinekart/layout"
)

type Config struct {
	Production bool `env:"PRODUCTION" envDefault:"false"`
	// Levels are {trace, debug, info, warn, error, fatal, panic}.
	// See github.com/rs/zerolog@v1.19.0/log.go for possible values.
	LogLevel string `env:"LOGLEVEL" envDefault:"info"`
	// MetricsAddr enables the prometheus endpoint when set, e.g. ":9090".
	MetricsAddr string `env:"METRICS_ADDR" envDefault:""`
	// HTTP timeouts (read and write) of the metrics endpoint
	HTTPTimeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
	// LayoutTuningFile is a YAML file overriding the physics constants.
	LayoutTuningFile string `env:"LAYOUT_TUNING_FILE" envDefault:""`
	// ProfileURL is the base the profile paths of clicked users are opened on.
	ProfileURL string `env:"PROFILE_URL" envDefault:"http://localhost:8080"`
}

func GetEnvConfig() Config {
	conf := Config{}
	env.Parse(&conf)
	return conf
}

func SetupLogging(conf Config) {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		println("failed to parse LogLevel: '" + conf.LogLevel + "', setting to debug")
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if !conf.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// RetryAtIntervals calls fn until it succeeds, sleeping intervals[i] after
// the i-th failure. The last interval repeats. It gives up with the last
// error once ctx is done.
func RetryAtIntervals(ctx context.Context, fn func() error, intervals []time.Duration) error {
	err := fn()
	i := 0
	for err != nil {
		select {
		case <-ctx.Done():
			return errors.Wrap(err, ctx.Err().Error())
		case <-time.After(intervals[i]):
		}
		if i < len(intervals)-1 {
			i++
		}
		err = fn()
	}
	return nil
}

var connectIntervals = []time.Duration{
	1 * time.Second,
	5 * time.Second,
	5 * time.Second,
	10 * time.Second,
}

// OpenSource returns the association source selected by conf. A postgres
// source is retried until ctx is done.
func OpenSource(ctx context.Context, conf db.Config) (db.Source, error) {
	switch conf.Source {
	case "", "json":
		return db.JSONFile{Path: conf.JSONPath}, nil
	case "postgres":
		var pg *postgres.PostgresDB
		err := RetryAtIntervals(ctx, func() error {
			var err error
			pg, err = postgres.NewPostgresDB(conf)
			if err != nil {
				log.Error().Msgf("failed to connect to DB: %v", err)
			}
			return err
		}, connectIntervals)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	return nil, errors.Errorf("unknown association source '%s'", conf.Source)
}

// LoadGraph reads all associations from source and builds the graph. The
// graph is loaded once, so a source holding a connection is closed here.
func LoadGraph(ctx context.Context, source db.Source) (*graph.Graph, error) {
	if closer, ok := source.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Warn().Msgf("close association source: %v", err)
			}
		}()
	}
	assocs, err := source.Associations(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load associations")
	}
	g := graph.Build(assocs)
	log.Info().Msgf("loaded %d associations: %d users, %d connections, %d islands",
		len(assocs), len(g.Nodes), len(g.Edges), len(g.Islands))
	return g, nil
}

func LayoutConfig(conf Config) (layout.ForceSimulationConfig, error) {
	if conf.LayoutTuningFile == "" {
		return layout.DefaultForceSimulationConfig.ApplyDefaults(), nil
	}
	return layout.LoadConfigFile(conf.LayoutTuningFile)
}
