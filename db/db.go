// Package db supplies the association pairs the graph is built from.
package db

import (
	"context"

	"github.com/caarlos0/env/v6"
	"github.com/suxatcode/klinekart/graph"
)

// Source is anything associations can be loaded from.
type Source interface {
	Associations(ctx context.Context) ([]graph.Association, error)
}

type Config struct {
	// Source is one of {json, postgres}.
	Source   string `env:"KLINEKART_SOURCE" envDefault:"json"`
	JSONPath string `env:"KLINEKART_JSON" envDefault:"-"`

	PGHost     string `env:"DB_POSTGRES_HOST" envDefault:"localhost"`
	PGPort     int    `env:"DB_POSTGRES_PORT" envDefault:"5432"`
	PGUser     string `env:"DB_POSTGRES_USER" envDefault:"klinekart"`
	PGPassword string `env:"DB_POSTGRES_PASSWORD" envDefault:"example"`
	PGDatabase string `env:"DB_POSTGRES_DATABASE" envDefault:"klinekart"`
}

func GetEnvConfig() Config {
	conf := Config{}
	env.Parse(&conf)
	return conf
}
