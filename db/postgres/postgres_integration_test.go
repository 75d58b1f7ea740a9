//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/suxatcode/klinekart/db"
	"github.com/suxatcode/klinekart/graph"
)

var testConfig = func() db.Config {
	conf := db.GetEnvConfig()
	conf.PGHost = "localhost"
	return conf
}()

func setupDB(t *testing.T) *PostgresDB {
	assert := assert.New(t)
	pg, err := NewPostgresDB(testConfig)
	assert.NoError(err)
	pg.db.Exec(`DROP TABLE IF EXISTS associations CASCADE`)
	pg.db.Exec(`DROP TABLE IF EXISTS users CASCADE`)
	assert.NoError(pg.Close())
	pg, err = NewPostgresDB(testConfig)
	assert.NoError(err)
	t.Cleanup(func() { pg.Close() })
	return pg
}

func TestPostgresDB_NewPostgresDB(t *testing.T) {
	assert := assert.New(t)
	pg, err := NewPostgresDB(testConfig)
	assert.NoError(err)
	assert.NoError(pg.Close())
}

func TestPostgresDB_CreateAssociations(t *testing.T) {
	pg := setupDB(t)
	ctx := context.Background()
	assert := assert.New(t)
	a := graph.User{ID: 1, Name: "a", Img: "a.png"}
	b := graph.User{ID: 2, Name: "b"}
	c := graph.User{ID: -3, Name: "c"}
	assert.NoError(pg.CreateAssociations(ctx, []graph.Association{{a, b}, {b, c}}))

	renamed := graph.User{ID: 2, Name: "bee"}
	assert.NoError(pg.CreateAssociations(ctx, []graph.Association{{a, renamed}}), "known pair is skipped")

	assocs, err := pg.Associations(ctx)
	assert.NoError(err)
	assert.Equal([]graph.Association{{a, renamed}, {renamed, c}}, assocs)
}

func TestPostgresDB_CreateAssociations_selfPair(t *testing.T) {
	pg := setupDB(t)
	ctx := context.Background()
	assert := assert.New(t)
	lone := graph.User{ID: 9, Name: "lone"}
	assert.NoError(pg.CreateAssociations(ctx, []graph.Association{{lone, lone}}))
	assocs, err := pg.Associations(ctx)
	assert.NoError(err)
	assert.Equal([]graph.Association{{lone, lone}}, assocs)
}

func TestPostgresDB_Associations_empty(t *testing.T) {
	pg := setupDB(t)
	assocs, err := pg.Associations(context.Background())
	assert := assert.New(t)
	assert.NoError(err)
	assert.Empty(assocs)
}
