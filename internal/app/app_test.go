package app

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/suxatcode/klinekart/db"
	"github.com/suxatcode/klinekart/graph"
	"github.com/suxatcode/klinekart/layout"
)

func TestRetryAtIntervals(t *testing.T) {
	for _, test := range []struct {
		Name     string
		Failures int
		ExpCalls int
	}{
		{"immediate success", 0, 1},
		{"success after retries", 3, 4},
	} {
		t.Run(test.Name, func(t *testing.T) {
			calls := 0
			err := RetryAtIntervals(context.Background(), func() error {
				calls++
				if calls <= test.Failures {
					return errors.New("not yet")
				}
				return nil
			}, []time.Duration{time.Millisecond, 2 * time.Millisecond})
			assert := assert.New(t)
			assert.NoError(err)
			assert.Equal(test.ExpCalls, calls)
		})
	}
}

func TestRetryAtIntervals_cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := RetryAtIntervals(ctx, func() error {
		calls++
		return errors.New("connection refused")
	}, []time.Duration{time.Hour})
	assert := assert.New(t)
	assert.ErrorContains(err, "connection refused")
	assert.Equal(1, calls)
}

func TestOpenSource(t *testing.T) {
	ctx := context.Background()
	source, err := OpenSource(ctx, db.Config{Source: "json", JSONPath: "assocs.json"})
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(db.JSONFile{Path: "assocs.json"}, source)

	_, err = OpenSource(ctx, db.Config{Source: "arango"})
	assert.ErrorContains(err, "unknown association source")
}

type staticSource struct {
	assocs []graph.Association
	err    error
}

func (s staticSource) Associations(ctx context.Context) ([]graph.Association, error) {
	return s.assocs, s.err
}

func TestLoadGraph(t *testing.T) {
	ctx := context.Background()
	g, err := LoadGraph(ctx, staticSource{assocs: []graph.Association{
		{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}},
		{{ID: 3, Name: "c"}, {ID: 3, Name: "c"}},
	}})
	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(g.Nodes, 3)
	assert.Len(g.Edges, 1)
	assert.Len(g.Islands, 2)

	_, err = LoadGraph(ctx, staticSource{err: errors.New("boom")})
	assert.ErrorContains(err, "boom")
}

type closingSource struct {
	staticSource
	closed int
}

func (s *closingSource) Close() error {
	s.closed++
	return nil
}

func TestLoadGraph_closesSource(t *testing.T) {
	ctx := context.Background()
	assert := assert.New(t)
	source := &closingSource{staticSource: staticSource{assocs: []graph.Association{
		{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}},
	}}}
	_, err := LoadGraph(ctx, source)
	assert.NoError(err)
	assert.Equal(1, source.closed)

	failing := &closingSource{staticSource: staticSource{err: errors.New("boom")}}
	_, err = LoadGraph(ctx, failing)
	assert.Error(err)
	assert.Equal(1, failing.closed)
}

func TestLayoutConfig(t *testing.T) {
	assert := assert.New(t)
	conf, err := LayoutConfig(Config{})
	assert.NoError(err)
	assert.Equal(layout.DefaultForceSimulationConfig.Equilibrium, conf.Equilibrium)

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	assert.NoError(os.WriteFile(path, []byte("equilibrium: 200\ndamping: 0.2\n"), 0o644))
	conf, err = LayoutConfig(Config{LayoutTuningFile: path})
	assert.NoError(err)
	assert.Equal(200.0, conf.Equilibrium)
	assert.Equal(0.2, conf.Damping)
	assert.Equal(layout.DefaultForceSimulationConfig.SpringCoefficient, conf.SpringCoefficient)

	_, err = LayoutConfig(Config{LayoutTuningFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(err)
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "klinekart_test_total"})
	reg.MustRegister(counter)
	counter.Add(3)

	s := httptest.NewServer(MetricsHandler(reg))
	defer s.Close()
	r, err := s.Client().Get(s.URL + "/metrics")
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	assert.NoError(err)
	assert.Contains(string(data), "klinekart_test_total 3")
}
