// Package avatar fetches and decodes the profile images of users in the
// background. Nodes are drawn as placeholders until their image arrived.
package avatar

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type Config struct {
	Concurrency       int           `env:"AVATAR_CONCURRENCY" envDefault:"8"`
	RequestsPerSecond float64       `env:"AVATAR_REQUESTS_PER_SECOND" envDefault:"20"`
	Timeout           time.Duration `env:"AVATAR_TIMEOUT" envDefault:"10s"`
	// MaxBytes limits the size of a single image download.
	MaxBytes int64 `env:"AVATAR_MAX_BYTES" envDefault:"5242880"`
	Disabled bool  `env:"AVATAR_DISABLED" envDefault:"false"`
}

func GetEnvConfig() Config {
	conf := Config{}
	env.Parse(&conf)
	return conf
}

var DefaultConfig = Config{
	Concurrency:       8,
	RequestsPerSecond: 20,
	Timeout:           10 * time.Second,
	MaxBytes:          5 << 20,
}

// Store holds the decoded images by source. It is safe for concurrent use:
// fetch goroutines write, the render loop reads.
type Store struct {
	conf    Config
	client  *http.Client
	limiter *rate.Limiter

	mu     sync.RWMutex
	images map[string]image.Image
	failed map[string]error
}

func NewStore(conf Config, client *http.Client) *Store {
	if conf.Concurrency <= 0 {
		conf.Concurrency = DefaultConfig.Concurrency
	}
	if conf.RequestsPerSecond <= 0 {
		conf.RequestsPerSecond = DefaultConfig.RequestsPerSecond
	}
	if conf.MaxBytes <= 0 {
		conf.MaxBytes = DefaultConfig.MaxBytes
	}
	if conf.Timeout <= 0 {
		conf.Timeout = DefaultConfig.Timeout
	}
	if client == nil {
		client = &http.Client{Timeout: conf.Timeout}
	}
	return &Store{
		conf:    conf,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(conf.RequestsPerSecond), conf.Concurrency),
		images:  map[string]image.Image{},
		failed:  map[string]error{},
	}
}

// Get returns the image for src once it has been loaded.
func (s *Store) Get(src string) (image.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[src]
	return img, ok
}

// Err returns the error of a failed fetch of src, if any.
func (s *Store) Err(src string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failed[src]
}

func (s *Store) Loaded() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// Put stores an already decoded image.
func (s *Store) Put(src string, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[src] = img
	delete(s.failed, src)
}

func (s *Store) fail(src string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed[src] = err
}

// FetchAll loads every distinct source. A single broken image is logged and
// recorded, it does not stop the others. Only cancellation of ctx is
// returned as an error.
func (s *Store) FetchAll(ctx context.Context, sources []string) error {
	if s.conf.Disabled {
		return nil
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.conf.Concurrency)
	seen := map[string]bool{}
	for _, src := range sources {
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		if _, ok := s.Get(src); ok {
			continue
		}
		src := src
		g.Go(func() error {
			if err := s.limiter.Wait(gCtx); err != nil {
				return errors.Wrap(err, "avatar fetch cancelled")
			}
			img, err := s.Fetch(gCtx, src)
			if err != nil {
				if gCtx.Err() != nil {
					return errors.Wrap(gCtx.Err(), "avatar fetch cancelled")
				}
				log.Warn().Err(err).Msgf("avatar %s not loaded", src)
				s.fail(src, err)
				return nil
			}
			s.Put(src, img)
			return nil
		})
	}
	err := g.Wait()
	log.Debug().Msgf("avatars: %d of %d loaded", s.Loaded(), len(seen))
	return err
}

// Start runs FetchAll in the background.
func (s *Store) Start(ctx context.Context, sources []string) {
	go func() {
		if err := s.FetchAll(ctx, sources); err != nil {
			log.Debug().Err(err).Msg("avatar loading stopped")
		}
	}()
}

// Fetch loads and decodes a single image. Sources are http(s) URLs, file://
// URLs or plain file paths.
func (s *Store) Fetch(ctx context.Context, src string) (image.Image, error) {
	var r io.ReadCloser
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "request %s", src)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, errors.Wrapf(err, "get %s", src)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, errors.Errorf("get %s: status %d", src, resp.StatusCode)
		}
		r = resp.Body
	default:
		f, err := os.Open(strings.TrimPrefix(src, "file://"))
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", src)
		}
		r = f
	}
	defer r.Close()
	img, _, err := image.Decode(io.LimitReader(r, s.conf.MaxBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", src)
	}
	return img, nil
}
