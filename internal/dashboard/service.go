// Package dashboard composes the reader and analyzer layers into the
// logical operations served by both the CLI and the HTTP API.
package dashboard

import (
	"time"

	"github.com/prabinb19/ClaudeBuddy/internal/cache"
	"github.com/prabinb19/ClaudeBuddy/internal/claude"
	"github.com/prabinb19/ClaudeBuddy/internal/config"
)

// Service exposes the analytics operations. Expensive aggregates are
// memoized in a TTL cache; raw session loading stays fresh per call.
type Service struct {
	home  string
	cache *cache.Cache
	now   func() time.Time

	productivityTTL time.Duration
	insightsTTL     time.Duration
	errorDays       int
	taskDays        int
}

// New builds a Service from configuration.
func New(cfg *config.Config) *Service {
	return &Service{
		home:            cfg.ClaudeHome,
		cache:           cache.New(),
		now:             time.Now,
		productivityTTL: cfg.Cache.ProductivityTTL(),
		insightsTTL:     cfg.Cache.InsightsTTL(),
		errorDays:       cfg.Insights.ErrorDays,
		taskDays:        cfg.Insights.TaskDays,
	}
}

// Home returns the configured Claude data directory.
func (s *Service) Home() string {
	return s.home
}

// HasData reports whether any Claude Code data exists under the home.
func (s *Service) HasData() bool {
	return claude.DataExists(s.home)
}

// cached wraps a computation in the TTL cache, optionally forcing a
// fresh run.
func cached[T any](s *Service, key string, ttl time.Duration, refresh bool, fn func() (T, error)) (T, error) {
	if refresh {
		s.cache.Forget(key)
	}
	v, err := s.cache.GetOrCompute(key, ttl, func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
