package store

import (
	"shelfprep/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithTracer installs a custom query tracer, overriding Config.LogSQL
func WithTracer(t QueryTracer) Option {
	return func(s *Store) error {
		s.tracer = t
		return nil
	}
}
