package catalog

import (
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/pkg/logger"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithPath sets the JSON file Reload reads from.
func WithPath(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// WithItems seeds the store with items instead of the built-in catalog.
func WithItems(items []model.CatalogItem) Option {
	return func(s *Store) {
		if items != nil {
			s.seed = items
		}
	}
}

// WithLogger sets the logger used by the store.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}
