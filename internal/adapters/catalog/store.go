// Package catalog holds the read-only catalog behind an atomically swapped
// snapshot. Readers never block and never see a partially loaded catalog.
package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/pkg/logger"
	"github.com/okian/vibematch/pkg/metrics"
)

// Snapshot is an immutable view of the catalog.
type Snapshot struct {
	Items    []model.CatalogItem
	Source   string
	LoadedAt time.Time
}

// Store serves catalog snapshots. Items satisfies engine.Catalog.
type Store struct {
	path string
	seed []model.CatalogItem
	log  logger.Logger

	reloadMu sync.Mutex
	snapshot atomic.Pointer[Snapshot]
}

// NewStore creates a Store holding the seed items, or the built-in catalog
// when none are given. It does not read the path; call Reload for that.
func NewStore(opts ...Option) *Store {
	s := &Store{log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	items, source := s.seed, "seed"
	if items == nil {
		items, source = Default(), "builtin"
	}
	s.publish(items, source)
	s.seed = nil
	return s
}

// Items returns the current snapshot's items. The slice must not be modified.
func (s *Store) Items() []model.CatalogItem {
	return s.snapshot.Load().Items
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Len returns the number of items in the current snapshot.
func (s *Store) Len() int {
	return len(s.Items())
}

// Path returns the configured source file.
func (s *Store) Path() string {
	return s.path
}

// Reload reads the configured file and swaps it in. On error the previous
// snapshot stays in place.
func (s *Store) Reload(ctx context.Context) (int, error) {
	if s.path == "" {
		return 0, ErrNoSource
	}
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	items, err := LoadFile(s.path)
	if err != nil {
		metrics.RecordCatalogReload("error")
		s.log.Error(ctx, "catalog reload failed", logger.String("path", s.path), logger.Error(err))
		return 0, err
	}
	s.publish(items, s.path)
	metrics.RecordCatalogReload("ok")
	s.log.Info(ctx, "catalog reloaded", logger.String("path", s.path), logger.Int("items", len(items)))
	return len(items), nil
}

func (s *Store) publish(items []model.CatalogItem, source string) {
	s.snapshot.Store(&Snapshot{Items: items, Source: source, LoadedAt: time.Now()})
	metrics.UpdateCatalogItems(len(items))
}

// LoadFile reads and validates a JSON catalog file.
func LoadFile(path string) ([]model.CatalogItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

type fileEnvelope struct {
	Items []model.CatalogItem `json:"items"`
}

// Decode parses a catalog from r. It accepts either a bare JSON array of
// items or an object with an "items" array. Every item needs a unique id and
// a valid vector.
func Decode(r io.Reader) ([]model.CatalogItem, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	raw = bytes.TrimSpace(raw)

	var items []model.CatalogItem
	if len(raw) > 0 && raw[0] == '[' {
		err = json.Unmarshal(raw, &items)
	} else {
		var env fileEnvelope
		err = json.Unmarshal(raw, &env)
		items = env.Items
	}
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyFile
	}

	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("%w: item %d has no id", ErrInvalidItem, i)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		seen[it.ID] = struct{}{}
		if err := it.Vector.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidItem, it.ID, err)
		}
	}
	return items, nil
}
