// Package dedupe tracks client event ids so a retried submission is
// acknowledged without being recorded twice.
package dedupe

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
)

// defaultMaxSize bounds the number of remembered ids.
const defaultMaxSize = 50000

// Deduper records seen ids for at-most-once processing.
type Deduper interface {
	// SeenAndRecord reports whether id was already recorded and records it
	// if not, in one atomic step.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so a submission that failed validation can be
	// retried with the same id.
	Unrecord(ctx context.Context, id string)

	// Forget drops every id with the given prefix, used when a session ends.
	Forget(ctx context.Context, prefix string) int

	Size() int64
}

// inMemoryDeduper keeps ids in insertion order and evicts the oldest once the
// bound is reached. maxSize <= 0 means unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
		seen:    make(map[string]*list.Element),
		order:   list.New(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		d.evictOldest()
	}
	d.seen[id] = d.order.PushBack(id)
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[id]; ok {
		d.order.Remove(el)
		delete(d.seen, id)
		d.size.Add(-1)
	}
}

func (d *inMemoryDeduper) Forget(_ context.Context, prefix string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for el := d.order.Front(); el != nil; {
		next := el.Next()
		id, _ := el.Value.(string)
		if len(id) >= len(prefix) && id[:len(prefix)] == prefix {
			d.order.Remove(el)
			delete(d.seen, id)
			n++
		}
		el = next
	}
	d.size.Add(int64(-n))
	return n
}

// evictOldest must be called with d.mu held.
func (d *inMemoryDeduper) evictOldest() {
	el := d.order.Front()
	if el == nil {
		return
	}
	id, _ := el.Value.(string)
	d.order.Remove(el)
	delete(d.seen, id)
	d.size.Add(-1)
}

// Size returns the current number of entries in the deduper.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
