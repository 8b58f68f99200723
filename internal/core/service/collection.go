package service

import (
	"sync"

	"github.com/foodcritique/critique-web/internal/core/domain"
)

// MutationPolicy says how a page updates its local list after a successful
// mutation.
type MutationPolicy int

const (
	// Refetch reloads the whole list from the API.
	Refetch MutationPolicy = iota
	// Splice replaces the one changed record in place.
	Splice
)

// Collection is the transient local copy of one page's list. keep, when set,
// filters the list after every splice (the restaurants page only shows ACTIVE
// rows once something changed).
type Collection[T domain.Entity] struct {
	mu      sync.RWMutex
	items   []T
	loaded  bool
	loading int
	keep    func(T) bool
}

func NewCollection[T domain.Entity](keep func(T) bool) *Collection[T] {
	return &Collection[T]{keep: keep}
}

// Items returns a copy of the current list, never nil.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Loaded reports whether at least one fetch completed.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Loading reports whether a fetch is in progress.
func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading > 0
}

// BeginLoad marks a fetch as started and returns the func that ends it.
func (c *Collection[T]) BeginLoad() (done func()) {
	c.mu.Lock()
	c.loading++
	c.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.loading--
			c.mu.Unlock()
		})
	}
}

// Replace swaps in a freshly fetched list.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T(nil), items...)
	c.loaded = true
}

// Splice replaces the record with the same id as item and then applies the
// keep filter. It reports whether a record was replaced.
func (c *Collection[T]) Splice(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	found := false
	for i := range c.items {
		if c.items[i].EntityID() == item.EntityID() {
			c.items[i] = item
			found = true
			break
		}
	}
	if c.keep != nil {
		kept := c.items[:0]
		for _, it := range c.items {
			if c.keep(it) {
				kept = append(kept, it)
			}
		}
		c.items = kept
	}
	return found
}

// Find returns the record with the given id.
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.EntityID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Reset empties the list.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.loaded = false
}
