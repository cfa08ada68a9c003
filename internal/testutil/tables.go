package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/roach88/saju/internal/astro"
)

type yearRange struct{ first, last int }

// TableCache memoizes computed reference tables by year range so a test
// binary builds each fixture once.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type TableCache struct {
	mu     sync.Mutex
	tables map[yearRange]*astro.Table
	builds int
}

// NewTableCache creates an empty cache.
func NewTableCache() *TableCache {
	return &TableCache{tables: make(map[yearRange]*astro.Table)}
}

// Get returns the table for first..last, computing it on first use.
// Tables are immutable, so callers may share the result.
func (c *TableCache) Get(first, last int) (*astro.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := yearRange{first, last}
	if t, ok := c.tables[key]; ok {
		return t, nil
	}
	t, err := astro.Compute(first, last)
	if err != nil {
		return nil, fmt.Errorf("fixture table %d-%d: %w", first, last, err)
	}
	c.tables[key] = t
	c.builds++
	return t, nil
}

// Builds returns how many tables have been computed.
func (c *TableCache) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builds
}

var shared = NewTableCache()

// Table returns a shared fixture table covering first..last and fails the
// test if it cannot be built. Keep ranges small (a few years) in unit tests.
func Table(t testing.TB, first, last int) *astro.Table {
	t.Helper()
	tbl, err := shared.Get(first, last)
	if err != nil {
		t.Fatalf("testutil.Table: %v", err)
	}
	return tbl
}

// SharedTables returns the process-wide cache behind Table, for callers
// without a testing.TB such as the scenario harness.
func SharedTables() *TableCache { return shared }
