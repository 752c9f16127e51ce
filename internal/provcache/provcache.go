// Package provcache caches provider lookups with a bounded lifetime.
// Providers change rarely but are consulted on every ingestion decision, so
// callers share one Cache instance and inject it explicitly instead of
// reaching for a global.
package provcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/compasshq/compass/schema"
)

// FetchFunc loads the full provider list from the source of truth.
type FetchFunc func(ctx context.Context) ([]schema.Provider, error)

// Cache is a TTL-bounded provider lookup table. The zero value is not usable;
// construct with New.
type Cache struct {
	mu        sync.Mutex
	fetch     FetchFunc
	ttl       time.Duration
	byName    map[string]schema.Provider
	fetchedAt time.Time

	now func() time.Time // swapped in tests
}

// New creates a Cache that refreshes through fetch at most once per ttl.
func New(fetch FetchFunc, ttl time.Duration) *Cache {
	return &Cache{
		fetch: fetch,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the provider with the given name, refreshing the cache first
// if the TTL has lapsed.
func (c *Cache) Get(ctx context.Context, name string) (schema.Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureFreshLocked(ctx); err != nil {
		return schema.Provider{}, err
	}
	p, ok := c.byName[name]
	if !ok {
		return schema.Provider{}, fmt.Errorf("unknown provider %q", name)
	}
	return p, nil
}

// All returns every cached provider, refreshing first if needed.
func (c *Cache) All(ctx context.Context) ([]schema.Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureFreshLocked(ctx); err != nil {
		return nil, err
	}
	providers := make([]schema.Provider, 0, len(c.byName))
	for _, p := range c.byName {
		providers = append(providers, p)
	}
	return providers, nil
}

// Invalidate drops the cached providers. The next lookup refetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byName = nil
}

// Refresh refetches immediately regardless of TTL.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Cache) ensureFreshLocked(ctx context.Context) error {
	if c.byName != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return nil
	}
	return c.refreshLocked(ctx)
}

func (c *Cache) refreshLocked(ctx context.Context) error {
	providers, err := c.fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh provider cache: %w", err)
	}
	byName := make(map[string]schema.Provider, len(providers))
	for _, p := range providers {
		byName[p.Name] = p
	}
	c.byName = byName
	c.fetchedAt = c.now()
	return nil
}
