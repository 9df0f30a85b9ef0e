package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Fetcher loads the full item list from the product API.
type Fetcher interface {
	Products(ctx context.Context) ([]Item, error)
}

// FetchError wraps a failed catalog refresh. The cache keeps serving
// the previous item list while one of these is outstanding.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("refreshing catalog: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Cache holds the most recently fetched item list. Refresh replaces
// the list wholesale; there is no background refresh and no diffing.
// A cache belongs to a single cashier session and is not safe for
// concurrent use.
type Cache struct {
	fetcher Fetcher
	items   []Item
}

// NewCache returns an empty cache backed by fetcher.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher}
}

// Refresh fetches the item list and replaces the cached one. On error
// the previous list is retained and a *FetchError is returned so the
// caller can surface it alongside the stale data.
func (c *Cache) Refresh(ctx context.Context) ([]Item, error) {
	items, err := c.fetcher.Products(ctx)
	if err != nil {
		return c.items, &FetchError{Err: err}
	}

	c.items = items

	return c.items, nil
}

// Items returns the current, possibly stale, item list.
func (c *Cache) Items() []Item {
	return c.items
}

// Search returns the cached items whose names contain q,
// case-insensitively. An empty query returns everything.
func (c *Cache) Search(q string) []Item {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return c.items
	}

	var out []Item

	for _, it := range c.items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
		}
	}

	return out
}
