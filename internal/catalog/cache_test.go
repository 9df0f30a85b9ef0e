package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okvann/billdesk/internal/catalog"
)

type stubFetcher struct {
	items []catalog.Item
	err   error
}

func (f *stubFetcher) Products(_ context.Context) ([]catalog.Item, error) {
	return f.items, f.err
}

func TestCache_Refresh(t *testing.T) {
	items := []catalog.Item{
		{ID: "P1", Name: "Coffee", UnitPrice: 13000, StockOnHand: 3},
		{ID: "P2", Name: "Tea", UnitPrice: 9000, StockOnHand: 5},
	}

	t.Run("Success", func(t *testing.T) {
		fetcher := &stubFetcher{items: items}
		cache := catalog.NewCache(fetcher)

		got, err := cache.Refresh(context.Background())
		require.NoError(t, err)
		assert.Equal(t, items, got)
		assert.Equal(t, items, cache.Items())
	})

	t.Run("KeepsStaleListOnError", func(t *testing.T) {
		fetcher := &stubFetcher{items: items}
		cache := catalog.NewCache(fetcher)

		_, err := cache.Refresh(context.Background())
		require.NoError(t, err)

		fetcher.err = errors.New("connection refused")
		fetcher.items = nil

		got, err := cache.Refresh(context.Background())

		var fetchErr *catalog.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, items, got, "failed refresh must keep the previous list")
		assert.Equal(t, items, cache.Items())
	})

	t.Run("EmptyCacheOnFirstFailure", func(t *testing.T) {
		cache := catalog.NewCache(&stubFetcher{err: errors.New("timeout")})

		got, err := cache.Refresh(context.Background())
		assert.Error(t, err)
		assert.Empty(t, got)
	})
}

func TestCache_Search(t *testing.T) {
	fetcher := &stubFetcher{items: []catalog.Item{
		{ID: "P1", Name: "Filter Coffee"},
		{ID: "P2", Name: "Green Tea"},
		{ID: "P3", Name: "Coffee Mug"},
	}}

	cache := catalog.NewCache(fetcher)
	_, err := cache.Refresh(context.Background())
	require.NoError(t, err)

	type testCase struct {
		name    string
		query   string
		wantIDs []string
	}

	tests := []testCase{
		{name: "CaseInsensitiveSubstring", query: "coffee", wantIDs: []string{"P1", "P3"}},
		{name: "MixedCase", query: "GrEeN", wantIDs: []string{"P2"}},
		{name: "EmptyReturnsAll", query: "  ", wantIDs: []string{"P1", "P2", "P3"}},
		{name: "NoMatch", query: "samosa", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cache.Search(tt.query)

			var ids []string
			for _, it := range got {
				ids = append(ids, it.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
