package cart_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okvann/billdesk/internal/cart"
	"github.com/okvann/billdesk/internal/catalog"
)

func TestCart_Add(t *testing.T) {
	coffee := catalog.Item{ID: "P1", Name: "Coffee", UnitPrice: 13000, StockOnHand: 3}
	tea := catalog.Item{ID: "P2", Name: "Tea", UnitPrice: 9000, StockOnHand: 5}
	soldOut := catalog.Item{ID: "P3", Name: "Biscuits", UnitPrice: 4000, StockOnHand: 0}

	t.Run("NewLineNewestFirst", func(t *testing.T) {
		c := cart.New()
		require.NoError(t, c.Add(coffee))
		require.NoError(t, c.Add(tea))

		lines := c.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "P2", lines[0].ItemID)
		assert.Equal(t, "P1", lines[1].ItemID)
	})

	t.Run("RepeatIncrementsExistingLine", func(t *testing.T) {
		c := cart.New()
		require.NoError(t, c.Add(coffee))
		require.NoError(t, c.Add(tea))
		require.NoError(t, c.Add(coffee))

		lines := c.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "P2", lines[0].ItemID, "repeat add must not reorder lines")
		assert.Equal(t, 2, lines[1].Quantity)
	})

	t.Run("StockCeiling", func(t *testing.T) {
		c := cart.New()
		for i := 0; i < coffee.StockOnHand; i++ {
			require.NoError(t, c.Add(coffee))
		}

		err := c.Add(coffee)
		assert.ErrorIs(t, err, cart.ErrStockLimit)
		assert.Equal(t, coffee.StockOnHand, c.Lines()[0].Quantity)
	})

	t.Run("OutOfStock", func(t *testing.T) {
		c := cart.New()
		err := c.Add(soldOut)
		assert.ErrorIs(t, err, cart.ErrOutOfStock)
		assert.True(t, c.Empty())
	})
}

func TestCart_Remove(t *testing.T) {
	coffee := catalog.Item{ID: "P1", Name: "Coffee", UnitPrice: 13000, StockOnHand: 3}

	t.Run("DecrementsQuantity", func(t *testing.T) {
		c := cart.New()
		require.NoError(t, c.Add(coffee))
		require.NoError(t, c.Add(coffee))

		c.Remove("P1")
		assert.Equal(t, 1, c.Lines()[0].Quantity)
	})

	t.Run("DropsLineAtZero", func(t *testing.T) {
		c := cart.New()
		require.NoError(t, c.Add(coffee))

		c.Remove("P1")
		assert.True(t, c.Empty())
	})

	t.Run("AbsentItemIsNoop", func(t *testing.T) {
		c := cart.New()
		require.NoError(t, c.Add(coffee))

		c.Remove("missing")
		assert.Equal(t, 1, c.Len())
	})
}

func TestCart_Total(t *testing.T) {
	coffee := catalog.Item{ID: "P1", Name: "Coffee", UnitPrice: 13000, StockOnHand: 10}
	tea := catalog.Item{ID: "P2", Name: "Tea", UnitPrice: 9000, StockOnHand: 10}

	c := cart.New()
	assert.Equal(t, int64(0), c.Total())

	require.NoError(t, c.Add(coffee))
	require.NoError(t, c.Add(coffee))
	require.NoError(t, c.Add(tea))
	assert.Equal(t, int64(35000), c.Total())

	c.Remove("P1")
	assert.Equal(t, int64(22000), c.Total())

	c.Clear()
	assert.Equal(t, int64(0), c.Total())
}

// Total must always equal the sum of line subtotals, no matter what
// sequence of adds and removes got the cart there.
func TestCart_TotalConsistency(t *testing.T) {
	items := []catalog.Item{
		{ID: "P1", Name: "Coffee", UnitPrice: 13000, StockOnHand: 4},
		{ID: "P2", Name: "Tea", UnitPrice: 9000, StockOnHand: 2},
		{ID: "P3", Name: "Cake", UnitPrice: 27500, StockOnHand: 7},
	}

	rng := rand.New(rand.NewSource(1))
	c := cart.New()

	for i := 0; i < 200; i++ {
		item := items[rng.Intn(len(items))]
		if rng.Intn(3) == 0 {
			c.Remove(item.ID)
		} else {
			err := c.Add(item)
			if err != nil {
				assert.ErrorIs(t, err, cart.ErrStockLimit)
			}
		}

		var want int64
		for _, l := range c.Lines() {
			assert.LessOrEqual(t, l.Quantity, l.StockCeiling)
			assert.Positive(t, l.Quantity)
			want += l.UnitPrice * int64(l.Quantity)
		}

		assert.Equal(t, want, c.Total())
	}
}

func TestCart_Snapshot(t *testing.T) {
	coffee := catalog.Item{ID: "P1", Name: "Coffee", UnitPrice: 13000, StockOnHand: 5}

	c := cart.New()
	require.NoError(t, c.Add(coffee))

	snap := c.Snapshot()
	require.NoError(t, c.Add(coffee))

	assert.Equal(t, 2, c.Lines()[0].Quantity)
	assert.Equal(t, 1, snap.Lines()[0].Quantity, "snapshot must be isolated from the live cart")
}

func TestRestore(t *testing.T) {
	lines := []cart.Line{
		{ItemID: "P2", Name: "Tea", UnitPrice: 9000, Quantity: 1, StockCeiling: 5},
		{ItemID: "P1", Name: "Coffee", UnitPrice: 13000, Quantity: 2, StockCeiling: 3},
	}

	c := cart.Restore(lines)
	assert.Equal(t, int64(35000), c.Total())

	lines[0].Quantity = 99
	assert.Equal(t, 1, c.Lines()[0].Quantity, "restored cart must copy the input slice")
}
