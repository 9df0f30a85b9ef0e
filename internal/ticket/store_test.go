package ticket_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okvann/billdesk/internal/cart"
	"github.com/okvann/billdesk/internal/ticket"
)

func testLines() []cart.Line {
	return []cart.Line{
		{ItemID: "P2", Name: "Tea", UnitPrice: 9000, Quantity: 1, StockCeiling: 5},
		{ItemID: "P1", Name: "Coffee", UnitPrice: 13000, Quantity: 2, StockCeiling: 3},
	}
}

func TestStore_Park(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store, err := ticket.NewStore(t.TempDir())
		require.NoError(t, err)

		parked, err := store.Park(testLines())
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(parked.ID, "BILL-"))
		assert.Equal(t, int64(35000), parked.Total)
		assert.Len(t, parked.Lines, 2)
		assert.False(t, parked.CreatedAt.IsZero())
	})

	t.Run("EmptyCart", func(t *testing.T) {
		store, err := ticket.NewStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.Park(nil)
		assert.ErrorIs(t, err, ticket.ErrEmptyCart)

		tickets, err := store.List()
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("RapidParksGetDistinctIDs", func(t *testing.T) {
		store, err := ticket.NewStore(t.TempDir())
		require.NoError(t, err)

		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			parked, err := store.Park(testLines())
			require.NoError(t, err)

			assert.False(t, seen[parked.ID], "duplicate ticket id %s", parked.ID)
			seen[parked.ID] = true
		}
	})
}

func TestStore_ParkResumeRoundTrip(t *testing.T) {
	store, err := ticket.NewStore(t.TempDir())
	require.NoError(t, err)

	lines := testLines()
	parked, err := store.Park(lines)
	require.NoError(t, err)

	got, err := store.Resume(parked.ID)
	require.NoError(t, err)
	assert.Equal(t, lines, got)

	// Resuming removes the ticket.
	_, err = store.Resume(parked.ID)
	assert.ErrorIs(t, err, ticket.ErrNotFound)

	tickets, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestStore_List(t *testing.T) {
	store, err := ticket.NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Park(testLines())
	require.NoError(t, err)

	second, err := store.Park(testLines()[:1])
	require.NoError(t, err)

	tickets, err := store.List()
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, first.ID, tickets[0].ID, "tickets must list oldest first")
	assert.Equal(t, second.ID, tickets[1].ID)
}

func TestStore_Discard(t *testing.T) {
	store, err := ticket.NewStore(t.TempDir())
	require.NoError(t, err)

	parked, err := store.Park(testLines())
	require.NoError(t, err)

	require.NoError(t, store.Discard(parked.ID))

	tickets, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, tickets)

	// Unknown ids are a no-op, not an error.
	assert.NoError(t, store.Discard("BILL-0"))
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := ticket.NewStore(dir)
	require.NoError(t, err)

	parked, err := store.Park(testLines())
	require.NoError(t, err)

	reopened, err := ticket.NewStore(dir)
	require.NoError(t, err)

	tickets, err := reopened.List()
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, parked.ID, tickets[0].ID)
	assert.Equal(t, parked.Total, tickets[0].Total)
	assert.Equal(t, testLines(), tickets[0].Lines)
}
