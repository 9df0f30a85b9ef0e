package store_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okvann/billdesk/internal/catalog"
	"github.com/okvann/billdesk/internal/catalog/store"
)

func newStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db), mock
}

func TestStore_UpdateStock(t *testing.T) {
	// The statement must only touch columns the products table defines:
	// stock_on_hand keyed by id.
	updateQuery := `UPDATE products\s+SET stock_on_hand = \$1\s+WHERE id = \$2`

	t.Run("Success", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectExec(updateQuery).
			WithArgs(7, "P1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.UpdateStock(context.Background(), "P1", 7)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownID", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectExec(updateQuery).
			WithArgs(7, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.UpdateStock(context.Background(), "missing", 7)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_CreateProduct(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(`INSERT INTO products \(name, unit_price, stock_on_hand, image_url\)`).
		WithArgs("Filter Coffee", int64(13000), 12, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("P42"))

	item := &catalog.Item{Name: "Filter Coffee", UnitPrice: 13000, StockOnHand: 12}

	err := s.CreateProduct(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, "P42", item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectQuery(`SELECT id, name, unit_price, stock_on_hand, image_url\s+FROM products\s+WHERE id = \$1`).
			WithArgs("P1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "unit_price", "stock_on_hand", "image_url"}).
				AddRow("P1", "Coffee", int64(13000), 3, ""))

		item, err := s.GetProduct(context.Background(), "P1")
		require.NoError(t, err)
		assert.Equal(t, 3, item.StockOnHand)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectQuery(`SELECT id, name, unit_price, stock_on_hand, image_url`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "unit_price", "stock_on_hand", "image_url"}))

		_, err := s.GetProduct(context.Background(), "missing")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}
