package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okvann/billdesk/internal/catalog"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateProduct(ctx context.Context, item *catalog.Item) error {
	query := `
		INSERT INTO products (name, unit_price, stock_on_hand, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		item.Name,
		item.UnitPrice,
		item.StockOnHand,
		item.ImageURL,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*catalog.Item, error) {
	query := `
		SELECT id, name, unit_price, stock_on_hand, image_url
		FROM products
		WHERE id = $1
	`

	var item catalog.Item

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.UnitPrice, &item.StockOnHand, &item.ImageURL,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return &item, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]catalog.Item, error) {
	query := `
		SELECT id, name, unit_price, stock_on_hand, image_url
		FROM products
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var items []catalog.Item

	for rows.Next() {
		var item catalog.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.UnitPrice, &item.StockOnHand, &item.ImageURL); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return items, nil
}

func (s *Store) UpdateStock(ctx context.Context, id string, stockOnHand int) error {
	query := `
		UPDATE products
		SET stock_on_hand = $1
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, stockOnHand, id)
	if err != nil {
		return fmt.Errorf("updating stock: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return catalog.ErrNotFound
	}

	return nil
}
