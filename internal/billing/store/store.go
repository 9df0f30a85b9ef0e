package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okvann/billdesk/internal/billing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateBill stores the bill header and its items atomically. The
// generated id and timestamp are written back into bill.
func (s *Store) CreateBill(ctx context.Context, bill *billing.Bill) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	headerQuery := `
		INSERT INTO bills (staff_id, customer_name, customer_phone, total_amount,
			discount_amount, final_amount, payment_mode, bill_number, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, headerQuery,
		bill.StaffID,
		bill.CustomerName,
		bill.CustomerPhone,
		bill.TotalAmount,
		bill.DiscountAmount,
		bill.FinalAmount,
		bill.PaymentMode,
		bill.BillNumber,
		bill.TransactionID,
	).Scan(&bill.ID, &bill.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating bill: %w", err)
	}

	itemQuery := `
		INSERT INTO bill_items (bill_id, product_id, product_name, quantity, price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, item := range bill.Items {
		if _, err := dbTx.ExecContext(ctx, itemQuery,
			bill.ID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.Price,
			item.TotalPrice,
		); err != nil {
			return fmt.Errorf("creating bill item: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing bill: %w", err)
	}

	return nil
}

// ListBills returns all bills with their items, oldest first.
func (s *Store) ListBills(ctx context.Context) ([]billing.Bill, error) {
	query := `
		SELECT id, staff_id, customer_name, customer_phone, total_amount,
			discount_amount, final_amount, payment_mode, bill_number, transaction_id, created_at
		FROM bills
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer rows.Close()

	var bills []billing.Bill

	index := make(map[string]int)

	for rows.Next() {
		var b billing.Bill

		var txnID sql.NullString

		if err := rows.Scan(
			&b.ID, &b.StaffID, &b.CustomerName, &b.CustomerPhone, &b.TotalAmount,
			&b.DiscountAmount, &b.FinalAmount, &b.PaymentMode, &b.BillNumber, &txnID, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		if txnID.Valid {
			b.TransactionID = &txnID.String
		}

		index[b.ID] = len(bills)
		bills = append(bills, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bill rows: %w", err)
	}

	if len(bills) == 0 {
		return bills, nil
	}

	itemQuery := `
		SELECT bill_id, product_id, product_name, quantity, price, total_price
		FROM bill_items
		ORDER BY id ASC
	`

	itemRows, err := s.db.QueryContext(ctx, itemQuery)
	if err != nil {
		return nil, fmt.Errorf("listing bill items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var billID string

		var item billing.RecordItem

		if err := itemRows.Scan(&billID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("scanning bill item: %w", err)
		}

		if i, ok := index[billID]; ok {
			bills[i].Items = append(bills[i].Items, item)
		}
	}

	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bill item rows: %w", err)
	}

	return bills, nil
}
