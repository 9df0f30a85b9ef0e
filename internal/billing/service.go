package billing

import (
	"context"
	"fmt"
)

// InvalidRecordError marks a transaction record the server refuses to
// store. The handler maps it to a 400 so the client sees a
// ValidationError rather than a stored-but-wrong bill.
type InvalidRecordError struct {
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid transaction record: %s", e.Reason)
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=billing
type Repository interface {
	CreateBill(ctx context.Context, bill *Bill) error
	ListBills(ctx context.Context) ([]Bill, error)
}

// Service is the backend-side bill ledger used by the reference API
// server.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record validates and stores an incoming transaction record, returning
// the confirmed bill with its server-assigned id.
func (s *Service) Record(ctx context.Context, record *TransactionRecord) (*Bill, error) {
	if err := validate(record); err != nil {
		return nil, err
	}

	bill := &Bill{
		StaffID:        record.StaffID,
		CustomerName:   record.CustomerName,
		CustomerPhone:  record.CustomerPhone,
		TotalAmount:    record.TotalAmount,
		DiscountAmount: record.DiscountAmount,
		FinalAmount:    record.FinalAmount,
		PaymentMode:    record.PaymentMode,
		Items:          record.Items,
		BillNumber:     record.BillNumber,
		TransactionID:  record.TransactionID,
	}
	if err := s.repo.CreateBill(ctx, bill); err != nil {
		return nil, err
	}

	return bill, nil
}

// List returns all stored bills in storage order.
func (s *Service) List(ctx context.Context) ([]Bill, error) {
	return s.repo.ListBills(ctx)
}

func validate(record *TransactionRecord) error {
	if record.BillNumber == "" {
		return &InvalidRecordError{Reason: "missing bill number"}
	}

	switch record.PaymentMode {
	case "CASH", "CARD", "UPI", "WALLET":
	default:
		return &InvalidRecordError{Reason: fmt.Sprintf("unknown payment mode %q", record.PaymentMode)}
	}

	if len(record.Items) == 0 {
		return &InvalidRecordError{Reason: "no items"}
	}

	var total int64

	for _, item := range record.Items {
		if item.Quantity < 1 {
			return &InvalidRecordError{Reason: fmt.Sprintf("item %s has quantity %d", item.ProductID, item.Quantity)}
		}

		if item.TotalPrice != item.Price*int64(item.Quantity) {
			return &InvalidRecordError{Reason: fmt.Sprintf("item %s total does not match price*quantity", item.ProductID)}
		}

		total += item.TotalPrice
	}

	if record.TotalAmount != total {
		return &InvalidRecordError{Reason: "total amount does not match item totals"}
	}

	if record.FinalAmount != record.TotalAmount-record.DiscountAmount {
		return &InvalidRecordError{Reason: "final amount does not match total minus discount"}
	}

	return nil
}
