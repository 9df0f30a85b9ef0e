package billing

import (
	"context"
	"log/slog"
)

// API is the slice of the REST client the submitter needs.
type API interface {
	SubmitBill(ctx context.Context, record *TransactionRecord) (*Bill, error)
	Bills(ctx context.Context) ([]Bill, error)
}

// Submitter posts confirmed transaction records to the billing API.
// Errors pass through unchanged: *api.NetworkError means the cashier
// may retry with the same record, *api.ValidationError means the
// record is wrong and the attempt must be aborted.
type Submitter struct {
	api API
}

func NewSubmitter(api API) *Submitter {
	return &Submitter{api: api}
}

// Submit sends the record once and returns the server-confirmed bill.
// No retry happens here; every retry is cashier-initiated.
func (s *Submitter) Submit(ctx context.Context, record *TransactionRecord) (*Bill, error) {
	bill, err := s.api.SubmitBill(ctx, record)
	if err != nil {
		slog.Error("bill submission failed", "bill_number", record.BillNumber, "error", err)
		return nil, err
	}

	slog.Info("bill submitted", "bill_number", bill.BillNumber, "id", bill.ID, "final_amount", bill.FinalAmount)

	return bill, nil
}

// History returns past transactions, newest first.
func (s *Submitter) History(ctx context.Context) ([]Bill, error) {
	return s.api.Bills(ctx)
}
