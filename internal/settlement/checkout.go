package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okvann/billdesk/internal/billing"
	"github.com/okvann/billdesk/internal/cart"
)

var (
	// ErrEmptyCart is returned when opening a checkout for a cart with
	// no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoMethod is returned when entering a tendered amount before a
	// payment method is selected.
	ErrNoMethod = errors.New("no payment method selected")

	// ErrNotConfirmable is returned when Confirm is called outside the
	// Confirmable state.
	ErrNotConfirmable = errors.New("checkout is not confirmable")

	// ErrAlreadySubmitted is returned on any attempt to confirm a
	// checkout whose record was already accepted by the server.
	ErrAlreadySubmitted = errors.New("checkout already submitted")

	// ErrAuthorizationDeclined is returned when the payment gateway
	// declines a non-cash authorization. The checkout stays confirmable
	// so the cashier can pick another method.
	ErrAuthorizationDeclined = errors.New("payment authorization declined")
)

// Authorizer settles non-cash payments with an external gateway before
// the transaction record may be submitted.
type Authorizer interface {
	Authorize(ctx context.Context, method Method, amount int64) error
}

// Checkout drives one settlement attempt for a finalized cart snapshot.
// It moves through MethodUnselected, MethodSelected and
// Insufficient/Confirmable; Submitted is terminal. A checkout belongs
// to a single cashier session and is not safe for concurrent use.
type Checkout struct {
	billNumber string
	createdAt  time.Time
	lines      []cart.Line
	payable    int64

	method   Method
	tendered int64
	state    State
}

// ConfirmParams carries the cashier-entered customer details for the
// transaction record. Empty fields fall back to walk-in defaults.
type ConfirmParams struct {
	StaffID       int64
	CustomerName  string
	CustomerPhone string
}

// NewCheckout snapshots the cart and opens a settlement attempt. The
// bill number is assigned here, before payment, so held and settled
// bills share the same id scheme.
func NewCheckout(c *cart.Cart) (*Checkout, error) {
	if c.Empty() {
		return nil, ErrEmptyCart
	}

	now := time.Now()

	return &Checkout{
		billNumber: fmt.Sprintf("BILL-%d", now.UnixMilli()),
		createdAt:  now,
		lines:      c.Lines(),
		payable:    c.Total(),
		state:      StateMethodUnselected,
	}, nil
}

func (c *Checkout) BillNumber() string { return c.billNumber }
func (c *Checkout) CreatedAt() time.Time { return c.createdAt }
func (c *Checkout) Lines() []cart.Line { return c.lines }
func (c *Checkout) Payable() int64     { return c.payable }
func (c *Checkout) Method() Method     { return c.method }
func (c *Checkout) Tendered() int64    { return c.tendered }
func (c *Checkout) State() State       { return c.state }

// SelectMethod picks the payment method. Non-cash methods tender the
// exact payable amount immediately since change does not apply, which
// makes the checkout confirmable right away.
func (c *Checkout) SelectMethod(m Method) error {
	if c.state == StateSubmitted {
		return ErrAlreadySubmitted
	}

	c.method = m

	if m.Cash() {
		c.tendered = 0
		c.state = StateMethodSelected

		return nil
	}

	c.tendered = c.payable
	c.state = StateConfirmable

	return nil
}

// EnterTendered records the cash amount received. An insufficient
// amount parks the checkout in Insufficient; re-entering a larger
// amount moves it forward, so the state loops rather than failing.
func (c *Checkout) EnterTendered(amount int64) error {
	switch c.state {
	case StateSubmitted:
		return ErrAlreadySubmitted
	case StateMethodUnselected:
		return ErrNoMethod
	}

	if !c.method.Cash() {
		// Non-cash tender is fixed at the payable amount.
		return nil
	}

	c.tendered = amount

	if amount < c.payable {
		c.state = StateInsufficient
	} else {
		c.state = StateConfirmable
	}

	return nil
}

// Balance is tendered minus payable. For non-cash methods it is always
// zero since the tendered amount equals the payable amount.
func (c *Checkout) Balance() int64 {
	bal := c.tendered - c.payable
	if !c.method.Cash() && bal < 0 {
		return 0
	}

	return bal
}

// Shortfall is how much more cash is needed, zero when sufficient.
func (c *Checkout) Shortfall() int64 {
	if short := c.payable - c.tendered; short > 0 {
		return short
	}

	return 0
}

// Confirm authorizes non-cash payment and assembles the transaction
// record for submission. The checkout stays confirmable on gateway
// decline and on later submission failure; call MarkSubmitted once the
// server has accepted the record.
func (c *Checkout) Confirm(ctx context.Context, authorizer Authorizer, params ConfirmParams) (*billing.TransactionRecord, error) {
	switch c.state {
	case StateSubmitted:
		return nil, ErrAlreadySubmitted
	case StateConfirmable:
	default:
		return nil, ErrNotConfirmable
	}

	var transactionID *string

	if !c.method.Cash() {
		if err := authorizer.Authorize(ctx, c.method, c.payable); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAuthorizationDeclined, err)
		}

		id := "TXN-" + uuid.NewString()
		transactionID = &id
	}

	name := params.CustomerName
	if name == "" {
		name = "Walk-in"
	}

	phone := params.CustomerPhone
	if phone == "" {
		phone = "0000000000"
	}

	items := make([]billing.RecordItem, len(c.lines))
	for i, l := range c.lines {
		items[i] = billing.RecordItem{
			ProductID:   l.ItemID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			Price:       l.UnitPrice,
			TotalPrice:  l.Subtotal(),
		}
	}

	return &billing.TransactionRecord{
		StaffID:        params.StaffID,
		CustomerName:   name,
		CustomerPhone:  phone,
		TotalAmount:    c.payable,
		DiscountAmount: 0,
		FinalAmount:    c.payable,
		PaymentMode:    string(c.method),
		Items:          items,
		BillNumber:     c.billNumber,
		TransactionID:  transactionID,
	}, nil
}

// MarkSubmitted seals the checkout after the server accepted the
// record. Further Confirm or MarkSubmitted calls fail, which is what
// keeps a double-tapped confirm from posting the sale twice.
func (c *Checkout) MarkSubmitted() error {
	if c.state == StateSubmitted {
		return ErrAlreadySubmitted
	}

	if c.state != StateConfirmable {
		return ErrNotConfirmable
	}

	c.state = StateSubmitted

	return nil
}
