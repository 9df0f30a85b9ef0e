package settlement

// Method is a payment method offered at the counter. The values are
// the wire form carried in TransactionRecord.PaymentMode.
type Method string

const (
	MethodCash   Method = "CASH"
	MethodCard   Method = "CARD"
	MethodUPI    Method = "UPI"
	MethodWallet Method = "WALLET"
)

// Methods lists the selectable payment methods in display order.
func Methods() []Method {
	return []Method{MethodCash, MethodCard, MethodUPI, MethodWallet}
}

// Cash reports whether the method settles with physical tender, which
// is the only case where change applies.
func (m Method) Cash() bool {
	return m == MethodCash
}

// State is the position of a checkout in its settlement lifecycle.
type State int

const (
	StateMethodUnselected State = iota
	StateMethodSelected
	StateInsufficient
	StateConfirmable
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateMethodUnselected:
		return "method_unselected"
	case StateMethodSelected:
		return "method_selected"
	case StateInsufficient:
		return "insufficient"
	case StateConfirmable:
		return "confirmable"
	case StateSubmitted:
		return "submitted"
	}

	return "unknown"
}
