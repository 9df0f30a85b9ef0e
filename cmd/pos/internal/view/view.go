package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okvann/billdesk/internal/billing"
	"github.com/okvann/billdesk/internal/cart"
	"github.com/okvann/billdesk/internal/settlement"
)

// CommonModel is embedded by all views.
type CommonModel struct{}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// StartPaymentMsg asks the root model to open the payment view for a
// freshly created checkout.
type StartPaymentMsg struct {
	Checkout *settlement.Checkout
}

// ResumeTicketMsg asks the root model to replace the active cart with
// a resumed ticket's lines.
type ResumeTicketMsg struct {
	Lines []cart.Line
}

// PaymentDoneMsg asks the root model to show the receipt for a
// server-confirmed bill.
type PaymentDoneMsg struct {
	Bill     *billing.Bill
	Method   settlement.Method
	Tendered int64
	Balance  int64
}
