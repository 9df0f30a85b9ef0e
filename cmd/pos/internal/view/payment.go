package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/okvann/billdesk/internal/api"
	"github.com/okvann/billdesk/internal/billing"
	"github.com/okvann/billdesk/internal/session"
	"github.com/okvann/billdesk/internal/settlement"
)

type payState int

const (
	payStateMethod payState = iota
	payStateAmount
	payStateConfirm
	payStateAborted
)

// PaymentModel walks one checkout through method selection, tender
// entry and submission. The confirm action stays disabled while a
// submission is in flight so a double-tap cannot post the sale twice.
type PaymentModel struct {
	CommonModel
	checkout  *settlement.Checkout
	submitter *billing.Submitter
	gateway   settlement.Authorizer
	sess      *session.Session

	state payState
	form  *huh.Form

	// Heap-allocated so the huh bindings survive model copies.
	methodChoice *settlement.Method
	amountInput  *string

	inFlight bool
	status   string
}

func NewPaymentModel(
	checkout *settlement.Checkout,
	submitter *billing.Submitter,
	gateway settlement.Authorizer,
	sess *session.Session,
) PaymentModel {
	m := PaymentModel{
		checkout:     checkout,
		submitter:    submitter,
		gateway:      gateway,
		sess:         sess,
		state:        payStateMethod,
		methodChoice: new(settlement.Method),
		amountInput:  new(string),
	}

	*m.methodChoice = settlement.MethodCash
	m.form = m.methodForm()

	return m
}

func (m PaymentModel) methodForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[settlement.Method]().
				Title("Payment Method").
				Options(
					huh.NewOption("Cash", settlement.MethodCash),
					huh.NewOption("Card", settlement.MethodCard),
					huh.NewOption("UPI", settlement.MethodUPI),
					huh.NewOption("Wallet", settlement.MethodWallet),
				).
				Value(m.methodChoice),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m PaymentModel) amountForm() *huh.Form {
	*m.amountInput = FormatAmount(m.checkout.Payable())

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Received Amount").
				Value(m.amountInput).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m PaymentModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m PaymentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(submitMsg); ok {
		return m.handleSubmitResult(msg)
	}

	switch m.state {
	case payStateMethod, payStateAmount:
		return m.updateForm(msg)
	case payStateConfirm:
		return m.updateConfirm(msg)
	case payStateAborted:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}

		return m, nil
	}

	return m, nil
}

func (m PaymentModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		if m.state == payStateAmount {
			// Back to method selection.
			m.state = payStateMethod
			m.form = m.methodForm()

			return m, m.form.Init()
		}

		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case payStateMethod:
		return m.methodChosen()
	case payStateAmount:
		return m.amountEntered()
	}

	return m, cmd
}

func (m PaymentModel) methodChosen() (tea.Model, tea.Cmd) {
	if err := m.checkout.SelectMethod(*m.methodChoice); err != nil {
		m.status = err.Error()
		return m, nil
	}

	if m.checkout.Method().Cash() {
		m.state = payStateAmount
		m.form = m.amountForm()

		return m, m.form.Init()
	}

	// Non-cash: tendered is fixed at the payable amount, go straight to
	// the confirmation summary.
	m.state = payStateConfirm
	m.status = ""

	return m, nil
}

func (m PaymentModel) amountEntered() (tea.Model, tea.Cmd) {
	amount, err := ParseAmount(*m.amountInput)
	if err != nil {
		m.status = err.Error()
		m.form = m.amountForm()

		return m, m.form.Init()
	}

	if err := m.checkout.EnterTendered(amount); err != nil {
		m.status = err.Error()
		return m, nil
	}

	if m.checkout.State() == settlement.StateInsufficient {
		// Insufficient loops back to amount entry with the shortfall
		// shown; it is a recoverable condition, not an error.
		m.status = fmt.Sprintf("%s more needed", FormatAmount(m.checkout.Shortfall()))
		m.form = m.amountForm()

		return m, m.form.Init()
	}

	m.state = payStateConfirm
	m.status = ""

	return m, nil
}

func (m PaymentModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.inFlight {
		// Submission in progress: every control is disabled.
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "m":
		m.state = payStateMethod
		m.form = m.methodForm()
		m.status = ""

		return m, m.form.Init()
	case "enter", "y":
		m.inFlight = true
		m.status = "Processing payment..."

		return m, m.submitCmd()
	}

	return m, nil
}

func (m PaymentModel) handleSubmitResult(msg submitMsg) (tea.Model, tea.Cmd) {
	m.inFlight = false

	if msg.err == nil {
		if err := m.checkout.MarkSubmitted(); err != nil {
			m.status = err.Error()
			return m, nil
		}

		done := PaymentDoneMsg{
			Bill:     msg.bill,
			Method:   m.checkout.Method(),
			Tendered: m.checkout.Tendered(),
			Balance:  m.checkout.Balance(),
		}

		return m, func() tea.Msg { return done }
	}

	var validationErr *api.ValidationError

	switch {
	case errors.As(msg.err, &validationErr):
		// Not retryable as-is: abort back to the billing screen with
		// the cart intact.
		m.state = payStateAborted
		m.status = fmt.Sprintf("Bill rejected by server: %s", validationErr.Message)
	case errors.Is(msg.err, settlement.ErrAuthorizationDeclined):
		m.status = "Payment declined. Try another method (m) or cancel (esc)."
	default:
		// Network failure: checkout state is intact, the cashier
		// retries explicitly.
		m.status = fmt.Sprintf("Submission failed: %v — press enter to retry", msg.err)
	}

	return m, nil
}

func (m PaymentModel) View() string {
	var sb strings.Builder

	c := m.checkout

	sb.WriteString(fmt.Sprintf("Bill: %s    Date: %s    Staff: %d\n\n",
		c.BillNumber(), FormatTime(c.CreatedAt()), m.sess.StaffID))

	for _, l := range c.Lines() {
		sb.WriteString(fmt.Sprintf("%-24s x%-3d %10s\n", l.Name, l.Quantity, FormatAmount(l.Subtotal())))
	}

	sb.WriteString(fmt.Sprintf("\nGrand Total: %s\n", FormatAmount(c.Payable())))

	switch m.state {
	case payStateMethod, payStateAmount:
		sb.WriteString("\n" + m.form.View())
	case payStateConfirm:
		sb.WriteString(fmt.Sprintf("\nMethod:   %s\n", c.Method()))
		sb.WriteString(fmt.Sprintf("Received: %s\n", FormatAmount(c.Tendered())))

		if c.Method().Cash() && c.Balance() > 0 {
			sb.WriteString(fmt.Sprintf("Change:   %s\n", FormatAmount(c.Balance())))
		}

		if m.inFlight {
			sb.WriteString("\nProcessing payment...")
		} else {
			sb.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("enter: confirm payment | m: change method | esc: cancel"))
		}
	case payStateAborted:
		sb.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("esc: back to billing"))
	}

	content := sb.String()
	if m.status != "" {
		content += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type submitMsg struct {
	bill *billing.Bill
	err  error
}

func (m PaymentModel) submitCmd() tea.Cmd {
	checkout := m.checkout
	staffID := m.sess.StaffID

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		record, err := checkout.Confirm(ctx, m.gateway, settlement.ConfirmParams{StaffID: staffID})
		if err != nil {
			return submitMsg{err: err}
		}

		bill, err := m.submitter.Submit(ctx, record)
		if err != nil {
			return submitMsg{err: err}
		}

		return submitMsg{bill: bill}
	}
}
