package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okvann/billdesk/internal/billing"
	"github.com/okvann/billdesk/internal/settlement"
)

// ReceiptModel renders the server-confirmed bill. Everything shown
// here comes from the server response, never from local state.
type ReceiptModel struct {
	CommonModel
	bill     *billing.Bill
	method   settlement.Method
	tendered int64
	balance  int64
}

func NewReceiptModel(done PaymentDoneMsg) ReceiptModel {
	return ReceiptModel{
		bill:     done.Bill,
		method:   done.Method,
		tendered: done.Tendered,
		balance:  done.Balance,
	}
}

func (m ReceiptModel) Init() tea.Cmd {
	return nil
}

func (m ReceiptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "enter", "n":
			return m, Back
		}
	}

	return m, nil
}

func (m ReceiptModel) View() string {
	var sb strings.Builder

	b := m.bill

	sb.WriteString("Payment Successful\n\n")
	sb.WriteString(fmt.Sprintf("Bill No:  %s\n", b.BillNumber))
	sb.WriteString(fmt.Sprintf("Date:     %s\n", FormatTime(b.CreatedAt)))
	sb.WriteString(fmt.Sprintf("Customer: %s (%s)\n\n", b.CustomerName, b.CustomerPhone))

	for _, item := range b.Items {
		sb.WriteString(fmt.Sprintf("%-24s x%-3d %10s\n", item.ProductName, item.Quantity, FormatAmount(item.TotalPrice)))
	}

	sb.WriteString(fmt.Sprintf("\nTotal:    %s\n", FormatAmount(b.TotalAmount)))

	if b.DiscountAmount != 0 {
		sb.WriteString(fmt.Sprintf("Discount: %s\n", FormatAmount(b.DiscountAmount)))
	}

	sb.WriteString(fmt.Sprintf("Payable:  %s\n", FormatAmount(b.FinalAmount)))
	sb.WriteString(fmt.Sprintf("Paid:     %s (%s)\n", FormatAmount(m.tendered), m.method))

	if m.method.Cash() && m.balance > 0 {
		sb.WriteString(fmt.Sprintf("Change:   %s\n", FormatAmount(m.balance)))
	}

	if b.TransactionID != nil {
		sb.WriteString(fmt.Sprintf("Txn Ref:  %s\n", *b.TransactionID))
	}

	panel := lipgloss.NewStyle().
		Padding(1, 3).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(sb.String())

	help := lipgloss.NewStyle().Faint(true).Render("n: new sale | esc: back")

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, panel, help))
}
