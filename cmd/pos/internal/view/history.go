package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okvann/billdesk/internal/billing"
)

// HistoryModel shows past transactions, newest first.
type HistoryModel struct {
	CommonModel
	submitter *billing.Submitter

	table   table.Model
	bills   []billing.Bill
	loading bool
	err     error
}

func NewHistoryModel(submitter *billing.Submitter) HistoryModel {
	columns := []table.Column{
		{Title: "Date", Width: 20},
		{Title: "Bill", Width: 20},
		{Title: "Mode", Width: 8},
		{Title: "Amount", Width: 10},
		{Title: "Customer", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return HistoryModel{submitter: submitter, table: t, loading: true}
}

func (m HistoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.bills = msg.bills
		m.refreshTable()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *HistoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.bills))
	for _, b := range m.bills {
		rows = append(rows, table.Row{
			FormatTime(b.CreatedAt),
			b.BillNumber,
			b.PaymentMode,
			FormatAmount(b.FinalAmount),
			b.CustomerName,
		})
	}

	m.table.SetRows(rows)
}

func (m HistoryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\nr: retry | esc: back", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		tableView,
		lipgloss.NewStyle().Faint(true).Render("r: refresh | esc: back"),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type historyMsg struct {
	bills []billing.Bill
	err   error
}

func (m HistoryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		bills, err := m.submitter.History(ctx)

		return historyMsg{bills: bills, err: err}
	}
}
