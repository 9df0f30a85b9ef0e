package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okvann/billdesk/internal/cart"
	"github.com/okvann/billdesk/internal/ticket"
)

// TicketsModel lists held bills and lets the cashier resume or discard
// them.
type TicketsModel struct {
	CommonModel
	store *ticket.Store

	table   table.Model
	tickets []ticket.Ticket
	status  string
}

func NewTicketsModel(store *ticket.Store) TicketsModel {
	columns := []table.Column{
		{Title: "Bill", Width: 20},
		{Title: "Held At", Width: 20},
		{Title: "Items", Width: 6},
		{Title: "Total", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
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

	return TicketsModel{store: store, table: t}
}

func (m TicketsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TicketsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ticketsMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading held bills: %v", msg.err)
			return m, nil
		}

		m.tickets = msg.tickets
		m.refreshTable()

		return m, nil

	case resumeMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Could not resume: %v", msg.err)
			return m, m.loadCmd()
		}

		return m, func() tea.Msg { return ResumeTicketMsg{Lines: msg.lines} }

	case discardMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Could not delete: %v", msg.err)
		}

		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "enter":
			if t, ok := m.selected(); ok {
				return m, m.resumeCmd(t.ID)
			}

			return m, nil
		case "d":
			if t, ok := m.selected(); ok {
				return m, m.discardCmd(t.ID)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TicketsModel) selected() (ticket.Ticket, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.tickets) {
		return ticket.Ticket{}, false
	}

	return m.tickets[idx], true
}

func (m *TicketsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.tickets))
	for _, t := range m.tickets {
		rows = append(rows, table.Row{
			t.ID,
			FormatTime(t.CreatedAt),
			strconv.Itoa(len(t.Lines)),
			FormatAmount(t.Total),
		})
	}

	m.table.SetRows(rows)
}

func (m TicketsModel) View() string {
	if len(m.tickets) == 0 {
		content := "No held bills.\n\n" +
			lipgloss.NewStyle().Faint(true).Render("esc: back | r: refresh")
		if m.status != "" {
			content = m.status + "\n\n" + content
		}

		return lipgloss.NewStyle().Padding(2).Render(content)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		tableView,
		lipgloss.NewStyle().Faint(true).Render("enter: resume | d: delete | r: refresh | esc: back"),
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type ticketsMsg struct {
	tickets []ticket.Ticket
	err     error
}

func (m TicketsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		tickets, err := m.store.List()
		return ticketsMsg{tickets: tickets, err: err}
	}
}

type resumeMsg struct {
	lines []cart.Line
	err   error
}

func (m TicketsModel) resumeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		lines, err := m.store.Resume(id)
		return resumeMsg{lines: lines, err: err}
	}
}

type discardMsg struct {
	err error
}

func (m TicketsModel) discardCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return discardMsg{err: m.store.Discard(id)}
	}
}
