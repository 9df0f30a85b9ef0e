package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okvann/billdesk/internal/cart"
	"github.com/okvann/billdesk/internal/catalog"
	"github.com/okvann/billdesk/internal/settlement"
	"github.com/okvann/billdesk/internal/ticket"
)

// SaleModel is the billing counter: the product catalog on the left,
// the active cart on the right.
type SaleModel struct {
	CommonModel
	cache   *catalog.Cache
	cart    *cart.Cart
	tickets *ticket.Store

	table     table.Model
	search    textinput.Model
	searching bool

	items   []catalog.Item
	loading bool
	status  string
}

func NewSaleModel(cache *catalog.Cache, activeCart *cart.Cart, tickets *ticket.Store) SaleModel {
	columns := []table.Column{
		{Title: "Product", Width: 28},
		{Title: "Price", Width: 10},
		{Title: "Stock", Width: 6},
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

	search := textinput.New()
	search.Placeholder = "Search product..."
	search.Width = 28

	return SaleModel{
		cache:   cache,
		cart:    activeCart,
		tickets: tickets,
		table:   t,
		search:  search,
		loading: true,
	}
}

func (m SaleModel) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m SaleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogMsg:
		m.loading = false

		m.items = msg.items
		if msg.err != nil {
			// Stale items stay on screen; the cashier retries with r.
			m.status = fmt.Sprintf("Catalog refresh failed: %v (showing last known stock)", msg.err)
		} else {
			m.status = ""
		}

		m.applySearch()

		return m, nil

	case parkMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Could not hold bill: %v", msg.err)
			return m, nil
		}

		m.cart.Clear()
		m.status = fmt.Sprintf("Bill held as %s", msg.ticket.ID)

		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m SaleModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applySearch()

		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()

		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()

	return m, cmd
}

func (m SaleModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, Back
	case "r":
		m.loading = true
		m.status = ""

		return m, m.refreshCmd()
	case "/":
		m.searching = true
		m.search.Focus()

		return m, textinput.Blink
	case "enter", "+", "a":
		m.addSelected()
		return m, nil
	case "-", "x":
		if item, ok := m.selected(); ok {
			m.cart.Remove(item.ID)
		}

		return m, nil
	case "c":
		m.cart.Clear()
		m.status = ""

		return m, nil
	case "p":
		if m.cart.Empty() {
			m.status = "Cart is empty. Nothing to hold."
			return m, nil
		}

		return m, m.parkCmd(m.cart.Lines())
	case "y":
		checkout, err := settlement.NewCheckout(m.cart)
		if err != nil {
			m.status = "Cart is empty. Add items before payment."
			return m, nil
		}

		return m, func() tea.Msg { return StartPaymentMsg{Checkout: checkout} }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *SaleModel) addSelected() {
	item, ok := m.selected()
	if !ok {
		return
	}

	switch err := m.cart.Add(item); {
	case errors.Is(err, cart.ErrStockLimit):
		m.status = fmt.Sprintf("Stock limit: only %d of %s on hand", item.StockOnHand, item.Name)
	case errors.Is(err, cart.ErrOutOfStock):
		m.status = fmt.Sprintf("%s is out of stock", item.Name)
	default:
		m.status = ""
	}
}

func (m SaleModel) selected() (catalog.Item, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return catalog.Item{}, false
	}

	return m.items[idx], true
}

func (m *SaleModel) applySearch() {
	m.items = m.cache.Search(m.search.Value())

	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		rows = append(rows, table.Row{
			item.Name,
			FormatAmount(item.UnitPrice),
			strconv.Itoa(item.StockOnHand),
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m SaleModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading catalog...")
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.search.View(),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
	)

	right := lipgloss.NewStyle().
		Padding(0, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(44).
		Render(m.cartView())

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	help := "enter/+: add | -: remove | c: clear | p: hold bill | y: pay | /: search | r: refresh | esc: back"
	content = lipgloss.JoinVertical(lipgloss.Left,
		content,
		lipgloss.NewStyle().Faint(true).Render(help),
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m SaleModel) cartView() string {
	var sb strings.Builder

	sb.WriteString("Cart\n\n")

	lines := m.cart.Lines()
	if len(lines) == 0 {
		sb.WriteString("No items in cart\n")
	}

	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("%-22s x%-3d %10s\n", l.Name, l.Quantity, FormatAmount(l.Subtotal())))
		sb.WriteString(lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("  stock left: %d", l.Remaining())) + "\n")
	}

	sb.WriteString(fmt.Sprintf("\nTotal: %s", FormatAmount(m.cart.Total())))

	return sb.String()
}

// Messages

type catalogMsg struct {
	items []catalog.Item
	err   error
}

func (m SaleModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		items, err := m.cache.Refresh(ctx)

		return catalogMsg{items: items, err: err}
	}
}

type parkMsg struct {
	ticket *ticket.Ticket
	err    error
}

func (m SaleModel) parkCmd(lines []cart.Line) tea.Cmd {
	return func() tea.Msg {
		t, err := m.tickets.Park(lines)
		return parkMsg{ticket: t, err: err}
	}
}
