package main

import (
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/okvann/billdesk/cmd/pos/internal/view"
	"github.com/okvann/billdesk/internal/api"
	"github.com/okvann/billdesk/internal/billing"
	"github.com/okvann/billdesk/internal/cart"
	"github.com/okvann/billdesk/internal/catalog"
	"github.com/okvann/billdesk/internal/config"
	"github.com/okvann/billdesk/internal/session"
	"github.com/okvann/billdesk/internal/settlement"
	"github.com/okvann/billdesk/internal/ticket"
)

type View int

const (
	ViewMenu    View = 0
	ViewSale    View = 1
	ViewTickets View = 2
	ViewHistory View = 3
	ViewPayment View = 4
	ViewReceipt View = 5
)

type model struct {
	cache      *catalog.Cache
	activeCart *cart.Cart
	tickets    *ticket.Store
	submitter  *billing.Submitter
	gateway    settlement.Authorizer
	sess       *session.Session

	currentView View

	saleView    view.SaleModel
	ticketsView view.TicketsModel
	historyView view.HistoryModel
	paymentView view.PaymentModel
	receiptView view.ReceiptModel
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sess, err := session.New(cfg.API.Token, cfg.API.DeviceID)
	if err != nil {
		slog.Error("failed to open session", "error", err)
		os.Exit(1)
	}

	if sess.Expired() {
		slog.Warn("auth token is expired, requests will be rejected")
	}

	dataDir := cfg.App.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("failed to resolve home directory", "error", err)
			os.Exit(1)
		}

		dataDir = filepath.Join(home, ".billdesk")
	}

	tickets, err := ticket.NewStore(dataDir)
	if err != nil {
		slog.Error("failed to open ticket store", "error", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, sess)

	var (
		cache      = catalog.NewCache(client)
		activeCart = cart.New()
		submitter  = billing.NewSubmitter(client)
		gateway    = settlement.SimulatedGateway{Delay: cfg.Gateway.Delay}
	)

	return model{
		cache:       cache,
		activeCart:  activeCart,
		tickets:     tickets,
		submitter:   submitter,
		gateway:     gateway,
		sess:        sess,
		currentView: ViewMenu,
		saleView:    view.NewSaleModel(cache, activeCart, tickets),
		ticketsView: view.NewTicketsModel(tickets),
		historyView: view.NewHistoryModel(submitter),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewSale
				m.saleView = view.NewSaleModel(m.cache, m.activeCart, m.tickets)

				return m, m.saleView.Init()
			case "2":
				m.currentView = ViewTickets
				m.ticketsView = view.NewTicketsModel(m.tickets)

				return m, m.ticketsView.Init()
			case "3":
				m.currentView = ViewHistory
				m.historyView = view.NewHistoryModel(m.submitter)

				return m, m.historyView.Init()
			}
		}

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil

	case view.StartPaymentMsg:
		m.currentView = ViewPayment
		m.paymentView = view.NewPaymentModel(msg.Checkout, m.submitter, m.gateway, m.sess)

		return m, m.paymentView.Init()

	case view.ResumeTicketMsg:
		*m.activeCart = *cart.Restore(msg.Lines)
		m.currentView = ViewSale
		m.saleView = view.NewSaleModel(m.cache, m.activeCart, m.tickets)

		return m, m.saleView.Init()

	case view.PaymentDoneMsg:
		m.activeCart.Clear()
		m.currentView = ViewReceipt
		m.receiptView = view.NewReceiptModel(msg)

		return m, nil
	}

	switch m.currentView {
	case ViewSale:
		var newModel tea.Model
		newModel, cmd = m.saleView.Update(msg)
		m.saleView = newModel.(view.SaleModel)
	case ViewTickets:
		var newModel tea.Model
		newModel, cmd = m.ticketsView.Update(msg)
		m.ticketsView = newModel.(view.TicketsModel)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.historyView.Update(msg)
		m.historyView = newModel.(view.HistoryModel)
	case ViewPayment:
		var newModel tea.Model
		newModel, cmd = m.paymentView.Update(msg)
		m.paymentView = newModel.(view.PaymentModel)
	case ViewReceipt:
		var newModel tea.Model
		newModel, cmd = m.receiptView.Update(msg)
		m.receiptView = newModel.(view.ReceiptModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Billing Counter\n\n" +
				"1. New Sale\n" +
				"2. Held Bills\n" +
				"3. Transaction History\n\n" +
				"q. Quit",
		)
	case ViewSale:
		return m.saleView.View()
	case ViewTickets:
		return m.ticketsView.View()
	case ViewHistory:
		return m.historyView.View()
	case ViewPayment:
		return m.paymentView.View()
	case ViewReceipt:
		return m.receiptView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
