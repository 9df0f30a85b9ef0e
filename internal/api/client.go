package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/okvann/billdesk/internal/billing"
	"github.com/okvann/billdesk/internal/catalog"
)

// Credentials supplies the auth headers attached to every request.
// The session module implements this; the client never touches token
// storage itself.
type Credentials interface {
	AuthHeaders() map[string]string
}

// Client is the typed REST client for the billing backend.
type Client struct {
	http  *resty.Client
	creds Credentials
}

// NewClient builds a client for the API at baseURL. Every call is
// bounded by timeout; a timeout surfaces as a *NetworkError.
func NewClient(baseURL string, timeout time.Duration, creds Credentials) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{http: httpClient, creds: creds}
}

type productResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	ImageURL      string `json:"imageUrl"`
}

// Products fetches the sellable item list.
func (c *Client) Products(ctx context.Context) ([]catalog.Item, error) {
	var products []productResponse

	resp, err := c.request(ctx).
		SetResult(&products).
		Get("/api/products")
	if err := c.check("fetching products", resp, err); err != nil {
		return nil, err
	}

	items := make([]catalog.Item, len(products))
	for i, p := range products {
		items[i] = catalog.Item{
			ID:          p.ID,
			Name:        p.Name,
			UnitPrice:   p.Price,
			StockOnHand: p.StockQuantity,
			ImageURL:    p.ImageURL,
		}
	}

	return items, nil
}

// SubmitBill posts a confirmed transaction record. The returned bill
// carries the server-assigned identifiers shown on the receipt.
func (c *Client) SubmitBill(ctx context.Context, record *billing.TransactionRecord) (*billing.Bill, error) {
	var bill billing.Bill

	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		SetResult(&bill).
		Post("/api/bills")
	if err := c.check("submitting bill", resp, err); err != nil {
		return nil, err
	}

	return &bill, nil
}

// Bills fetches the transaction history, newest first.
func (c *Client) Bills(ctx context.Context) ([]billing.Bill, error) {
	var bills []billing.Bill

	resp, err := c.request(ctx).
		SetResult(&bills).
		Get("/api/bills")
	if err := c.check("fetching bills", resp, err); err != nil {
		return nil, err
	}

	// The server returns storage order; the history screen wants the
	// latest sale on top.
	for i, j := 0, len(bills)-1; i < j; i, j = i+1, j-1 {
		bills[i], bills[j] = bills[j], bills[i]
	}

	return bills, nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if c.creds != nil {
		req.SetHeaders(c.creds.AuthHeaders())
	}

	return req
}

// check folds transport errors and non-2xx statuses into the typed
// error taxonomy. Raw resty errors never leave this package.
func (c *Client) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	status := resp.StatusCode()

	switch {
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		return nil
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return &ValidationError{Op: op, StatusCode: status, Message: strings.TrimSpace(string(resp.Body()))}
	default:
		return &NetworkError{Op: op, StatusCode: status}
	}
}
