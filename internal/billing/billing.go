package billing

import "time"

// RecordItem is one sold line inside a transaction record.
type RecordItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
	TotalPrice  int64  `json:"totalPrice"`
}

// TransactionRecord is the payload posted to the bills API once a
// settlement is confirmed. Amounts are minor units. TransactionID is
// nil for cash payments and a gateway reference for everything else.
type TransactionRecord struct {
	StaffID        int64        `json:"staffId"`
	CustomerName   string       `json:"customerName"`
	CustomerPhone  string       `json:"customerPhone"`
	TotalAmount    int64        `json:"totalAmount"`
	DiscountAmount int64        `json:"discountAmount"`
	FinalAmount    int64        `json:"finalAmount"`
	PaymentMode    string       `json:"paymentMode"`
	Items          []RecordItem `json:"items"`
	BillNumber     string       `json:"billNumber"`
	TransactionID  *string      `json:"transactionId"`
}

// Bill is a transaction as confirmed by the server. The server-assigned
// identifiers are what the receipt shows; the client never synthesizes
// its own.
type Bill struct {
	ID             string       `json:"id"`
	StaffID        int64        `json:"staffId"`
	CustomerName   string       `json:"customerName"`
	CustomerPhone  string       `json:"customerPhone"`
	TotalAmount    int64        `json:"totalAmount"`
	DiscountAmount int64        `json:"discountAmount"`
	FinalAmount    int64        `json:"finalAmount"`
	PaymentMode    string       `json:"paymentMode"`
	Items          []RecordItem `json:"items"`
	BillNumber     string       `json:"billNumber"`
	TransactionID  *string      `json:"transactionId"`
	CreatedAt      time.Time    `json:"createdAt"`
}
