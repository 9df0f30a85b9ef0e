package catalog

// Item is a sellable product as served by the product API. Prices are
// in minor units.
type Item struct {
	ID          string
	Name        string
	UnitPrice   int64
	StockOnHand int
	ImageURL    string
}

// Sellable reports whether the item has stock on hand.
func (i Item) Sellable() bool {
	return i.StockOnHand > 0
}
