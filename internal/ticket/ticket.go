package ticket

import (
	"time"

	"github.com/okvann/billdesk/internal/cart"
)

// Ticket is a parked cart. Once created it is immutable; the only
// lifecycle events are resume (which removes it) and discard.
type Ticket struct {
	ID        string      `json:"id"`
	Lines     []cart.Line `json:"cart"`
	Total     int64       `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
}
