package ticket

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/okvann/billdesk/internal/cart"
)

var (
	// ErrEmptyCart is returned when parking a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNotFound is returned when resuming a ticket id that is not in
	// the store.
	ErrNotFound = errors.New("ticket not found")
)

const fileName = "held_bills.json"

// Store persists held tickets as a JSON array in a single file under
// the data directory. Every operation reads the whole list, mutates it
// and writes it back; a mutex serializes the read-modify-write cycles
// so interleaved park/discard calls cannot lose writes.
type Store struct {
	mu   sync.Mutex
	path string

	// lastMillis guards against two parks landing in the same
	// millisecond, which would collide on the timestamp-based id.
	lastMillis int64

	now func() time.Time
}

// NewStore opens (or creates) the ticket store under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{
		path: filepath.Join(dataDir, fileName),
		now:  time.Now,
	}, nil
}

// Park saves the given cart lines as a new ticket and returns it.
func (s *Store) Park(lines []cart.Line) (*Ticket, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load()
	if err != nil {
		return nil, err
	}

	now := s.now()

	millis := now.UnixMilli()
	if millis <= s.lastMillis {
		millis = s.lastMillis + 1
	}

	s.lastMillis = millis

	snap := cart.Restore(lines)

	t := Ticket{
		ID:        fmt.Sprintf("BILL-%d", millis),
		Lines:     snap.Lines(),
		Total:     snap.Total(),
		CreatedAt: now,
	}

	tickets = append(tickets, t)
	if err := s.save(tickets); err != nil {
		return nil, err
	}

	return &t, nil
}

// List returns all parked tickets, oldest first.
func (s *Store) List() ([]Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Resume removes the ticket and returns its lines, ready to become the
// active cart. A resumed ticket is gone; parking again creates a new id.
func (s *Store) Resume(id string) ([]cart.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load()
	if err != nil {
		return nil, err
	}

	for i, t := range tickets {
		if t.ID != id {
			continue
		}

		remaining := append(tickets[:i:i], tickets[i+1:]...)
		if err := s.save(remaining); err != nil {
			return nil, err
		}

		return t.Lines, nil
	}

	return nil, ErrNotFound
}

// Discard removes the ticket permanently. Unknown ids are a no-op.
func (s *Store) Discard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load()
	if err != nil {
		return err
	}

	for i, t := range tickets {
		if t.ID != id {
			continue
		}

		return s.save(append(tickets[:i:i], tickets[i+1:]...))
	}

	return nil
}

func (s *Store) load() ([]Ticket, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading ticket store: %w", err)
	}

	var tickets []Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		return nil, fmt.Errorf("decoding ticket store: %w", err)
	}

	return tickets, nil
}

func (s *Store) save(tickets []Ticket) error {
	if tickets == nil {
		tickets = []Ticket{}
	}

	data, err := json.Marshal(tickets)
	if err != nil {
		return fmt.Errorf("encoding ticket store: %w", err)
	}

	// Write-then-rename keeps the list intact if the process dies
	// mid-write.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing ticket store: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing ticket store: %w", err)
	}

	return nil
}
