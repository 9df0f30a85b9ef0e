package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a product id has no matching row.
var ErrNotFound = errors.New("product not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	CreateProduct(ctx context.Context, item *Item) error
	GetProduct(ctx context.Context, id string) (*Item, error)
	ListProducts(ctx context.Context) ([]Item, error)
	UpdateStock(ctx context.Context, id string, stockOnHand int) error
}

// Service is the backend-side product catalog used by the reference
// API server.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name        string
	UnitPrice   int64
	StockOnHand int
	ImageURL    string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Item, error) {
	item := &Item{
		Name:        params.Name,
		UnitPrice:   params.UnitPrice,
		StockOnHand: params.StockOnHand,
		ImageURL:    params.ImageURL,
	}
	if err := s.repo.CreateProduct(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.ListProducts(ctx)
}

// SetStock replaces the on-hand stock for a product.
func (s *Service) SetStock(ctx context.Context, id string, stockOnHand int) error {
	return s.repo.UpdateStock(ctx, id, stockOnHand)
}

// Deduct reduces stock for each sold line. Stock never goes below
// zero; oversells are clamped rather than rejected, since the client
// enforces the ceiling at cart time.
func (s *Service) Deduct(ctx context.Context, id string, quantity int) error {
	item, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	remaining := item.StockOnHand - quantity
	if remaining < 0 {
		remaining = 0
	}

	return s.repo.UpdateStock(ctx, id, remaining)
}
