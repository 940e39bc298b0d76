package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/reagan13/backend-itservice/internal/domain"
)

// Service owns cart mutation and read semantics. All merge behavior is
// delegated to the store's atomic upsert; the service never reads a
// quantity in order to write it back.
type Service struct {
	repo     cartRepo
	products productRepo
}

type cartRepo interface {
	AddOrMerge(ctx context.Context, userID, productID int64, delta int) (*domain.CartItem, error)
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error
	Remove(ctx context.Context, userID, productID int64) (int64, error)
	ListWithDetails(ctx context.Context, userID int64) ([]domain.CartLine, domain.Cents, error)
	ListByIDs(ctx context.Context, userID int64, productIDs []int64) ([]domain.CartLine, domain.Cents, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

func New(repo cartRepo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// View is the cart as returned to clients: joined lines plus the computed
// total over current catalog prices.
type View struct {
	Items []domain.CartLine `json:"items"`
	Total domain.Cents      `json:"total"`
}

// AddOrMerge adds quantity for (userID, productID), merging additively with
// any existing row. The product must exist in the catalog.
func (s *Service) AddOrMerge(ctx context.Context, userID, productID int64, quantity int) (*domain.CartItem, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	if productID <= 0 {
		return nil, fmt.Errorf("%w: product id required", domain.ErrInvalidInput)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", domain.ErrInvalidInput)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, productID)
		}
		return nil, err
	}
	return s.repo.AddOrMerge(ctx, userID, productID, quantity)
}

// SetQuantity sets the absolute quantity. Zero or negative quantities delete
// the row; a missing row is reported as not found, never created.
func (s *Service) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if userID <= 0 || productID <= 0 {
		return fmt.Errorf("%w: user id and product id required", domain.ErrInvalidInput)
	}
	return s.repo.SetQuantity(ctx, userID, productID, quantity)
}

// Remove deletes the row and returns the deleted count.
func (s *Service) Remove(ctx context.Context, userID, productID int64) (int64, error) {
	if userID <= 0 || productID <= 0 {
		return 0, fmt.Errorf("%w: user id and product id required", domain.ErrInvalidInput)
	}
	return s.repo.Remove(ctx, userID, productID)
}

// List returns the cart joined with catalog data. An empty cart is a valid
// empty view, not an error.
func (s *Service) List(ctx context.Context, userID int64) (*View, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	items, total, err := s.repo.ListWithDetails(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &View{Items: items, Total: total}, nil
}

// ListByIDs returns the cart restricted to the given product ids, for
// client-side detail refresh.
func (s *Service) ListByIDs(ctx context.Context, userID int64, productIDs []int64) (*View, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	if len(productIDs) == 0 {
		return &View{Items: []domain.CartLine{}}, nil
	}
	items, total, err := s.repo.ListByIDs(ctx, userID, productIDs)
	if err != nil {
		return nil, err
	}
	return &View{Items: items, Total: total}, nil
}
