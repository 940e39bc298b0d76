package product

import (
	"context"

	"github.com/reagan13/backend-itservice/internal/domain"
)

type Repository interface {
	List(ctx context.Context, limit, offset int) ([]domain.Product, error)
	Search(ctx context.Context, query, category string) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// ListByIDs returns the products matching the given id set. Checkout
	// calls this inside its transaction for authoritative pricing.
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
