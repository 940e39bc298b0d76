package cart

import (
	"context"

	"github.com/reagan13/backend-itservice/internal/domain"
)

// Repository maintains the (user, product) -> quantity mapping. At most one
// row exists per pair; all merge semantics happen in single atomic
// statements, never as a read followed by a write.
type Repository interface {
	// AddOrMerge inserts the row or increments its quantity by delta.
	AddOrMerge(ctx context.Context, userID, productID int64, delta int) (*domain.CartItem, error)
	// SetQuantity overwrites the quantity. A quantity <= 0 deletes the row.
	// A missing row is domain.ErrNotFound; SetQuantity never creates rows.
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error
	// Remove deletes the row and returns the deleted count, or
	// domain.ErrNotFound when nothing matched.
	Remove(ctx context.Context, userID, productID int64) (int64, error)
	// ListWithDetails joins cart rows with current catalog data and returns
	// the computed cart total. An empty cart is an empty slice and zero.
	ListWithDetails(ctx context.Context, userID int64) ([]domain.CartLine, domain.Cents, error)
	// ListByIDs is ListWithDetails restricted to a product-ID set.
	ListByIDs(ctx context.Context, userID int64, productIDs []int64) ([]domain.CartLine, domain.Cents, error)
	// DeleteAllForUser removes every cart row for the user and returns the
	// removed items. The delete row-locks the rows for the enclosing
	// transaction, so a concurrent merge serializes behind it.
	DeleteAllForUser(ctx context.Context, userID int64) ([]domain.CartItem, error)
}
