package order

import (
	"context"

	"github.com/reagan13/backend-itservice/internal/domain"
)

type Repository interface {
	// CreateHeader inserts the order row with a server-assigned date and
	// returns it. Items are inserted separately in the same transaction.
	CreateHeader(ctx context.Context, userID int64, total domain.Cents) (*domain.Order, error)
	// InsertItems batch-inserts the line items for one order.
	InsertItems(ctx context.Context, orderID int64, items []domain.OrderItem) error
	// ListByUser returns the user's orders newest first, without items.
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	// ItemsByOrderIDs fetches line items for a set of orders in one query.
	ItemsByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error)
	// GetForUser returns the order only when it belongs to the user.
	GetForUser(ctx context.Context, userID, orderID int64) (*domain.Order, error)
}
