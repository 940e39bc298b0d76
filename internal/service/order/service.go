package order

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/reagan13/backend-itservice/internal/domain"
)

// displayPrefix precedes numeric order ids in API responses. Lookups accept
// both forms.
const displayPrefix = "ORD-"

// Service is the read path over orders. It never mutates anything.
type Service struct {
	repo orderRepo
}

type orderRepo interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ItemsByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error)
	GetForUser(ctx context.Context, userID, orderID int64) (*domain.Order, error)
}

func New(repo orderRepo) *Service {
	return &Service{repo: repo}
}

// View is an order formatted for clients: prefixed display id and a
// calendar date without a time component.
type View struct {
	ID          string             `json:"id"`
	OrderDate   string             `json:"orderDate"`
	TotalAmount domain.Cents       `json:"totalAmount"`
	Items       []domain.OrderItem `json:"items"`
}

// ListOrders returns the user's orders newest first. Line items are fetched
// with one batched query over the order-id set.
func (s *Service) ListOrders(ctx context.Context, userID int64) ([]View, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []View{}, nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	items, err := s.repo.ItemsByOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(orders))
	for _, o := range orders {
		o.Items = items[o.ID]
		views = append(views, toView(o))
	}
	return views, nil
}

// GetOrder returns one order by raw or ORD-prefixed id. Orders owned by
// other users are reported as not found.
func (s *Service) GetOrder(ctx context.Context, userID int64, orderID string) (*View, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	id, err := ParseID(orderID)
	if err != nil {
		return nil, err
	}
	o, err := s.repo.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ItemsByOrderIDs(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	view := toView(*o)
	return &view, nil
}

// FormatID renders a numeric order id in its display form.
func FormatID(id int64) string {
	return fmt.Sprintf("%s%d", displayPrefix, id)
}

// ParseID accepts "42" or "ORD-42" and returns the numeric id.
func ParseID(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, displayPrefix)
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: order id %q", domain.ErrInvalidInput, raw)
	}
	return id, nil
}

func toView(o domain.Order) View {
	items := o.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	return View{
		ID:          FormatID(o.ID),
		OrderDate:   o.OrderDate.Format("2006-01-02"),
		TotalAmount: o.TotalCents,
		Items:       items,
	}
}
