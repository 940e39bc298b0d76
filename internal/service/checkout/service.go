package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/reagan13/backend-itservice/internal/domain"
)

// Service converts a cart or an explicit item list into a durable order.
// Both entry modes run inside one transaction and price every line from the
// catalog rows read in that transaction; client-supplied prices are treated
// as hints and discarded.
type Service struct {
	tx     TxRunner
	topic  string
	logger *log.Logger
}

func New(tx TxRunner, topic string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{tx: tx, topic: topic, logger: logger}
}

// ItemInput is one requested line. Price is accepted for wire compatibility
// but never trusted; only the (ProductID, Quantity) pair is used.
type ItemInput struct {
	ProductID int64        `json:"id"`
	Quantity  int          `json:"quantity"`
	Price     domain.Cents `json:"price,omitempty"`
}

type orderEvent struct {
	OrderID   int64  `json:"orderId"`
	UserID    int64  `json:"userId"`
	Total     string `json:"total"`
	ItemCount int    `json:"itemCount"`
}

// PlaceOrder checks out the user's cart. The item list names what the
// client believes the cart holds; totals are recomputed from catalog prices
// and the user's cart rows are cleared in the same transaction.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, items []ItemInput) (*domain.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	hints, err := mergeHints(items)
	if err != nil {
		return nil, err
	}

	var out *domain.Order
	err = s.tx.WithinTx(ctx, func(r Repos) error {
		orderItems, total, err := priceItems(ctx, r, hints)
		if err != nil {
			return err
		}

		o, err := r.Orders().CreateHeader(ctx, userID, total)
		if err != nil {
			return err
		}
		if err := r.Orders().InsertItems(ctx, o.ID, orderItems); err != nil {
			return err
		}
		if _, err := r.Carts().DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
		if err := s.publishCreated(ctx, r, o, len(orderItems)); err != nil {
			return err
		}

		o.Items = orderItems
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("checkout: order id=%d user_id=%d total=%s items=%d", out.ID, userID, out.TotalCents, len(out.Items))
	return out, nil
}

// PlaceSingleOrder places an ad-hoc order for one product. It is independent
// of the cart and leaves cart rows untouched.
func (s *Service) PlaceSingleOrder(ctx context.Context, userID, productID int64, quantity int) (*domain.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	if productID <= 0 {
		return nil, fmt.Errorf("%w: product id required", domain.ErrInvalidInput)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", domain.ErrInvalidInput)
	}

	var out *domain.Order
	err := s.tx.WithinTx(ctx, func(r Repos) error {
		p, err := r.Products().GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: product %d", domain.ErrNotFound, productID)
			}
			return err
		}

		total := p.PriceCents * domain.Cents(quantity)
		o, err := r.Orders().CreateHeader(ctx, userID, total)
		if err != nil {
			return err
		}
		items := []domain.OrderItem{{
			OrderID:    o.ID,
			ProductID:  p.ID,
			Quantity:   quantity,
			PriceCents: p.PriceCents,
		}}
		if err := r.Orders().InsertItems(ctx, o.ID, items); err != nil {
			return err
		}
		if err := s.publishCreated(ctx, r, o, 1); err != nil {
			return err
		}

		o.Items = items
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("checkout: single order id=%d user_id=%d product_id=%d qty=%d", out.ID, userID, productID, quantity)
	return out, nil
}

func (s *Service) publishCreated(ctx context.Context, r Repos, o *domain.Order, itemCount int) error {
	event := orderEvent{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Total:     o.TotalCents.String(),
		ItemCount: itemCount,
	}
	return r.Outbox().Insert(ctx, uuid.NewString(), s.topic, fmt.Sprintf("%d", o.ID), event)
}

// mergeHints validates the requested lines and collapses duplicate product
// ids by summing their quantities.
func mergeHints(items []ItemInput) ([]ItemInput, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order requires at least one item", domain.ErrInvalidInput)
	}
	index := make(map[int64]int, len(items))
	merged := make([]ItemInput, 0, len(items))
	for _, item := range items {
		if item.ProductID <= 0 {
			return nil, fmt.Errorf("%w: product id required", domain.ErrInvalidInput)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be a positive integer", domain.ErrInvalidInput)
		}
		if at, ok := index[item.ProductID]; ok {
			merged[at].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, ItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return merged, nil
}

// priceItems resolves the hints against catalog rows fetched in this
// transaction and returns the frozen line items plus the computed total.
func priceItems(ctx context.Context, r Repos, hints []ItemInput) ([]domain.OrderItem, domain.Cents, error) {
	ids := make([]int64, 0, len(hints))
	for _, h := range hints {
		ids = append(ids, h.ProductID)
	}
	products, err := r.Products().ListByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	prices := make(map[int64]domain.Cents, len(products))
	for _, p := range products {
		prices[p.ID] = p.PriceCents
	}

	items := make([]domain.OrderItem, 0, len(hints))
	var total domain.Cents
	for _, h := range hints {
		price, ok := prices[h.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: product %d", domain.ErrNotFound, h.ProductID)
		}
		items = append(items, domain.OrderItem{
			ProductID:  h.ProductID,
			Quantity:   h.Quantity,
			PriceCents: price,
		})
		total += price * domain.Cents(h.Quantity)
	}
	return items, total, nil
}
