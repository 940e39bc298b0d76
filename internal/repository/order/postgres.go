package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/reagan13/backend-itservice/internal/db"
	"github.com/reagan13/backend-itservice/internal/domain"
)

type postgresRepo struct {
	q      db.Querier
	logger *log.Logger
}

func NewPostgres(q db.Querier, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{q: q, logger: logger}
}

func (r *postgresRepo) CreateHeader(ctx context.Context, userID int64, total domain.Cents) (*domain.Order, error) {
	const q = `
INSERT INTO orders (user_id, total_cents)
VALUES ($1, $2)
RETURNING id, user_id, order_date, total_cents
`
	var o domain.Order
	var cents int64
	if err := r.q.QueryRow(ctx, q, userID, int64(total)).Scan(&o.ID, &o.UserID, &o.OrderDate, &cents); err != nil {
		r.logger.Printf("order repo: create user_id=%d error=%v", userID, err)
		return nil, err
	}
	o.TotalCents = domain.Cents(cents)
	return &o, nil
}

func (r *postgresRepo) InsertItems(ctx context.Context, orderID int64, items []domain.OrderItem) error {
	const q = `
INSERT INTO order_items (order_id, product_id, quantity, price_cents)
VALUES ($1, $2, $3, $4)
`
	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(q, orderID, item.ProductID, item.Quantity, int64(item.PriceCents))
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()

	for i := range items {
		if _, err := results.Exec(); err != nil {
			r.logger.Printf("order repo: insert item order_id=%d idx=%d error=%v", orderID, i, err)
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	const q = `
SELECT id, user_id, order_date, total_cents
FROM orders
WHERE user_id = $1
ORDER BY order_date DESC, id DESC
`
	rows, err := r.q.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("order repo: list user_id=%d error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var cents int64
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrderDate, &cents); err != nil {
			return nil, err
		}
		o.TotalCents = domain.Cents(cents)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *postgresRepo) ItemsByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	const q = `
SELECT order_id, product_id, quantity, price_cents
FROM order_items
WHERE order_id = ANY($1)
ORDER BY order_id, product_id
`
	rows, err := r.q.Query(ctx, q, orderIDs)
	if err != nil {
		r.logger.Printf("order repo: items error=%v", err)
		return nil, err
	}
	defer rows.Close()

	items := make(map[int64][]domain.OrderItem)
	for rows.Next() {
		var item domain.OrderItem
		var cents int64
		if err := rows.Scan(&item.OrderID, &item.ProductID, &item.Quantity, &cents); err != nil {
			return nil, err
		}
		item.PriceCents = domain.Cents(cents)
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresRepo) GetForUser(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	const q = `
SELECT id, user_id, order_date, total_cents
FROM orders
WHERE id = $1 AND user_id = $2
`
	var o domain.Order
	var cents int64
	err := r.q.QueryRow(ctx, q, orderID, userID).Scan(&o.ID, &o.UserID, &o.OrderDate, &cents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get user_id=%d order_id=%d error=%v", userID, orderID, err)
		return nil, err
	}
	o.TotalCents = domain.Cents(cents)
	return &o, nil
}
