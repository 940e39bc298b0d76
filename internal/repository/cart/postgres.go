package cart

import (
	"context"
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

// NewPostgres returns a Repository running on the given querier, which may
// be the pool or a transaction.
func NewPostgres(q db.Querier, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{q: q, logger: logger}
}

func (r *postgresRepo) AddOrMerge(ctx context.Context, userID, productID int64, delta int) (*domain.CartItem, error) {
	const q = `
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id) DO UPDATE SET
    quantity = cart_items.quantity + EXCLUDED.quantity,
    updated_at = now()
RETURNING user_id, product_id, quantity, created_at, updated_at
`
	var item domain.CartItem
	err := r.q.QueryRow(ctx, q, userID, productID, delta).Scan(
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		r.logger.Printf("cart repo: merge user_id=%d product_id=%d error=%v", userID, productID, err)
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity <= 0 {
		_, err := r.Remove(ctx, userID, productID)
		return err
	}
	const q = `
UPDATE cart_items
SET quantity = $3, updated_at = now()
WHERE user_id = $1 AND product_id = $2
`
	cmd, err := r.q.Exec(ctx, q, userID, productID, quantity)
	if err != nil {
		r.logger.Printf("cart repo: set user_id=%d product_id=%d error=%v", userID, productID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Remove(ctx context.Context, userID, productID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		r.logger.Printf("cart repo: remove user_id=%d product_id=%d error=%v", userID, productID, err)
		return 0, err
	}
	if cmd.RowsAffected() == 0 {
		return 0, domain.ErrNotFound
	}
	return cmd.RowsAffected(), nil
}

const lineColumns = `
SELECT ci.product_id, p.name, p.price_cents, p.image, ci.quantity, p.price_cents * ci.quantity AS line_total
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
`

func (r *postgresRepo) ListWithDetails(ctx context.Context, userID int64) ([]domain.CartLine, domain.Cents, error) {
	const q = lineColumns + `
WHERE ci.user_id = $1
ORDER BY ci.created_at ASC
`
	rows, err := r.q.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("cart repo: list user_id=%d error=%v", userID, err)
		return nil, 0, err
	}
	return scanLines(rows)
}

func (r *postgresRepo) ListByIDs(ctx context.Context, userID int64, productIDs []int64) ([]domain.CartLine, domain.Cents, error) {
	const q = lineColumns + `
WHERE ci.user_id = $1 AND ci.product_id = ANY($2)
ORDER BY ci.created_at ASC
`
	rows, err := r.q.Query(ctx, q, userID, productIDs)
	if err != nil {
		r.logger.Printf("cart repo: list by ids user_id=%d error=%v", userID, err)
		return nil, 0, err
	}
	return scanLines(rows)
}

func (r *postgresRepo) DeleteAllForUser(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	const q = `
DELETE FROM cart_items
WHERE user_id = $1
RETURNING user_id, product_id, quantity, created_at, updated_at
`
	rows, err := r.q.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("cart repo: clear user_id=%d error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanLines(rows pgx.Rows) ([]domain.CartLine, domain.Cents, error) {
	defer rows.Close()

	lines := make([]domain.CartLine, 0)
	var total domain.Cents
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Price, &line.Image, &line.Quantity, &line.LineTotal); err != nil {
			return nil, 0, err
		}
		lines = append(lines, line)
		total += line.LineTotal
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return lines, total, nil
}
