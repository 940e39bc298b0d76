package product

import (
	"context"
	"encoding/json"
	"errors"
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

const productColumns = `id, name, category, COALESCE(description, ''), COALESCE(full_description, ''), price_cents, COALESCE(image, ''), specs, created_at`

func (r *postgresRepo) List(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2
`
	rows, err := r.q.Query(ctx, q, limit, offset)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	return r.scanProducts(rows)
}

func (r *postgresRepo) Search(ctx context.Context, query, category string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
  AND ($2 = '' OR category = $2)
ORDER BY name ASC
`
	rows, err := r.q.Query(ctx, q, query, category)
	if err != nil {
		r.logger.Printf("product repo: search q=%q category=%q error=%v", query, category, err)
		return nil, err
	}
	return r.scanProducts(rows)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := r.scanProduct(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Printf("product repo: get id=%d not found", id)
			return nil, err
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = ANY($1)
`
	rows, err := r.q.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("product repo: list by ids error=%v", err)
		return nil, err
	}
	return r.scanProducts(rows)
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	specs, err := specsJSON(p.Specs)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO products (name, category, description, full_description, price_cents, image, specs)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + productColumns + `
`
	created, err := r.scanProduct(r.q.QueryRow(ctx, q, p.Name, p.Category, p.Description, p.FullDescription, int64(p.PriceCents), p.Image, specs))
	if err != nil {
		r.logger.Printf("product repo: create name=%q error=%v", p.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%d name=%q", created.ID, created.Name)
	return created, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	specs, err := specsJSON(p.Specs)
	if err != nil {
		return nil, err
	}
	const q = `
UPDATE products
SET name = $2, category = $3, description = $4, full_description = $5, price_cents = $6, image = $7, specs = $8
WHERE id = $1
RETURNING ` + productColumns + `
`
	updated, err := r.scanProduct(r.q.QueryRow(ctx, q, p.ID, p.Name, p.Category, p.Description, p.FullDescription, int64(p.PriceCents), p.Image, specs))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Printf("product repo: update id=%d error=%v", p.ID, err)
		}
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var price int64
	var specsRaw []byte
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.FullDescription, &price, &p.Image, &specsRaw, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.PriceCents = domain.Cents(price)
	if len(specsRaw) > 0 {
		if err := json.Unmarshal(specsRaw, &p.Specs); err != nil {
			r.logger.Printf("product repo: decode specs id=%d err=%v", p.ID, err)
			return nil, err
		}
	}
	return &p, nil
}

func specsJSON(specs []domain.ProductSpec) ([]byte, error) {
	if specs == nil {
		return nil, nil
	}
	return json.Marshal(specs)
}
