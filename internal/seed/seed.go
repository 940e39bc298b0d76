package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reagan13/backend-itservice/internal/domain"
)

// Apply inserts demo catalog data for manual testing. Products are keyed by
// name here, so re-running it does not duplicate rows.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []domain.Product{
		{
			Name:            "Mechanical Keyboard",
			Category:        "peripherals",
			Description:     "Tenkeyless mechanical keyboard",
			FullDescription: "Hot-swappable tenkeyless board with PBT keycaps.",
			PriceCents:      8999,
			Image:           "/images/keyboard.png",
			Specs: []domain.ProductSpec{
				{Label: "Switches", Value: "Brown, tactile"},
				{Label: "Layout", Value: "ANSI TKL"},
			},
		},
		{
			Name:            "USB-C Dock",
			Category:        "accessories",
			Description:     "11-in-1 USB-C docking station",
			FullDescription: "Dual HDMI, gigabit ethernet, 100W passthrough charging.",
			PriceCents:      12900,
			Image:           "/images/dock.png",
			Specs: []domain.ProductSpec{
				{Label: "Ports", Value: "11"},
			},
		},
		{
			Name:        "Laptop Stand",
			Category:    "accessories",
			Description: "Adjustable aluminium laptop stand",
			PriceCents:  3499,
			Image:       "/images/stand.png",
		},
	}

	for _, p := range products {
		if err := insertIfMissing(ctx, pool, p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	return nil
}

func insertIfMissing(ctx context.Context, pool *pgxpool.Pool, p domain.Product) error {
	specs, err := json.Marshal(p.Specs)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO products (name, category, description, full_description, price_cents, image, specs)
SELECT $1, $2, $3, $4, $5, $6, $7
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err = pool.Exec(ctx, q, p.Name, p.Category, p.Description, p.FullDescription, int64(p.PriceCents), p.Image, specs)
	return err
}
