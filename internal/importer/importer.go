package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/reagan13/backend-itservice/internal/domain"
)

type ProductWriter interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts products. A row with a
// name starts a product; rows with an empty name add spec lines to the
// product started above them.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and inserts products. It returns the number imported;
// on error the count covers products saved before the failure.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *domain.Product
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		name := pick(record, index, "name")
		spec := parseSpec(record, index)

		if name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			p, err := parseProduct(record, index)
			if err != nil {
				return imported, err
			}
			if spec != nil {
				p.Specs = append(p.Specs, *spec)
			}
			current = p
			continue
		}

		// Continuation rows carry extra spec lines for the current product.
		if current != nil && spec != nil {
			current.Specs = append(current.Specs, *spec)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, p *domain.Product) error {
	if p.Name == "" || p.PriceCents <= 0 {
		return fmt.Errorf("invalid product row (missing name or price) for %q", p.Name)
	}
	if _, err := i.productRepo.Create(ctx, *p); err != nil {
		return fmt.Errorf("create product %q: %w", p.Name, err)
	}
	return nil
}

func parseProduct(record []string, index map[string]int) (*domain.Product, error) {
	name := pick(record, index, "name")
	price, err := domain.ParseCents(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", name, err)
	}
	return &domain.Product{
		Name:            name,
		Category:        pick(record, index, "category"),
		Description:     pick(record, index, "description"),
		FullDescription: pick(record, index, "full_description"),
		PriceCents:      price,
		Image:           pick(record, index, "image"),
	}, nil
}

func parseSpec(record []string, index map[string]int) *domain.ProductSpec {
	label := pick(record, index, "spec.label")
	value := pick(record, index, "spec.value")
	if label == "" && value == "" {
		return nil
	}
	return &domain.ProductSpec{Label: label, Value: value}
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
