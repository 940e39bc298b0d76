package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/reagan13/backend-itservice/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,category,description,full_description,price,image,spec.label,spec.value
Laptop Pro,laptops,Thin laptop,Full metal body with 16GB RAM,1299.99,/img/laptop.png,CPU,8-core
,,,,,,RAM,16GB
,,,,,,Storage,512GB SSD
Wireless Mouse,peripherals,Compact mouse,,24.50,/img/mouse.png,,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}
	if len(repo.items) != 2 {
		t.Fatalf("expected 2 products saved, got %d", len(repo.items))
	}

	first := repo.items[0]
	if first.Name != "Laptop Pro" || first.Category != "laptops" || first.PriceCents != 129999 {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if len(first.Specs) != 3 {
		t.Fatalf("expected 3 specs on first product, got %d", len(first.Specs))
	}
	if first.Specs[1].Label != "RAM" || first.Specs[1].Value != "16GB" {
		t.Fatalf("unexpected spec: %+v", first.Specs[1])
	}

	second := repo.items[1]
	if second.Name != "Wireless Mouse" || second.PriceCents != 2450 {
		t.Fatalf("unexpected product data: %+v", second)
	}
	if len(second.Specs) != 0 {
		t.Fatalf("expected no specs on second product, got %+v", second.Specs)
	}
}

func TestCSVImporter_RunRejectsMissingPrice(t *testing.T) {
	csvData := `name,category,price
Broken,misc,`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing price")
	}
}
