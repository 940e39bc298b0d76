package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/reagan13/backend-itservice/internal/domain"
	productrepo "github.com/reagan13/backend-itservice/internal/repository/product"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service owns catalog browsing and product administration.
type Service struct {
	repo  productrepo.Repository
	cache *Cache
}

func New(repo productrepo.Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// List returns a page of the catalog, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	products, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Search matches the query against name and description, optionally
// restricted to a category.
func (s *Service) Search(ctx context.Context, query, category string) ([]domain.Product, error) {
	products, err := s.repo.Search(ctx, strings.TrimSpace(query), strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Get returns one product, from cache when possible.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: product id required", domain.ErrInvalidInput)
	}
	if p, ok := s.cache.get(ctx, id); ok {
		return p, nil
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, p)
	return p, nil
}

// Create adds a product to the catalog.
func (s *Service) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, p)
}

// Update overwrites a product and invalidates its cache entry.
func (s *Service) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID <= 0 {
		return nil, fmt.Errorf("%w: product id required", domain.ErrInvalidInput)
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, p.ID)
	return updated, nil
}

// Delete removes a product and invalidates its cache entry.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: product id required", domain.ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx, id)
	return nil
}

func validateProduct(p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	if p.PriceCents < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	return nil
}
