package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/reagan13/backend-itservice/internal/domain"
)

type stubCartRepo struct {
	addItem     *domain.CartItem
	addErr      error
	lastDelta   int
	setErr      error
	lastSetQty  int
	removeCount int64
	removeErr   error
	lines       []domain.CartLine
	total       domain.Cents
	listErr     error
	lastIDs     []int64
}

func (s *stubCartRepo) AddOrMerge(_ context.Context, _, _ int64, delta int) (*domain.CartItem, error) {
	s.lastDelta = delta
	return s.addItem, s.addErr
}

func (s *stubCartRepo) SetQuantity(_ context.Context, _, _ int64, quantity int) error {
	s.lastSetQty = quantity
	return s.setErr
}

func (s *stubCartRepo) Remove(_ context.Context, _, _ int64) (int64, error) {
	return s.removeCount, s.removeErr
}

func (s *stubCartRepo) ListWithDetails(_ context.Context, _ int64) ([]domain.CartLine, domain.Cents, error) {
	return s.lines, s.total, s.listErr
}

func (s *stubCartRepo) ListByIDs(_ context.Context, _ int64, ids []int64) ([]domain.CartLine, domain.Cents, error) {
	s.lastIDs = ids
	return s.lines, s.total, s.listErr
}

type stubProductRepo struct {
	product *domain.Product
	err     error
}

func (s *stubProductRepo) GetByID(_ context.Context, _ int64) (*domain.Product, error) {
	return s.product, s.err
}

func TestAddOrMergeValidation(t *testing.T) {
	svc := New(&stubCartRepo{}, &stubProductRepo{})

	cases := []struct {
		name      string
		userID    int64
		productID int64
		quantity  int
	}{
		{"zero user", 0, 1, 1},
		{"zero product", 1, 0, 1},
		{"zero quantity", 1, 1, 0},
		{"negative quantity", 1, 1, -3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.AddOrMerge(context.Background(), c.userID, c.productID, c.quantity)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestAddOrMergeUnknownProduct(t *testing.T) {
	svc := New(&stubCartRepo{}, &stubProductRepo{err: domain.ErrNotFound})
	_, err := svc.AddOrMerge(context.Background(), 1, 99, 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddOrMergeDelegatesDelta(t *testing.T) {
	repo := &stubCartRepo{addItem: &domain.CartItem{UserID: 1, ProductID: 2, Quantity: 5}}
	svc := New(repo, &stubProductRepo{product: &domain.Product{ID: 2}})

	got, err := svc.AddOrMerge(context.Background(), 1, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastDelta != 3 {
		t.Fatalf("expected delta 3 passed to repo, got %d", repo.lastDelta)
	}
	if got.Quantity != 5 {
		t.Fatalf("expected merged quantity from repo, got %d", got.Quantity)
	}
}

func TestSetQuantityPassesThrough(t *testing.T) {
	repo := &stubCartRepo{}
	svc := New(repo, &stubProductRepo{})

	if err := svc.SetQuantity(context.Background(), 1, 2, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastSetQty != 0 {
		t.Fatalf("expected quantity 0 passed to repo, got %d", repo.lastSetQty)
	}
}

func TestSetQuantityMissingRow(t *testing.T) {
	svc := New(&stubCartRepo{setErr: domain.ErrNotFound}, &stubProductRepo{})
	if err := svc.SetQuantity(context.Background(), 1, 2, 4); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveReturnsCount(t *testing.T) {
	svc := New(&stubCartRepo{removeCount: 1}, &stubProductRepo{})
	count, err := svc.Remove(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 deleted, got %d", count)
	}
}

func TestListEmptyCart(t *testing.T) {
	svc := New(&stubCartRepo{lines: []domain.CartLine{}}, &stubProductRepo{})
	view, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Items) != 0 || view.Total != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

func TestListByIDsEmptySet(t *testing.T) {
	repo := &stubCartRepo{}
	svc := New(repo, &stubProductRepo{})
	view, err := svc.ListByIDs(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
	if repo.lastIDs != nil {
		t.Fatal("repo should not be queried for an empty id set")
	}
}
