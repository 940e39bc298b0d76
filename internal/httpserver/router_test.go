package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/reagan13/backend-itservice/internal/domain"
	accountsvc "github.com/reagan13/backend-itservice/internal/service/account"
	cartsvc "github.com/reagan13/backend-itservice/internal/service/cart"
	checkoutsvc "github.com/reagan13/backend-itservice/internal/service/checkout"
	ordersvc "github.com/reagan13/backend-itservice/internal/service/order"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubAccountSvc struct {
	user      *domain.User
	signupErr error
	loginErr  error
	lookupErr error
}

func (s *stubAccountSvc) Signup(_ context.Context, _ accountsvc.SignupInput) (*domain.User, error) {
	return s.user, s.signupErr
}

func (s *stubAccountSvc) Login(_ context.Context, _, _ string) (*domain.User, string, string, error) {
	if s.loginErr != nil {
		return nil, "", "", s.loginErr
	}
	return s.user, "access", "refresh", nil
}

func (s *stubAccountSvc) LookupByToken(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.lookupErr
}

func (s *stubAccountSvc) AccessTTLSeconds() int { return 3600 }

type stubCatalogSvc struct {
	products []domain.Product
	product  *domain.Product
	err      error
}

func (s *stubCatalogSvc) List(_ context.Context, _, _ int) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogSvc) Search(_ context.Context, _, _ string) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogSvc) Get(_ context.Context, _ int64) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogSvc) Create(_ context.Context, _ domain.Product) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogSvc) Update(_ context.Context, _ domain.Product) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogSvc) Delete(_ context.Context, _ int64) error { return s.err }

type stubCartSvc struct {
	item        *domain.CartItem
	view        *cartsvc.View
	err         error
	removed     int64
	lastUserID  int64
	lastProduct int64
	lastQty     int
}

func (s *stubCartSvc) AddOrMerge(_ context.Context, userID, productID int64, quantity int) (*domain.CartItem, error) {
	s.lastUserID, s.lastProduct, s.lastQty = userID, productID, quantity
	return s.item, s.err
}

func (s *stubCartSvc) SetQuantity(_ context.Context, userID, productID int64, quantity int) error {
	s.lastUserID, s.lastProduct, s.lastQty = userID, productID, quantity
	return s.err
}

func (s *stubCartSvc) Remove(_ context.Context, userID, productID int64) (int64, error) {
	s.lastUserID, s.lastProduct = userID, productID
	return s.removed, s.err
}

func (s *stubCartSvc) List(_ context.Context, userID int64) (*cartsvc.View, error) {
	s.lastUserID = userID
	return s.view, s.err
}

func (s *stubCartSvc) ListByIDs(_ context.Context, userID int64, _ []int64) (*cartsvc.View, error) {
	s.lastUserID = userID
	return s.view, s.err
}

type stubCheckoutSvc struct {
	order *domain.Order
	err   error
}

func (s *stubCheckoutSvc) PlaceOrder(_ context.Context, _ int64, _ []checkoutsvc.ItemInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubCheckoutSvc) PlaceSingleOrder(_ context.Context, _, _ int64, _ int) (*domain.Order, error) {
	return s.order, s.err
}

type stubOrderSvc struct {
	views []ordersvc.View
	view  *ordersvc.View
	err   error
}

func (s *stubOrderSvc) ListOrders(_ context.Context, _ int64) ([]ordersvc.View, error) {
	return s.views, s.err
}

func (s *stubOrderSvc) GetOrder(_ context.Context, _ int64, _ string) (*ordersvc.View, error) {
	return s.view, s.err
}

func testDeps() Deps {
	return Deps{
		AccountSvc:  &stubAccountSvc{},
		CatalogSvc:  &stubCatalogSvc{},
		CartSvc:     &stubCartSvc{},
		CheckoutSvc: &stubCheckoutSvc{},
		OrderSvc:    &stubOrderSvc{},
	}
}

func testRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBuildRouterRejectsMissingDeps(t *testing.T) {
	gin.SetMode(gin.TestMode)
	if _, err := buildRouter(logDiscard(), nil, Deps{}); err == nil {
		t.Fatal("expected error for missing services")
	}
}

func TestHealthz(t *testing.T) {
	router := testRouter(t, testDeps())
	rec := doJSON(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyzWithoutDB(t *testing.T) {
	router := testRouter(t, testDeps())
	rec := doJSON(t, router, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestAddToCart_OK(t *testing.T) {
	deps := testDeps()
	cart := &stubCartSvc{item: &domain.CartItem{UserID: 1, ProductID: 2, Quantity: 5}}
	deps.CartSvc = cart
	router := testRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/cart", `{"user_id":1,"product_id":2,"quantity":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if cart.lastUserID != 1 || cart.lastProduct != 2 || cart.lastQty != 3 {
		t.Fatalf("unexpected service args: %+v", cart)
	}
	if !strings.Contains(rec.Body.String(), `"quantity":5`) {
		t.Fatalf("expected merged quantity in body: %s", rec.Body.String())
	}
}

func TestAddToCart_MalformedQuantity(t *testing.T) {
	router := testRouter(t, testDeps())
	rec := doJSON(t, router, http.MethodPost, "/api/cart", `{"user_id":1,"product_id":2,"quantity":"abc"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	deps := testDeps()
	deps.CartSvc = &stubCartSvc{err: domain.ErrNotFound}
	router := testRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/cart", `{"user_id":1,"product_id":99,"quantity":1}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"kind":"not_found"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUpdateCart_CamelCaseFields(t *testing.T) {
	deps := testDeps()
	cart := &stubCartSvc{}
	deps.CartSvc = cart
	router := testRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/update", `{"userId":1,"productId":2,"quantity":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if cart.lastQty != 0 {
		t.Fatalf("expected quantity 0 forwarded, got %d", cart.lastQty)
	}
}

func TestRemoveFromCart_ReturnsDeletedCount(t *testing.T) {
	deps := testDeps()
	deps.CartSvc = &stubCartSvc{removed: 1}
	router := testRouter(t, deps)

	rec := doJSON(t, router, http.MethodDelete, "/api/cart/remove", `{"userId":1,"productId":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"deleted":1`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetCart_BadUserID(t *testing.T) {
	router := testRouter(t, testDeps())
	rec := doJSON(t, router, http.MethodGet, "/api/cart/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestPlaceOrder_ReturnsDisplayID(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{order: &domain.Order{ID: 42, UserID: 1, TotalCents: 500}}
	router := testRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/orders/place", `{"userId":1,"items":[{"id":1,"quantity":1}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"orderId":"ORD-42"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{err: domain.ErrInvalidInput}
	router := testRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/orders/place", `{"userId":1,"items":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestPlaceSingleOrder_Created(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{order: &domain.Order{ID: 7, UserID: 1, TotalCents: 2500}}
	router := testRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/single-order", `{"userId":1,"productId":3,"quantity":2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"id":"ORD-7"`) || !strings.Contains(body, `"totalAmount":"25.00"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestGetOrders_RequiresUserID(t *testing.T) {
	router := testRouter(t, testDeps())
	rec := doJSON(t, router, http.MethodGet, "/api/orders", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	deps := testDeps()
	deps.OrderSvc = &stubOrderSvc{err: domain.ErrNotFound}
	router := testRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/api/orders/ORD-42?userId=1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	deps := testDeps()
	deps.CatalogSvc = &stubCatalogSvc{err: domain.ErrNotFound}
	router := testRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/api/products/99", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestSignin_InvalidCredentials(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{loginErr: accountsvc.ErrInvalidCredentials}
	router := testRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/signin", `{"email":"a@b.com","password":"bad"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestMe_MissingToken(t *testing.T) {
	router := testRouter(t, testDeps())
	rec := doJSON(t, router, http.MethodGet, "/api/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestUnavailableMapsTo503(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{err: domain.ErrUnavailable}
	router := testRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/orders/place", `{"userId":1,"items":[{"id":1,"quantity":1}]}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"kind":"unavailable"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestInternalDetailHiddenWithoutDiagnostics(t *testing.T) {
	deps := testDeps()
	deps.CatalogSvc = &stubCatalogSvc{err: context.DeadlineExceeded}
	router := testRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/api/products/1", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "deadline") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}
