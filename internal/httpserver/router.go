package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reagan13/backend-itservice/internal/domain"
	accountsvc "github.com/reagan13/backend-itservice/internal/service/account"
	cartsvc "github.com/reagan13/backend-itservice/internal/service/cart"
	checkoutsvc "github.com/reagan13/backend-itservice/internal/service/checkout"
	ordersvc "github.com/reagan13/backend-itservice/internal/service/order"
)

// AccountService is the slice of the account service the handlers consume.
type AccountService interface {
	Signup(ctx context.Context, in accountsvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

type CatalogService interface {
	List(ctx context.Context, limit, offset int) ([]domain.Product, error)
	Search(ctx context.Context, query, category string) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type CartService interface {
	AddOrMerge(ctx context.Context, userID, productID int64, quantity int) (*domain.CartItem, error)
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error
	Remove(ctx context.Context, userID, productID int64) (int64, error)
	List(ctx context.Context, userID int64) (*cartsvc.View, error)
	ListByIDs(ctx context.Context, userID int64, productIDs []int64) (*cartsvc.View, error)
}

type CheckoutService interface {
	PlaceOrder(ctx context.Context, userID int64, items []checkoutsvc.ItemInput) (*domain.Order, error)
	PlaceSingleOrder(ctx context.Context, userID, productID int64, quantity int) (*domain.Order, error)
}

type OrderService interface {
	ListOrders(ctx context.Context, userID int64) ([]ordersvc.View, error)
	GetOrder(ctx context.Context, userID int64, orderID string) (*ordersvc.View, error)
}

// Deps bundles everything the router needs.
type Deps struct {
	AccountSvc  AccountService
	CatalogSvc  CatalogService
	CartSvc     CartService
	CheckoutSvc CheckoutService
	OrderSvc    OrderService
	Diagnostics bool
}

func (d Deps) validate() error {
	if d.AccountSvc == nil || d.CatalogSvc == nil || d.CartSvc == nil || d.CheckoutSvc == nil || d.OrderSvc == nil {
		return errors.New("httpserver: missing service dependency")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db pinger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(metricsMiddleware())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := &handlers{deps: deps}

	api := router.Group("/api")
	{
		api.POST("/signup", h.signup)
		api.POST("/signin", h.signin)
		api.GET("/me", h.me)

		api.GET("/products", h.listProducts)
		api.GET("/products/search", h.searchProducts)
		api.GET("/products/:id", h.getProduct)

		admin := api.Group("/admin")
		admin.POST("/products", h.createProduct)
		admin.PUT("/products/:id", h.updateProduct)
		admin.DELETE("/products/:id", h.deleteProduct)

		api.POST("/cart", h.addToCart)
		api.GET("/cart/:userId", h.getCart)
		api.POST("/cart/update", h.updateCart)
		api.DELETE("/cart/remove", h.removeFromCart)
		api.POST("/cart/items", h.cartItemsByIDs)

		api.POST("/orders/place", h.placeOrder)
		api.POST("/single-order", h.placeSingleOrder)
		api.GET("/orders", h.listOrders)
		api.GET("/orders/:orderId", h.getOrder)
	}

	return router, nil
}

type handlers struct {
	deps Deps
}

func (h *handlers) fail(c *gin.Context, err error) {
	writeError(c, h.deps.Diagnostics, err)
}
