package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reagan13/backend-itservice/internal/domain"
	checkoutsvc "github.com/reagan13/backend-itservice/internal/service/checkout"
	ordersvc "github.com/reagan13/backend-itservice/internal/service/order"
)

type placeOrderRequest struct {
	UserID int64                   `json:"userId" binding:"required"`
	Items  []checkoutsvc.ItemInput `json:"items"`
}

type singleOrderRequest struct {
	UserID    int64 `json:"userId" binding:"required"`
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

func (h *handlers) placeOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	o, err := h.deps.CheckoutSvc.PlaceOrder(c.Request.Context(), req.UserID, req.Items)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orderId":     ordersvc.FormatID(o.ID),
		"totalAmount": o.TotalCents,
	})
}

func (h *handlers) placeSingleOrder(c *gin.Context) {
	var req singleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	o, err := h.deps.CheckoutSvc.PlaceSingleOrder(c.Request.Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderView(o))
}

func (h *handlers) listOrders(c *gin.Context) {
	userID, err := queryID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}
	views, err := h.deps.OrderSvc.ListOrders(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": views})
}

func (h *handlers) getOrder(c *gin.Context) {
	userID, err := queryID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}
	view, err := h.deps.OrderSvc.GetOrder(c.Request.Context(), userID, c.Param("orderId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func orderView(o *domain.Order) ordersvc.View {
	items := o.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	return ordersvc.View{
		ID:          ordersvc.FormatID(o.ID),
		OrderDate:   o.OrderDate.Format("2006-01-02"),
		TotalAmount: o.TotalCents,
		Items:       items,
	}
}
