package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	UserID    int64 `json:"user_id" binding:"required"`
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type updateCartRequest struct {
	UserID    int64 `json:"userId" binding:"required"`
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  *int  `json:"quantity" binding:"required"`
}

type removeFromCartRequest struct {
	UserID    int64 `json:"userId" binding:"required"`
	ProductID int64 `json:"productId" binding:"required"`
}

type cartItemsRequest struct {
	UserID     int64   `json:"userId" binding:"required"`
	ProductIDs []int64 `json:"productIds"`
}

func (h *handlers) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	item, err := h.deps.CartSvc.AddOrMerge(c.Request.Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) getCart(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}
	view, err := h.deps.CartSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) updateCart(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if err := h.deps.CartSvc.SetQuantity(c.Request.Context(), req.UserID, req.ProductID, *req.Quantity); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) removeFromCart(c *gin.Context) {
	var req removeFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	deleted, err := h.deps.CartSvc.Remove(c.Request.Context(), req.UserID, req.ProductID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *handlers) cartItemsByIDs(c *gin.Context) {
	var req cartItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	view, err := h.deps.CartSvc.ListByIDs(c.Request.Context(), req.UserID, req.ProductIDs)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
