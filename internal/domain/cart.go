package domain

import "time"

// CartItem is the desired quantity of one product for one user. At most one
// row exists per (user, product) pair; quantity is always >= 1.
type CartItem struct {
	UserID    int64     `json:"userId"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartLine is a cart item joined with current catalog data for display.
type CartLine struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Price     Cents  `json:"price"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
	LineTotal Cents  `json:"lineTotal"`
}
