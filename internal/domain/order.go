package domain

import "time"

type Order struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"userId"`
	OrderDate  time.Time   `json:"orderDate"`
	TotalCents Cents       `json:"totalAmount"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderItem carries the price frozen at purchase time, never the current
// catalog price.
type OrderItem struct {
	OrderID    int64 `json:"-"`
	ProductID  int64 `json:"productId"`
	Quantity   int   `json:"quantity"`
	PriceCents Cents `json:"price"`
}
