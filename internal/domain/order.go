package domain

import (
	"fmt"
	"time"
)

// OrderStatus tracks the lifecycle of a placed order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// ParseOrderStatus converts a stored symbol back to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown order status %q", s)
	}
}

// CanTransitionTo reports whether an order may move from s to next.
// The only legal paths are PENDING -> PROCESSING -> SHIPPED -> DELIVERED
// and PENDING -> CANCELLED.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderProcessing || next == OrderCancelled
	case OrderProcessing:
		return next == OrderShipped
	case OrderShipped:
		return next == OrderDelivered
	default:
		return false
	}
}

// OrderLine is one cart position inside an order. Only the product ID and the
// quantity survive persistence; after a reload Product carries the ID with
// zeroed metadata and must be re-resolved against the live catalog when a
// display name or price is needed.
type OrderLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Order is a placed transaction. Identity is the ID. Total is computed once
// at placement time and never recomputed on reload.
type Order struct {
	ID        int64               `json:"id"`
	ClientID  int64               `json:"client_id"`
	Lines     map[int64]OrderLine `json:"lines"`
	CreatedAt time.Time           `json:"created_at"`
	Status    OrderStatus         `json:"status"`
	Total     float64             `json:"total"`
}
