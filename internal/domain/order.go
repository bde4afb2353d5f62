package domain

import "time"

// OrderStatus enumerates order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(raw), true
	default:
		return "", false
	}
}

// OrderItem is a line item snapshot taken at checkout time. Name and unit
// price are copied from the product so later catalog edits do not rewrite
// order history.
type OrderItem struct {
	ProductID string  `json:"productId" dynamodbav:"product_id"`
	Name      string  `json:"name" dynamodbav:"name"`
	UnitPrice float64 `json:"unitPrice" dynamodbav:"unit_price"`
	Quantity  int     `json:"quantity" dynamodbav:"quantity"`
}

// Order is the checkout aggregate stored in the document store.
type Order struct {
	ID          string      `json:"id" dynamodbav:"id"`
	UserID      string      `json:"userId" dynamodbav:"user_id"`
	Items       []OrderItem `json:"items" dynamodbav:"items"`
	TotalAmount float64     `json:"totalAmount" dynamodbav:"total_amount"`
	Status      OrderStatus `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time   `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" dynamodbav:"updated_at"`
}
