package dto

// OrderStatusUpdateRequest payload for order status transitions.
type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}
