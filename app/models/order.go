package models

// OrderStatusPending is forced onto every newly placed order. Later status
// values are free-form strings.
const OrderStatusPending = "Pending"

// OrderStatusUpdate is the body of PUT /updateOrderStatus.
type OrderStatusUpdate struct {
	ID     string `json:"id"     validate:"required"`
	Status string `json:"status" validate:"required"`
}
