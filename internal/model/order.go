package model

import "time"

// TimeLayout is the second-precision ISO-8601 layout used for every
// persisted timestamp. Report bucketing relies on its YYYY-MM-DD prefix.
const TimeLayout = "2006-01-02T15:04:05"

// Order is a persisted record of one purchase. Product and Category are
// denormalized copies taken from the catalog at creation time, not
// references. Qty and Discount are reserved: the current flow always
// writes 1 and 0.
type Order struct {
	OrderID   string  `json:"order_id"`
	User      string  `json:"user"`
	Product   string  `json:"product"`
	Qty       int     `json:"qty"`
	UnitPrice int     `json:"unit_price"`
	Discount  float64 `json:"discount"`
	Tax       float64 `json:"tax"`
	Total     int     `json:"total"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
	Time      string  `json:"time"`
	Category  string  `json:"category"`
}

// Statuses the system itself writes. Status is an open set: updates accept
// any text, so these are not validated against.
const (
	OrderStatusConfirmed = "✅ Confirmed"
	OrderStatusDelivered = "✅ Delivered"
	OrderStatusCancelled = "❌ Cancelled"
)

// NewOrder creates a confirmed single-quantity order stamped with the
// current local time.
func NewOrder(orderID, user string, p Product, unitPrice, total int, taxRate float64) *Order {
	now := time.Now().Format(TimeLayout)
	return &Order{
		OrderID:   orderID,
		User:      user,
		Product:   p.Name,
		Qty:       1,
		UnitPrice: unitPrice,
		Discount:  0,
		Tax:       taxRate,
		Total:     total,
		Status:    OrderStatusConfirmed,
		CreatedAt: now,
		Time:      now,
		Category:  p.Category,
	}
}

// Timestamp returns the order's creation timestamp, falling back to the
// legacy Time field for records written without created_at.
func (o *Order) Timestamp() string {
	if o.CreatedAt != "" {
		return o.CreatedAt
	}
	return o.Time
}
