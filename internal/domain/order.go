package domain

import "time"

// ShippingInfo holds the delivery details submitted at checkout.
type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

// Order is the immutable record of a completed purchase. Items are snapshots
// taken from the cart at payment time; the card number is not retained.
type Order struct {
	ID            string       `json:"id"`
	CustomerEmail string       `json:"customer_email"`
	CustomerName  string       `json:"customer_name"`
	Items         []CartItem   `json:"items"`
	Shipping      ShippingInfo `json:"shipping"`
	PaymentMethod string       `json:"payment_method"`
	TransactionID string       `json:"transaction_id"`
	Subtotal      float64      `json:"subtotal"`
	Discount      float64      `json:"discount"`
	Total         float64      `json:"total"`
	CreatedAt     time.Time    `json:"created_at"`
}

// TotalItems returns the number of units across the order's lines.
func (o *Order) TotalItems() int {
	var count int
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
