package canteen

import "time"

// Item is a purchasable catalog entry. Quantity and Available move
// together: Available is true exactly when Quantity > 0.
type Item struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceCents int       `json:"price_cents"`
	Quantity   int       `json:"quantity"`
	Available  bool      `json:"available"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Order is an immutable reservation of quantity against an item. Only the
// status changes after creation, and only through the fulfillment flow.
type Order struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	ItemID    string    `json:"item_id"`
	Quantity  int       `json:"quantity"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderSummary is the order-history row returned to clients.
type OrderSummary struct {
	OrderID   string    `json:"order_id"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Quantity  int       `json:"quantity"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Confirmation is returned to the caller on a successful order.
type Confirmation struct {
	OrderID string `json:"order_id"`
}
