package canteen

// CatalogChanged is broadcast after every successful inventory mutation.
type CatalogChanged struct {
	ItemID    string `json:"item_id"`
	Quantity  int    `json:"new_quantity"`
	Available bool   `json:"new_availability"`
}

func (p CatalogChanged) PartitionKey() string { return p.ItemID }

// MenuItemAdded is broadcast when menu management adds an item.
type MenuItemAdded struct {
	Item Item `json:"item"`
}

func (p MenuItemAdded) PartitionKey() string { return p.Item.ID }

// OrderPlaced feeds the downstream fulfillment flow.
type OrderPlaced struct {
	OrderID   string `json:"order_id"`
	AccountID string `json:"account_id"`
	ItemID    string `json:"item_id"`
	Quantity  int    `json:"qty"`
}

func (p OrderPlaced) PartitionKey() string { return p.OrderID }

// OrderStatusChanged is published by fulfillment as an order advances.
type OrderStatusChanged struct {
	OrderID string `json:"order_id"`
	Status  Status `json:"status"`
}

func (p OrderStatusChanged) PartitionKey() string { return p.OrderID }
