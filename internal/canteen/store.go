package canteen

import "context"

// Store owns the authoritative quantity for every catalog item.
//
// Decrement is the read-check-write step of order placement and must be
// atomic per item: two concurrent calls may never both succeed when their
// combined amount exceeds the quantity at admission. Calls against
// different items must not serialize behind each other.
type Store interface {
	Get(ctx context.Context, itemID string) (Item, error)
	List(ctx context.Context) ([]Item, error)
	Add(ctx context.Context, name string, priceCents, quantity int) (Item, error)
	Decrement(ctx context.Context, itemID string, amount int) (Item, error)
	Restock(ctx context.Context, itemID string, amount int) (Item, error)
}

// Ledger is the append-only record of placed orders. Append assumes the
// caller already reserved the quantity.
type Ledger interface {
	Append(ctx context.Context, accountID, itemID string, quantity int) (Order, error)
	ListForAccount(ctx context.Context, accountID string) ([]Order, error)
}
