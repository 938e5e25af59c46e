package canteen

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/arkanhadi/go-campus-services/internal/notify"
)

// Service is the ordering core. It validates a request, atomically
// reserves inventory in the Store, records the order in the Ledger and
// publishes the resulting catalog state. Identity is resolved upstream;
// accountID arrives as an opaque value.
type Service struct {
	Store  Store
	Ledger Ledger
	Pub    notify.Publisher
}

// PlaceOrder reserves quantity for one item.
//
// Nothing is mutated before the decrement succeeds, so every failure up to
// that point is a pure no-op: no ledger entry, no broadcast. If the ledger
// append fails afterwards the reserved quantity is restocked before the
// error is returned, so inventory is never held without a ledger row.
func (s *Service) PlaceOrder(ctx context.Context, accountID, itemID string, quantity int) (Confirmation, error) {
	if quantity < 1 {
		return Confirmation{}, ErrInvalidQuantity
	}

	it, err := s.Store.Decrement(ctx, itemID, quantity)
	switch {
	case errors.Is(err, ErrItemNotFound):
		return Confirmation{}, ErrItemNotFound
	case errors.Is(err, ErrItemUnavailable), errors.Is(err, ErrInsufficientQuantity):
		return Confirmation{}, ErrCannotFulfill
	case err != nil:
		return Confirmation{}, fmt.Errorf("decrement item %s: %w", itemID, err)
	}

	order, err := s.Ledger.Append(ctx, accountID, itemID, quantity)
	if err != nil {
		if _, rerr := s.Store.Restock(ctx, itemID, quantity); rerr != nil {
			log.Printf("restock after failed append item=%s qty=%d: %v", itemID, quantity, rerr)
		}
		return Confirmation{}, fmt.Errorf("append order: %w", err)
	}

	s.Pub.Publish(notify.EventCatalogChanged, CatalogChanged{
		ItemID:    it.ID,
		Quantity:  it.Quantity,
		Available: it.Available,
	})
	s.Pub.Publish(notify.EventOrderPlaced, OrderPlaced{
		OrderID:   order.ID,
		AccountID: order.AccountID,
		ItemID:    order.ItemID,
		Quantity:  order.Quantity,
	})

	return Confirmation{OrderID: order.ID}, nil
}

// AddItem is the menu-management entry point, outside the ordering flow.
func (s *Service) AddItem(ctx context.Context, name string, priceCents, quantity int) (Item, error) {
	if strings.TrimSpace(name) == "" || priceCents < 0 || quantity < 0 {
		return Item{}, ErrInvalidItem
	}
	it, err := s.Store.Add(ctx, name, priceCents, quantity)
	if err != nil {
		return Item{}, fmt.Errorf("add item: %w", err)
	}
	s.Pub.Publish(notify.EventMenuItemAdded, MenuItemAdded{Item: it})
	return it, nil
}

func (s *Service) ListMenu(ctx context.Context) ([]Item, error) {
	return s.Store.List(ctx)
}

// ListOrders returns the account's order history, newest first, joined
// with the current item names. A deleted or unknown item leaves the name
// empty rather than failing the listing.
func (s *Service) ListOrders(ctx context.Context, accountID string) ([]OrderSummary, error) {
	orders, err := s.Ledger.ListForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		name, ok := names[o.ItemID]
		if !ok {
			if it, err := s.Store.Get(ctx, o.ItemID); err == nil {
				name = it.Name
			}
			names[o.ItemID] = name
		}
		out = append(out, OrderSummary{
			OrderID:   o.ID,
			ItemID:    o.ItemID,
			ItemName:  name,
			Quantity:  o.Quantity,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
		})
	}
	return out, nil
}
