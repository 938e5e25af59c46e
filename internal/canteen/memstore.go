package canteen

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore keeps the catalog in process. Each item carries its own lock so
// orders against different items never contend; the outer RWMutex only
// guards the map itself.
type MemStore struct {
	mu    sync.RWMutex
	items map[string]*memItem
}

type memItem struct {
	mu sync.Mutex
	it Item
}

func NewMemStore() *MemStore {
	return &MemStore{items: make(map[string]*memItem)}
}

func (s *MemStore) lookup(itemID string) (*memItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.items[itemID]
	return m, ok
}

func (s *MemStore) Get(ctx context.Context, itemID string) (Item, error) {
	m, ok := s.lookup(itemID)
	if !ok {
		return Item{}, ErrItemNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.it, nil
}

func (s *MemStore) List(ctx context.Context) ([]Item, error) {
	s.mu.RLock()
	out := make([]Item, 0, len(s.items))
	for _, m := range s.items {
		m.mu.Lock()
		out = append(out, m.it)
		m.mu.Unlock()
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemStore) Add(ctx context.Context, name string, priceCents, quantity int) (Item, error) {
	it := Item{
		ID:         uuid.NewString(),
		Name:       name,
		PriceCents: priceCents,
		Quantity:   quantity,
		Available:  quantity > 0,
		UpdatedAt:  time.Now().UTC(),
	}
	s.mu.Lock()
	s.items[it.ID] = &memItem{it: it}
	s.mu.Unlock()
	return it, nil
}

func (s *MemStore) Decrement(ctx context.Context, itemID string, amount int) (Item, error) {
	m, ok := s.lookup(itemID)
	if !ok {
		return Item{}, ErrItemNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.it.Available {
		return Item{}, ErrItemUnavailable
	}
	if m.it.Quantity < amount {
		return Item{}, ErrInsufficientQuantity
	}
	m.it.Quantity -= amount
	m.it.Available = m.it.Quantity > 0
	m.it.UpdatedAt = time.Now().UTC()
	return m.it, nil
}

func (s *MemStore) Restock(ctx context.Context, itemID string, amount int) (Item, error) {
	m, ok := s.lookup(itemID)
	if !ok {
		return Item{}, ErrItemNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.it.Quantity += amount
	m.it.Available = m.it.Quantity > 0
	m.it.UpdatedAt = time.Now().UTC()
	return m.it, nil
}

// MemLedger is an append-only in-memory order log. Append cannot fail,
// which keeps order placement free of partial states.
type MemLedger struct {
	mu     sync.Mutex
	orders []Order
}

func NewMemLedger() *MemLedger {
	return &MemLedger{}
}

func (l *MemLedger) Append(ctx context.Context, accountID, itemID string, quantity int) (Order, error) {
	o := Order{
		ID:        uuid.NewString(),
		AccountID: accountID,
		ItemID:    itemID,
		Quantity:  quantity,
		Status:    StatusPlaced,
		CreatedAt: time.Now().UTC(),
	}
	l.mu.Lock()
	l.orders = append(l.orders, o)
	l.mu.Unlock()
	return o, nil
}

func (l *MemLedger) ListForAccount(ctx context.Context, accountID string) ([]Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Order
	for i := len(l.orders) - 1; i >= 0; i-- {
		if l.orders[i].AccountID == accountID {
			out = append(out, l.orders[i])
		}
	}
	return out, nil
}

// Len reports the total number of ledger entries.
func (l *MemLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}
