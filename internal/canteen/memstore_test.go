package canteen

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreDecrement(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	it, err := s.Add(ctx, "nasi goreng", 2500, 5)
	require.NoError(t, err)
	require.True(t, it.Available)

	got, err := s.Decrement(ctx, it.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.True(t, got.Available)

	got, err = s.Decrement(ctx, it.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
	assert.False(t, got.Available, "available must track quantity > 0")

	_, err = s.Decrement(ctx, it.ID, 1)
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestMemStoreDecrementInsufficient(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	it, _ := s.Add(ctx, "es teh", 500, 2)

	_, err := s.Decrement(ctx, it.ID, 5)
	assert.ErrorIs(t, err, ErrInsufficientQuantity)

	// failed decrement leaves the item untouched
	got, err := s.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.True(t, got.Available)
}

func TestMemStoreDecrementUnknownItem(t *testing.T) {
	s := NewMemStore()
	_, err := s.Decrement(context.Background(), "nope", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestMemStoreRestock(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	it, _ := s.Add(ctx, "bakso", 1500, 1)

	_, err := s.Decrement(ctx, it.ID, 1)
	require.NoError(t, err)

	got, err := s.Restock(ctx, it.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Quantity)
	assert.True(t, got.Available)
}

func TestMemStoreListSortedByName(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	s.Add(ctx, "soto", 2000, 3)
	s.Add(ctx, "ayam geprek", 3000, 3)
	s.Add(ctx, "mie ayam", 1800, 3)

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "ayam geprek", items[0].Name)
	assert.Equal(t, "mie ayam", items[1].Name)
	assert.Equal(t, "soto", items[2].Name)
}

// Concurrent single-unit decrements may never reserve more than the
// starting quantity in total.
func TestMemStoreNoOversellUnderLoad(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	it, _ := s.Add(ctx, "kopi", 800, 100)

	const callers = 200
	var wg sync.WaitGroup
	var okCount int64
	var mu sync.Mutex

	start := make(chan struct{})
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			if _, err := s.Decrement(ctx, it.ID, 1); err == nil {
				mu.Lock()
				okCount++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 100, okCount)
	got, _ := s.Get(ctx, it.ID)
	assert.Equal(t, 0, got.Quantity)
	assert.False(t, got.Available)
}

func TestMemLedgerNewestFirst(t *testing.T) {
	ctx := context.Background()
	l := NewMemLedger()

	first, _ := l.Append(ctx, "acct-1", "item-1", 1)
	second, _ := l.Append(ctx, "acct-1", "item-2", 2)
	l.Append(ctx, "acct-2", "item-1", 3)

	got, err := l.ListForAccount(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
	assert.Equal(t, StatusPlaced, got[0].Status)
}
