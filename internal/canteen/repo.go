package canteen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore is the Postgres-backed catalog. Decrement serializes per item
// through a row lock (SELECT ... FOR UPDATE), so concurrent orders against
// the same item are admitted one at a time while other items stay free.
type PGStore struct{ DB *pgxpool.Pool }

func (r *PGStore) Get(ctx context.Context, itemID string) (Item, error) {
	var it Item
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, price_cents, quantity, available, updated_at
		FROM canteen_items WHERE id=$1`, itemID).
		Scan(&it.ID, &it.Name, &it.PriceCents, &it.Quantity, &it.Available, &it.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrItemNotFound
	}
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

func (r *PGStore) List(ctx context.Context) ([]Item, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, price_cents, quantity, available, updated_at
		FROM canteen_items ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.PriceCents, &it.Quantity, &it.Available, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PGStore) Add(ctx context.Context, name string, priceCents, quantity int) (Item, error) {
	it := Item{
		ID:         uuid.NewString(),
		Name:       name,
		PriceCents: priceCents,
		Quantity:   quantity,
		Available:  quantity > 0,
		UpdatedAt:  time.Now().UTC(),
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO canteen_items(id, name, price_cents, quantity, available, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		it.ID, it.Name, it.PriceCents, it.Quantity, it.Available, it.UpdatedAt)
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

func (r *PGStore) Decrement(ctx context.Context, itemID string, amount int) (Item, error) {
	return r.adjust(ctx, itemID, -amount, true)
}

func (r *PGStore) Restock(ctx context.Context, itemID string, amount int) (Item, error) {
	return r.adjust(ctx, itemID, amount, false)
}

// adjust runs the read-check-write sequence as one transaction. checked
// enforces the ordering preconditions (available, enough stock); restock
// skips them.
func (r *PGStore) adjust(ctx context.Context, itemID string, delta int, checked bool) (Item, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Item{}, err
	}
	defer tx.Rollback(ctx)

	var it Item
	err = tx.QueryRow(ctx, `
		SELECT id, name, price_cents, quantity, available
		FROM canteen_items WHERE id=$1 FOR UPDATE`, itemID).
		Scan(&it.ID, &it.Name, &it.PriceCents, &it.Quantity, &it.Available)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrItemNotFound
	}
	if err != nil {
		return Item{}, err
	}

	if checked {
		if !it.Available {
			return Item{}, ErrItemUnavailable
		}
		if it.Quantity < -delta {
			return Item{}, ErrInsufficientQuantity
		}
	}

	it.Quantity += delta
	it.Available = it.Quantity > 0
	it.UpdatedAt = time.Now().UTC()

	if _, err := tx.Exec(ctx, `
		UPDATE canteen_items SET quantity=$2, available=$3, updated_at=$4 WHERE id=$1`,
		it.ID, it.Quantity, it.Available, it.UpdatedAt); err != nil {
		return Item{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Item{}, err
	}
	return it, nil
}

// PGLedger is the Postgres-backed order log.
type PGLedger struct{ DB *pgxpool.Pool }

func (r *PGLedger) Append(ctx context.Context, accountID, itemID string, quantity int) (Order, error) {
	o := Order{
		ID:        uuid.NewString(),
		AccountID: accountID,
		ItemID:    itemID,
		Quantity:  quantity,
		Status:    StatusPlaced,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO canteen_orders(id, account_id, item_id, qty, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.AccountID, o.ItemID, o.Quantity, o.Status, o.CreatedAt)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *PGLedger) ListForAccount(ctx context.Context, accountID string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, account_id, item_id, qty, status, created_at
		FROM canteen_orders WHERE account_id=$1 ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.AccountID, &o.ItemID, &o.Quantity, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus advances an order when the transition is legal. The WHERE
// clause re-checks the current status so concurrent workers cannot apply
// the same transition twice.
func (r *PGLedger) UpdateStatus(ctx context.Context, orderID string, from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("illegal status transition %s -> %s", from, to)
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE canteen_orders SET status=$2 WHERE id=$1 AND status=$3`,
		orderID, to, from)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %s not in status %s", orderID, from)
	}
	return nil
}
