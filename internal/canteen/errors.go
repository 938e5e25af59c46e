package canteen

import "errors"

var (
	// Store errors.
	ErrItemNotFound         = errors.New("catalog item not found")
	ErrItemUnavailable      = errors.New("catalog item unavailable")
	ErrInsufficientQuantity = errors.New("insufficient quantity")

	// Service errors surfaced to callers.
	ErrCannotFulfill   = errors.New("cannot fulfill order")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidItem     = errors.New("invalid menu item")
)
