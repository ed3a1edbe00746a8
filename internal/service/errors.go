package service

import "errors"

var (
	// ErrSelectionIncomplete means add-to-cart was attempted before both
	// axes resolved to a concrete variant. Recoverable; callers prompt the
	// user to finish picking.
	ErrSelectionIncomplete = errors.New("size and grade must resolve to a variant")

	// ErrOutOfStock rejects adds against a variant with zero stock. The
	// engine never persists zero-quantity cart rows.
	ErrOutOfStock = errors.New("variant is out of stock")
)
