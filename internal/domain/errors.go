package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrCurrencyMismatch indicates an item whose currency differs from the
	// cart's established currency. A cart has exactly one effective currency.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)
