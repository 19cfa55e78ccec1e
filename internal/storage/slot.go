package storage

import (
	"context"
	"errors"
)

// ErrEmpty indicates the slot has never been written (or was deleted).
// Callers treat it as "no cart", not as a failure.
var ErrEmpty = errors.New("slot empty")

// Slot is one named durable key-value slot holding the serialized cart.
// Save overwrites the previous value unconditionally; there is no change
// notification, so concurrent writers are last-writer-wins.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Opener hands out the slot for a given key. Keys identify a shopper
// session; two sessions never share a key unless the caller arranges it.
type Opener interface {
	Open(key string) Slot
}
