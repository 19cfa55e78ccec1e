package storage

import (
	"context"
	"sync"
)

// MemoryOpener keeps slots in process memory. It backs tests and the
// default single-instance deployment.
type MemoryOpener struct {
	mu    sync.RWMutex
	slots map[string]*memorySlot
}

func NewMemoryOpener() *MemoryOpener {
	return &MemoryOpener{slots: make(map[string]*memorySlot)}
}

func (o *MemoryOpener) Open(key string) Slot {
	o.mu.Lock()
	defer o.mu.Unlock()
	slot, ok := o.slots[key]
	if !ok {
		slot = &memorySlot{}
		o.slots[key] = slot
	}
	return slot
}

type memorySlot struct {
	mu   sync.RWMutex
	data []byte
}

func (s *memorySlot) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, ErrEmpty
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *memorySlot) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}
