package cart

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"cartkeep/internal/domain"
	"cartkeep/internal/storage"
)

// DefaultCurrency is reported while the cart is empty.
const DefaultCurrency = "EUR"

// ItemInput describes a variant to add. Quantity is passed separately so the
// store owns clamping and merge-on-repeat-add.
type ItemInput struct {
	ID             string
	VariantID      string
	Title          string
	UnitPriceCents int64
	CurrencyCode   string
	CountryCode    string
	Image          *domain.LineImage
}

// Store is the single source of truth for cart contents. Mutations persist
// the whole cart to the slot and then notify subscribers synchronously.
// Persistence is best-effort: a failed write is logged and the in-memory
// state stays authoritative for the session.
type Store struct {
	slot   storage.Slot
	logger *log.Logger

	mu       sync.Mutex
	saveMu   sync.Mutex
	items    []domain.LineItem
	hydrated bool
	mutated  bool
	drawer   bool
	subs     map[int]func()
	nextSub  int
}

func New(slot storage.Slot, logger *log.Logger) *Store {
	return &Store{
		slot:   slot,
		logger: logger,
		subs:   make(map[int]func()),
	}
}

// Hydrate loads the persisted snapshot. It is called once, typically from a
// goroutine, after construction; reads before it completes see an empty
// cart. A snapshot arriving after any mutation is discarded: the mutation
// already wrote a newer snapshot over it.
func (s *Store) Hydrate(ctx context.Context) {
	data, err := s.slot.Load(ctx)
	if err != nil {
		if err != storage.ErrEmpty {
			s.logger.Printf("load cart slot: %v", err)
		}
		s.markHydrated()
		return
	}

	var loaded []domain.LineItem
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Printf("parse cart slot: %v", err)
		s.markHydrated()
		return
	}

	s.mu.Lock()
	s.hydrated = true
	if s.mutated {
		s.mu.Unlock()
		return
	}
	s.items = sanitize(loaded)
	changed := len(s.items) > 0
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

func (s *Store) markHydrated() {
	s.mu.Lock()
	s.hydrated = true
	s.mu.Unlock()
}

// sanitize re-establishes the quantity invariant on a loaded snapshot.
func sanitize(items []domain.LineItem) []domain.LineItem {
	out := items[:0]
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if it.Quantity > domain.MaxLineQuantity {
			it.Quantity = domain.MaxLineQuantity
		}
		out = append(out, it)
	}
	return out
}

// AddItem merges the input into an existing line with the same variant or
// appends a new one. Quantities are clamped to [1, MaxLineQuantity]; excess
// is dropped silently. The only rejection is a currency that differs from
// the cart's established currency.
func (s *Store) AddItem(ctx context.Context, item ItemInput, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if quantity > domain.MaxLineQuantity {
		quantity = domain.MaxLineQuantity
	}
	currency := strings.TrimSpace(item.CurrencyCode)

	s.mu.Lock()
	if len(s.items) > 0 && currency != s.items[0].CurrencyCode {
		s.mu.Unlock()
		return domain.ErrCurrencyMismatch
	}

	found := false
	for i := range s.items {
		if s.items[i].VariantID == item.VariantID {
			merged := s.items[i].Quantity + quantity
			if merged > domain.MaxLineQuantity {
				merged = domain.MaxLineQuantity
			}
			s.items[i].Quantity = merged
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, domain.LineItem{
			ID:             item.ID,
			VariantID:      item.VariantID,
			Title:          item.Title,
			UnitPriceCents: item.UnitPriceCents,
			CurrencyCode:   currency,
			CountryCode:    item.CountryCode,
			Quantity:       quantity,
			Image:          item.Image,
		})
	}
	s.afterMutation(ctx)
	return nil
}

// RemoveItem deletes the line with the given variant. Absent variant is a
// no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, variantID string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].VariantID == variantID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.afterMutation(ctx)
}

// UpdateQuantity sets the line's quantity. Non-positive values remove the
// line; values above the cap are clamped. No-op if the variant is absent.
func (s *Store) UpdateQuantity(ctx context.Context, variantID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, variantID)
		return
	}
	if quantity > domain.MaxLineQuantity {
		quantity = domain.MaxLineQuantity
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].VariantID == variantID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.afterMutation(ctx)
}

// Clear empties the cart and persists the empty snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.afterMutation(ctx)
}

// afterMutation is entered with the state lock held and releases it. It
// marks the store mutated, persists the snapshot, and notifies subscribers.
// saveMu is taken before the state lock is released, so snapshots reach the
// slot in mutation order; the state lock itself is not held across the
// write.
func (s *Store) afterMutation(ctx context.Context) {
	s.mutated = true
	data, err := json.Marshal(s.snapshotLocked())
	s.saveMu.Lock()
	s.mu.Unlock()

	if err != nil {
		s.logger.Printf("encode cart: %v", err)
	} else if err := s.slot.Save(ctx, data); err != nil {
		s.logger.Printf("save cart slot: %v", err)
	}
	s.saveMu.Unlock()
	s.notify()
}

// snapshotLocked returns the items as a non-nil slice so the slot always
// holds a JSON array, never null.
func (s *Store) snapshotLocked() []domain.LineItem {
	if s.items == nil {
		return []domain.LineItem{}
	}
	return s.items
}

// Hydrated reports whether the initial snapshot load has completed.
// Consumers render an empty cart until then and must not block on it.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount is the sum of all line quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// SubtotalCents is the sum of quantity-extended line prices.
func (s *Store) SubtotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, it := range s.items {
		total += it.TotalCents()
	}
	return total
}

// CurrencyCode is the currency of the first line item, or DefaultCurrency
// for an empty cart.
func (s *Store) CurrencyCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return DefaultCurrency
	}
	return s.items[0].CurrencyCode
}

// DrawerOpen reports the transient drawer visibility. It is not persisted.
func (s *Store) DrawerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawer
}

// SetDrawerOpen toggles the drawer and notifies subscribers without
// touching the persisted snapshot.
func (s *Store) SetDrawerOpen(open bool) {
	s.mu.Lock()
	changed := s.drawer != open
	s.drawer = open
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Subscribe registers fn to run after every change. The returned func
// unsubscribes; calling it more than once is harmless.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
