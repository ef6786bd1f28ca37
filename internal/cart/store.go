package cart

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Store owns one session's cart. It hydrates once from the key-value store
// and writes the full cart back after every mutation. Mutations that land
// before hydration completes update memory only; persisting then would
// clobber the stored snapshot with transient state.
type Store struct {
	mu       sync.Mutex
	kv       KeyValueStore
	key      string
	hydrated bool
	cart     Cart
}

func NewStore(kv KeyValueStore, key string) *Store {
	return &Store{kv: kv, key: key}
}

// Hydrate loads the persisted snapshot. A missing key or a malformed
// snapshot yields an empty cart; only a failing backend read leaves the
// store unhydrated so a later attempt can retry.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return nil
	}

	data, err := s.kv.Get(ctx, s.key)
	if err != nil && err != ErrKeyNotFound {
		return fmt.Errorf("hydrate cart %q: %w", s.key, err)
	}

	s.cart.Items = DecodeItems(data)
	s.hydrated = true
	return nil
}

func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

func (s *Store) AddItem(ctx context.Context, item Item, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.AddItem(item, qty)
	s.persistLocked(ctx)
}

func (s *Store) RemoveItem(ctx context.Context, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(id)
	s.persistLocked(ctx)
}

func (s *Store) SetQuantity(ctx context.Context, id int64, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(id, qty)
	s.persistLocked(ctx)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.persistLocked(ctx)
}

// Items returns a copy; callers cannot mutate the cart behind the lock.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, len(s.cart.Items))
	copy(items, s.cart.Items)
	return items
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems()
}

func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Subtotal()
}

func (s *Store) persistLocked(ctx context.Context) {
	if !s.hydrated {
		return
	}
	data, err := EncodeItems(s.cart.Items)
	if err != nil {
		log.Printf("cart encode error: %v", err)
		return
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		log.Printf("cart persist error: %v", err)
	}
}
