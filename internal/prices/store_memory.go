package prices

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

const maxIDAttempts = 8

var errIDExhausted = errors.New("could not generate unique id")

type MemStore struct {
	mu    sync.RWMutex
	items []Price
	newID func() (uuid.UUID, error)
}

type MemOption func(*MemStore)

// WithIDGenerator replaces uuid.NewRandom as the id source.
func WithIDGenerator(fn func() (uuid.UUID, error)) MemOption {
	return func(s *MemStore) { s.newID = fn }
}

func NewMemStore(opts ...MemOption) *MemStore {
	s := &MemStore{
		items: make([]Price, 0, 16),
		newID: uuid.NewRandom,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewStore() Store {
	return NewMemStore()
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Price, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Price, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemStore) Create(ctx context.Context, amount uint64) (Price, error) {
	for range maxIDAttempts {
		id, err := s.newID()
		if err != nil {
			return Price{}, fmt.Errorf("generate id: %w", err)
		}

		p, ok := s.insert(id, amount)
		if ok {
			return p, nil
		}
	}
	return Price{}, errIDExhausted
}

// insert appends unless id is already taken. The id is generated by the
// caller so the lock never covers the random source.
func (s *MemStore) insert(id uuid.UUID, amount uint64) (Price, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) >= 0 {
		return Price{}, false
	}

	p := Price{ID: id, Price: amount}
	s.items = append(s.items, p)
	return p, true
}

func (s *MemStore) Get(ctx context.Context, id uuid.UUID) (Price, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Price{}, ErrNotFound
	}
	return s.items[i], nil
}

func (s *MemStore) Update(ctx context.Context, id uuid.UUID, amount uint64) (Price, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Price{}, ErrNotFound
	}
	s.items[i].Price = amount
	return s.items[i], nil
}

func (s *MemStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

func (s *MemStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// indexOf is a linear scan; callers hold mu.
func (s *MemStore) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.items, func(p Price) bool { return p.ID == id })
}
