package prices

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("price not found")

type Price struct {
	ID    uuid.UUID `json:"id"`
	Price uint64    `json:"price"`
}

// Store owns the price collection. Every method must appear atomic to
// concurrent callers; returned records are copies.
type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Price, error)
	Create(ctx context.Context, amount uint64) (Price, error)
	Get(ctx context.Context, id uuid.UUID) (Price, error)
	Update(ctx context.Context, id uuid.UUID, amount uint64) (Price, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
