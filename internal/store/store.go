package store

import (
	"context"
	"errors"

	"github.com/seantiz/proposalgw/internal/model"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// Store keeps proposal records. Implementations are append-only and safe for
// concurrent use.
type Store interface {
	Save(ctx context.Context, r *model.Record) error
	Get(ctx context.Context, id string) (*model.Record, error)
	// ListAll returns every record in insertion order.
	ListAll(ctx context.Context) ([]*model.Record, error)
	Close() error
}
