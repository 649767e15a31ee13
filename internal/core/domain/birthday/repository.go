package birthday

import "context"

type Repository interface {
	// Create persists a new record, ErrAlreadyExists is returned when
	// the (owner, name) pair is already taken. The check must be done
	// by the storage layer itself so that concurrent writers can not
	// both succeed.
	Create(ctx context.Context, input CreateInput) (Record, error)
	// GetByName returns at most one record, ErrDoesNotExist on a miss.
	GetByName(ctx context.Context, owner ChatID, name string) (Record, error)
	List(ctx context.Context, owner ChatID) ([]Record, error)
	// ListByDay returns the owner's records whose stored day and month
	// match, independent of year.
	ListByDay(ctx context.Context, owner ChatID, day int, month int) ([]Record, error)
	// Delete removes exactly one record, ErrDoesNotExist on a miss.
	Delete(ctx context.Context, owner ChatID, name string) error
	// Owners returns every chat with at least one record, each once.
	Owners(ctx context.Context) ([]ChatID, error)
}
