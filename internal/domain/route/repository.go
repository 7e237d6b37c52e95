package route

import "context"

// Repository is the persistence port for routes. Implementations return
// (nil, nil) when a record does not exist.
//
// ReplaceStops persists a full stop-list replacement as a single transaction
// so concurrent readers never observe duplicate or missing sequence numbers.
type Repository interface {
	Create(ctx context.Context, r *Route) error
	GetByID(ctx context.Context, id uint) (*Route, error)
	GetBySID(ctx context.Context, sid string) (*Route, error)
	ListByHub(ctx context.Context, hubID uint) ([]*Route, error)
	Update(ctx context.Context, r *Route) error

	// ReplaceStops atomically replaces the persisted stop rows with the
	// route's current stop list. Last writer wins; no version check.
	ReplaceStops(ctx context.Context, r *Route) error
}
