package subscription

import (
	"context"
	"time"
)

// Repository is the persistence port for the subscription aggregate.
// Implementations return (nil, nil) when a record does not exist.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)
	GetByUserID(ctx context.Context, userID uint) ([]*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error

	// GetByIDForUpdate loads the aggregate under a row-level write lock.
	// It must be called inside a transaction; state transitions use it to
	// serialize concurrent read-modify-write on the same subscription.
	GetByIDForUpdate(ctx context.Context, id uint) (*Subscription, error)

	// ListDueForDelivery returns active subscriptions whose next delivery
	// date falls on the given business date, up to limit rows.
	ListDueForDelivery(ctx context.Context, date time.Time, limit int) ([]*Subscription, error)

	// ListActiveWithoutNextDelivery returns active subscriptions whose
	// derived pointer is unset, candidates for recompute or manual review.
	ListActiveWithoutNextDelivery(ctx context.Context, limit int) ([]*Subscription, error)
}
