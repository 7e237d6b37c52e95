package bottle

import "context"

// Repository persists bottles and appends their ledger rows. Log rows are
// insert-only; no update or delete operation exists for them.
type Repository interface {
	Create(ctx context.Context, b *Bottle) error
	GetByID(ctx context.Context, id uint) (*Bottle, error)
	GetBySID(ctx context.Context, sid string) (*Bottle, error)
	Update(ctx context.Context, b *Bottle) error

	// FindAvailable returns up to limit bottles available for issue.
	FindAvailable(ctx context.Context, limit int) ([]*Bottle, error)

	// ListLogs returns the append-only ledger for a bottle, oldest first.
	ListLogs(ctx context.Context, bottleID uint) ([]Log, error)
}
