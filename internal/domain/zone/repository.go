package zone

import "context"

// Repository is the persistence port for zones. Implementations return
// (nil, nil) when a record does not exist.
type Repository interface {
	Create(ctx context.Context, z *Zone) error
	GetByID(ctx context.Context, id uint) (*Zone, error)
	GetBySID(ctx context.Context, sid string) (*Zone, error)
	Update(ctx context.Context, z *Zone) error

	// ListActive returns active zones ordered by ascending ID. Resolution
	// relies on this ordering: when pincode/polygon matches overlap, the
	// first configured zone wins.
	ListActive(ctx context.Context) ([]*Zone, error)
}

// OverrideRepository is the persistence port for zone overrides.
type OverrideRepository interface {
	Create(ctx context.Context, o *Override) error
	GetByID(ctx context.Context, id uint) (*Override, error)
	Update(ctx context.Context, o *Override) error

	// ListForAddress returns active overrides targeting the address,
	// newest first. Expiry filtering is the caller's concern since it
	// depends on the as-of instant.
	ListForAddress(ctx context.Context, addressID uint) ([]*Override, error)

	// ListForUser returns active overrides targeting the user, newest first.
	ListForUser(ctx context.Context, userID uint) ([]*Override, error)
}

// Address is the read-model the resolver needs for an address: its owner,
// pincode, optional coordinate and the hub-assigned delivery details.
type Address struct {
	ID         uint
	SID        string
	UserID     uint
	Line1      string
	Pincode    string
	Coordinate *Coordinate
}

// AddressRepository loads addresses for resolution and route assembly.
type AddressRepository interface {
	GetByID(ctx context.Context, id uint) (*Address, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Address, error)
}
