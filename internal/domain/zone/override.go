package zone

import (
	"fmt"
	"time"

	sharedid "github.com/freshvale-inc/freshvale/internal/shared/id"
)

// OverrideTargetKind discriminates the override target union.
type OverrideTargetKind string

const (
	TargetUser    OverrideTargetKind = "user"
	TargetAddress OverrideTargetKind = "address"
)

// OverrideTarget is a tagged union: an override pins either a user or an
// address to a zone, never neither and never both. Representing the target
// this way removes the invalid states two nullable foreign keys would allow.
type OverrideTarget struct {
	kind OverrideTargetKind
	id   uint
}

// UserTarget builds a user-level override target.
func UserTarget(userID uint) (OverrideTarget, error) {
	if userID == 0 {
		return OverrideTarget{}, fmt.Errorf("user ID is required")
	}
	return OverrideTarget{kind: TargetUser, id: userID}, nil
}

// AddressTarget builds an address-level override target.
func AddressTarget(addressID uint) (OverrideTarget, error) {
	if addressID == 0 {
		return OverrideTarget{}, fmt.Errorf("address ID is required")
	}
	return OverrideTarget{kind: TargetAddress, id: addressID}, nil
}

func (t OverrideTarget) Kind() OverrideTargetKind { return t.kind }
func (t OverrideTarget) ID() uint                 { return t.id }

// Override is an administrator-set exception that pins its target to a zone
// regardless of geometric/pincode matching. Address-level overrides take
// precedence over user-level overrides, which take precedence over matching.
type Override struct {
	id        uint
	sid       string
	target    OverrideTarget
	zoneID    uint
	reason    string
	expiresAt *time.Time
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

// NewOverride creates an override. The reason is required free text; the
// expiry is optional.
func NewOverride(target OverrideTarget, zoneID uint, reason string, expiresAt *time.Time, asOf time.Time) (*Override, error) {
	if target.id == 0 {
		return nil, fmt.Errorf("override target is required")
	}
	if zoneID == 0 {
		return nil, fmt.Errorf("zone ID is required")
	}
	if reason == "" {
		return nil, fmt.Errorf("override reason is required")
	}

	return &Override{
		sid:       sharedid.MustGenerateWithPrefix(sharedid.PrefixZoneOverride, sharedid.DefaultLength),
		target:    target,
		zoneID:    zoneID,
		reason:    reason,
		expiresAt: expiresAt,
		isActive:  true,
		createdAt: asOf,
		updatedAt: asOf,
	}, nil
}

// OverrideReconstructParams carries persisted override fields.
type OverrideReconstructParams struct {
	ID         uint
	SID        string
	TargetKind OverrideTargetKind
	TargetID   uint
	ZoneID     uint
	Reason     string
	ExpiresAt  *time.Time
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ReconstructOverride rebuilds an override from persistence.
func ReconstructOverride(p OverrideReconstructParams) (*Override, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("override ID cannot be zero")
	}
	if p.TargetKind != TargetUser && p.TargetKind != TargetAddress {
		return nil, fmt.Errorf("invalid override target kind: %s", p.TargetKind)
	}
	if p.TargetID == 0 {
		return nil, fmt.Errorf("override target ID cannot be zero")
	}

	return &Override{
		id:        p.ID,
		sid:       p.SID,
		target:    OverrideTarget{kind: p.TargetKind, id: p.TargetID},
		zoneID:    p.ZoneID,
		reason:    p.Reason,
		expiresAt: p.ExpiresAt,
		isActive:  p.IsActive,
		createdAt: p.CreatedAt,
		updatedAt: p.UpdatedAt,
	}, nil
}

func (o *Override) ID() uint              { return o.id }
func (o *Override) SID() string           { return o.sid }
func (o *Override) Target() OverrideTarget { return o.target }
func (o *Override) ZoneID() uint          { return o.zoneID }
func (o *Override) Reason() string        { return o.reason }
func (o *Override) ExpiresAt() *time.Time { return o.expiresAt }
func (o *Override) IsActive() bool        { return o.isActive }
func (o *Override) CreatedAt() time.Time  { return o.createdAt }
func (o *Override) UpdatedAt() time.Time  { return o.updatedAt }

// SetID sets the override ID (only for persistence layer use)
func (o *Override) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("override ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("override ID cannot be zero")
	}
	o.id = id
	return nil
}

// EffectiveAt reports whether the override applies at the given instant: it
// must be active and either carry no expiry or expire after asOf. An expired
// override is treated as if it did not exist.
func (o *Override) EffectiveAt(asOf time.Time) bool {
	if !o.isActive {
		return false
	}
	if o.expiresAt != nil && !o.expiresAt.After(asOf) {
		return false
	}
	return true
}

// Deactivate is the manual kill switch, independent of expiry.
func (o *Override) Deactivate(asOf time.Time) {
	o.isActive = false
	o.updatedAt = asOf
}
