package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/domain/zone"
	"github.com/freshvale-inc/freshvale/internal/shared/errors"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

// MatchKind records how a resolution was decided, for audit logging.
type MatchKind string

const (
	MatchAddressOverride MatchKind = "address_override"
	MatchUserOverride    MatchKind = "user_override"
	MatchGeographic      MatchKind = "geographic"
	MatchNone            MatchKind = "none"
)

// ResolveZoneQuery asks which zone serves an address for a vertical at a
// point in time. AsOf is threaded explicitly so override expiry stays
// deterministic and testable.
type ResolveZoneQuery struct {
	AddressID   uint
	Vertical    string
	AsOf        time.Time
	BypassCache bool
}

// Resolution is the typed outcome: Serviceable=false with a nil zone is the
// normal "not deliverable here" result, not an error.
type Resolution struct {
	Serviceable bool
	Zone        *zone.Zone
	MatchedBy   MatchKind
	OverrideSID string
}

// CachedResolution is the cacheable projection of a resolution.
type CachedResolution struct {
	Serviceable bool      `json:"serviceable"`
	ZoneID      uint      `json:"zone_id"`
	MatchedBy   MatchKind `json:"matched_by"`
	OverrideSID string    `json:"override_sid,omitempty"`
}

// ResolutionCache caches resolutions per (address, vertical). Entries must
// not outlive override expiry; the usecase clamps the TTL accordingly.
type ResolutionCache interface {
	Get(ctx context.Context, addressID uint, vertical string) (*CachedResolution, error)
	Set(ctx context.Context, addressID uint, vertical string, res CachedResolution, ttl time.Duration) error
}

// DefaultCacheTTL bounds how long a resolution may be reused across requests.
const DefaultCacheTTL = 5 * time.Minute

// ResolveZoneUseCase implements zone resolution with override precedence:
// address-level override, then user-level override, then geometric/pincode
// matching against active zones in configuration order.
type ResolveZoneUseCase struct {
	zoneRepo     zone.Repository
	overrideRepo zone.OverrideRepository
	addressRepo  zone.AddressRepository
	cache        ResolutionCache
	logger       logger.Interface
}

func NewResolveZoneUseCase(
	zoneRepo zone.Repository,
	overrideRepo zone.OverrideRepository,
	addressRepo zone.AddressRepository,
	cache ResolutionCache,
	logger logger.Interface,
) *ResolveZoneUseCase {
	return &ResolveZoneUseCase{
		zoneRepo:     zoneRepo,
		overrideRepo: overrideRepo,
		addressRepo:  addressRepo,
		cache:        cache,
		logger:       logger,
	}
}

func (uc *ResolveZoneUseCase) Execute(ctx context.Context, query ResolveZoneQuery) (*Resolution, error) {
	if query.AddressID == 0 {
		return nil, errors.NewValidationError("address ID is required")
	}
	if query.Vertical == "" {
		return nil, errors.NewValidationError("vertical is required")
	}

	addr, err := uc.addressRepo.GetByID(ctx, query.AddressID)
	if err != nil {
		return nil, fmt.Errorf("failed to load address: %w", err)
	}
	if addr == nil {
		return nil, errors.NewNotFoundError("address not found")
	}

	if uc.cache != nil && !query.BypassCache {
		if res := uc.fromCache(ctx, query); res != nil {
			return res, nil
		}
	}

	res, ttl, err := uc.resolve(ctx, addr, query.Vertical, query.AsOf)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && ttl > 0 {
		cached := CachedResolution{
			Serviceable: res.Serviceable,
			MatchedBy:   res.MatchedBy,
			OverrideSID: res.OverrideSID,
		}
		if res.Zone != nil {
			cached.ZoneID = res.Zone.ID()
		}
		if err := uc.cache.Set(ctx, query.AddressID, query.Vertical, cached, ttl); err != nil {
			uc.logger.Warnw("failed to cache zone resolution", "error", err, "address_id", query.AddressID)
		}
	}

	return res, nil
}

func (uc *ResolveZoneUseCase) fromCache(ctx context.Context, query ResolveZoneQuery) *Resolution {
	cached, err := uc.cache.Get(ctx, query.AddressID, query.Vertical)
	if err != nil || cached == nil {
		if err != nil {
			uc.logger.Warnw("zone resolution cache read failed", "error", err, "address_id", query.AddressID)
		}
		return nil
	}

	res := &Resolution{
		Serviceable: cached.Serviceable,
		MatchedBy:   cached.MatchedBy,
		OverrideSID: cached.OverrideSID,
	}
	if cached.ZoneID != 0 {
		z, err := uc.zoneRepo.GetByID(ctx, cached.ZoneID)
		if err != nil || z == nil {
			return nil
		}
		res.Zone = z
	}
	return res
}

// resolve applies the precedence chain and returns the resolution plus the
// cache TTL, clamped so a cached entry never survives the matched override's
// expiry.
func (uc *ResolveZoneUseCase) resolve(ctx context.Context, addr *zone.Address, vertical string, asOf time.Time) (*Resolution, time.Duration, error) {
	// 1. Address-level overrides win outright.
	addressOverrides, err := uc.overrideRepo.ListForAddress(ctx, addr.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load address overrides: %w", err)
	}
	if res, ttl, err := uc.applyOverrides(ctx, addressOverrides, MatchAddressOverride, asOf); err != nil || res != nil {
		return res, ttl, err
	}

	// 2. Then user-level overrides.
	userOverrides, err := uc.overrideRepo.ListForUser(ctx, addr.UserID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load user overrides: %w", err)
	}
	if res, ttl, err := uc.applyOverrides(ctx, userOverrides, MatchUserOverride, asOf); err != nil || res != nil {
		return res, ttl, err
	}

	// 3. Geometric/pincode matching. First configured active zone wins on
	// overlap.
	zones, err := uc.zoneRepo.ListActive(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load active zones: %w", err)
	}
	for _, z := range zones {
		if z.Matches(addr.Pincode, addr.Coordinate, vertical) {
			return &Resolution{
				Serviceable: true,
				Zone:        z,
				MatchedBy:   MatchGeographic,
			}, DefaultCacheTTL, nil
		}
	}

	return &Resolution{Serviceable: false, MatchedBy: MatchNone}, DefaultCacheTTL, nil
}

func (uc *ResolveZoneUseCase) applyOverrides(ctx context.Context, overrides []*zone.Override, kind MatchKind, asOf time.Time) (*Resolution, time.Duration, error) {
	for _, o := range overrides {
		if !o.EffectiveAt(asOf) {
			continue
		}

		z, err := uc.zoneRepo.GetByID(ctx, o.ZoneID())
		if err != nil {
			return nil, 0, fmt.Errorf("failed to load override zone: %w", err)
		}
		if z == nil || !z.IsActive() {
			uc.logger.Warnw("override points at missing or inactive zone, skipping",
				"override_sid", o.SID(), "zone_id", o.ZoneID())
			continue
		}

		uc.logger.Infow("zone resolved via override",
			"override_sid", o.SID(),
			"match", string(kind),
			"zone", z.Code(),
		)

		ttl := DefaultCacheTTL
		if exp := o.ExpiresAt(); exp != nil {
			if remaining := exp.Sub(asOf); remaining < ttl {
				ttl = remaining
			}
		}

		return &Resolution{
			Serviceable: true,
			Zone:        z,
			MatchedBy:   kind,
			OverrideSID: o.SID(),
		}, ttl, nil
	}
	return nil, 0, nil
}
