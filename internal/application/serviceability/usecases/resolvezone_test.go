package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshvale-inc/freshvale/internal/domain/zone"
	apperrors "github.com/freshvale-inc/freshvale/internal/shared/errors"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

type nopLogger struct{}

func (l *nopLogger) Debug(msg string, args ...any)                   {}
func (l *nopLogger) Info(msg string, args ...any)                    {}
func (l *nopLogger) Warn(msg string, args ...any)                    {}
func (l *nopLogger) Error(msg string, args ...any)                   {}
func (l *nopLogger) Fatal(msg string, args ...any)                   {}
func (l *nopLogger) With(args ...any) logger.Interface               { return l }
func (l *nopLogger) Named(name string) logger.Interface              { return l }
func (l *nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (l *nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (l *nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

type stubZoneRepo struct {
	zones []*zone.Zone
}

func (r *stubZoneRepo) Create(ctx context.Context, z *zone.Zone) error { return nil }
func (r *stubZoneRepo) Update(ctx context.Context, z *zone.Zone) error { return nil }

func (r *stubZoneRepo) GetByID(ctx context.Context, id uint) (*zone.Zone, error) {
	for _, z := range r.zones {
		if z.ID() == id {
			return z, nil
		}
	}
	return nil, nil
}

func (r *stubZoneRepo) GetBySID(ctx context.Context, sid string) (*zone.Zone, error) {
	for _, z := range r.zones {
		if z.SID() == sid {
			return z, nil
		}
	}
	return nil, nil
}

func (r *stubZoneRepo) ListActive(ctx context.Context) ([]*zone.Zone, error) {
	var out []*zone.Zone
	for _, z := range r.zones {
		if z.IsActive() {
			out = append(out, z)
		}
	}
	return out, nil
}

type stubOverrideRepo struct {
	byAddress map[uint][]*zone.Override
	byUser    map[uint][]*zone.Override
}

func (r *stubOverrideRepo) Create(ctx context.Context, o *zone.Override) error { return nil }
func (r *stubOverrideRepo) Update(ctx context.Context, o *zone.Override) error { return nil }
func (r *stubOverrideRepo) GetByID(ctx context.Context, id uint) (*zone.Override, error) {
	return nil, nil
}

func (r *stubOverrideRepo) ListForAddress(ctx context.Context, addressID uint) ([]*zone.Override, error) {
	return r.byAddress[addressID], nil
}

func (r *stubOverrideRepo) ListForUser(ctx context.Context, userID uint) ([]*zone.Override, error) {
	return r.byUser[userID], nil
}

type stubAddressRepo struct {
	addresses map[uint]*zone.Address
}

func (r *stubAddressRepo) GetByID(ctx context.Context, id uint) (*zone.Address, error) {
	return r.addresses[id], nil
}

func (r *stubAddressRepo) GetByIDs(ctx context.Context, ids []uint) ([]*zone.Address, error) {
	var out []*zone.Address
	for _, id := range ids {
		if a := r.addresses[id]; a != nil {
			out = append(out, a)
		}
	}
	return out, nil
}

type recordingCache struct {
	entries map[string]CachedResolution
	ttls    map[string]time.Duration
}

func newRecordingCache() *recordingCache {
	return &recordingCache{
		entries: make(map[string]CachedResolution),
		ttls:    make(map[string]time.Duration),
	}
}

func (c *recordingCache) key(addressID uint, vertical string) string {
	return fmt.Sprintf("%d:%s", addressID, vertical)
}

func (c *recordingCache) Get(ctx context.Context, addressID uint, vertical string) (*CachedResolution, error) {
	if e, ok := c.entries[c.key(addressID, vertical)]; ok {
		return &e, nil
	}
	return nil, nil
}

func (c *recordingCache) Set(ctx context.Context, addressID uint, vertical string, res CachedResolution, ttl time.Duration) error {
	c.entries[c.key(addressID, vertical)] = res
	c.ttls[c.key(addressID, vertical)] = ttl
	return nil
}

func testZone(t *testing.T, id uint, code string, pincodes []string, active bool) *zone.Zone {
	t.Helper()

	z, err := zone.ReconstructZone(zone.ZoneReconstructParams{
		ID:          id,
		SID:         "zone_" + code,
		Code:        code,
		Name:        code,
		HubID:       1,
		Pincodes:    pincodes,
		ServiceDays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		Verticals:   []string{"grocery"},
		IsActive:    active,
	})
	require.NoError(t, err)
	return z
}

func testOverride(t *testing.T, id uint, target zone.OverrideTarget, zoneID uint, expiresAt *time.Time) *zone.Override {
	t.Helper()

	o, err := zone.ReconstructOverride(zone.OverrideReconstructParams{
		ID:         id,
		SID:        "zov_test",
		TargetKind: target.Kind(),
		TargetID:   target.ID(),
		ZoneID:     zoneID,
		Reason:     "test",
		ExpiresAt:  expiresAt,
		IsActive:   true,
	})
	require.NoError(t, err)
	return o
}

func newResolverFixture(t *testing.T) (*ResolveZoneUseCase, *stubZoneRepo, *stubOverrideRepo, *stubAddressRepo) {
	t.Helper()

	zoneRepo := &stubZoneRepo{}
	overrideRepo := &stubOverrideRepo{
		byAddress: make(map[uint][]*zone.Override),
		byUser:    make(map[uint][]*zone.Override),
	}
	addressRepo := &stubAddressRepo{addresses: make(map[uint]*zone.Address)}
	uc := NewResolveZoneUseCase(zoneRepo, overrideRepo, addressRepo, nil, &nopLogger{})
	return uc, zoneRepo, overrideRepo, addressRepo
}

func TestResolveZone_GeographicMatch(t *testing.T) {
	uc, zoneRepo, _, addressRepo := newResolverFixture(t)
	asOf := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	zoneRepo.zones = []*zone.Zone{
		testZone(t, 1, "EAST", []string{"560001"}, true),
		testZone(t, 2, "WEST", []string{"560002"}, true),
	}
	addressRepo.addresses[100] = &zone.Address{ID: 100, UserID: 7, Pincode: "560002"}

	res, err := uc.Execute(context.Background(), ResolveZoneQuery{AddressID: 100, Vertical: "grocery", AsOf: asOf})
	require.NoError(t, err)
	assert.True(t, res.Serviceable)
	assert.Equal(t, MatchGeographic, res.MatchedBy)
	require.NotNil(t, res.Zone)
	assert.Equal(t, "WEST", res.Zone.Code())
	assert.Empty(t, res.OverrideSID)
}

func TestResolveZone_FirstConfiguredZoneWinsOnOverlap(t *testing.T) {
	uc, zoneRepo, _, addressRepo := newResolverFixture(t)
	asOf := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	// Both zones claim the pincode; the lower-ID zone is returned.
	zoneRepo.zones = []*zone.Zone{
		testZone(t, 1, "EAST", []string{"560001"}, true),
		testZone(t, 2, "WEST", []string{"560001"}, true),
	}
	addressRepo.addresses[100] = &zone.Address{ID: 100, UserID: 7, Pincode: "560001"}

	res, err := uc.Execute(context.Background(), ResolveZoneQuery{AddressID: 100, Vertical: "grocery", AsOf: asOf})
	require.NoError(t, err)
	assert.Equal(t, "EAST", res.Zone.Code())
}

func TestResolveZone_OverridePrecedence(t *testing.T) {
	uc, zoneRepo, overrideRepo, addressRepo := newResolverFixture(t)
	asOf := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	zoneRepo.zones = []*zone.Zone{
		testZone(t, 1, "GEO", []string{"560001"}, true),
		testZone(t, 2, "USER-PIN", nil, true),
		testZone(t, 3, "ADDR-PIN", nil, true),
	}
	addressRepo.addresses[100] = &zone.Address{ID: 100, UserID: 7, Pincode: "560001"}

	userTarget, err := zone.UserTarget(7)
	require.NoError(t, err)
	addrTarget, err := zone.AddressTarget(100)
	require.NoError(t, err)

	overrideRepo.byUser[7] = []*zone.Override{testOverride(t, 1, userTarget, 2, nil)}

	t.Run("user override beats geographic", func(t *testing.T) {
		res, err := uc.Execute(context.Background(), ResolveZoneQuery{AddressID: 100, Vertical: "grocery", AsOf: asOf})
		require.NoError(t, err)
		assert.Equal(t, MatchUserOverride, res.MatchedBy)
		assert.Equal(t, "USER-PIN", res.Zone.Code())
		assert.NotEmpty(t, res.OverrideSID)
	})

	t.Run("address override beats user override", func(t *testing.T) {
		overrideRepo.byAddress[100] = []*zone.Override{testOverride(t, 2, addrTarget, 3, nil)}

		res, err := uc.Execute(context.Background(), ResolveZoneQuery{AddressID: 100, Vertical: "grocery", AsOf: asOf})
		require.NoError(t, err)
		assert.Equal(t, MatchAddressOverride, res.MatchedBy)
		assert.Equal(t, "ADDR-PIN", res.Zone.Code())
	})
}

func TestResolveZone_ExpiredOverrideIgnored(t *testing.T) {
	uc, zoneRepo, overrideRepo, addressRepo := newResolverFixture(t)
	asOf := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	zoneRepo.zones = []*zone.Zone{
		testZone(t, 1, "GEO", []string{"560001"}, true),
		testZone(t, 2, "PINNED", nil, true),
	}
	addressRepo.addresses[100] = &zone.Address{ID: 100, UserID: 7, Pincode: "560001"}

	addrTarget, err := zone.AddressTarget(100)
	require.NoError(t, err)
	expired := asOf.Add(-time.Hour)
	overrideRepo.byAddress[100] = []*zone.Override{testOverride(t, 1, addrTarget, 2, &expired)}

	res, err := uc.Execute(context.Background(), ResolveZoneQuery{AddressID: 100, Vertical: "grocery", AsOf: asOf})
	require.NoError(t, err)
	assert.Equal(t, MatchGeographic, res.MatchedBy)
	assert.Equal(t, "GEO", res.Zone.Code())
}

func TestResolveZone_OverrideToInactiveZoneSkipped(t *testing.T) {
	uc, zoneRepo, overrideRepo, addressRepo := newResolverFixture(t)
	asOf := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	zoneRepo.zones = []*zone.Zone{
		testZone(t, 1, "GEO", []string{"560001"}, true),
		testZone(t, 2, "RETIRED", nil, false),
	}
	addressRepo.addresses[100] = &zone.Address{ID: 100, UserID: 7, Pincode: "560001"}

	addrTarget, err := zone.AddressTarget(100)
	require.NoError(t, err)
	overrideRepo.byAddress[100] = []*zone.Override{testOverride(t, 1, addrTarget, 2, nil)}

	res, err := uc.Execute(context.Background(), ResolveZoneQuery{AddressID: 100, Vertical: "grocery", AsOf: asOf})
	require.NoError(t, err)
	assert.Equal(t, MatchGeographic, res.MatchedBy)
}

func TestResolveZone_NotServiceable(t *testing.T) {
	uc, zoneRepo, _, addressRepo := newResolverFixture(t)
	asOf := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	zoneRepo.zones = []*zone.Zone{testZone(t, 1, "EAST", []string{"560001"}, true)}
	addressRepo.addresses[100] = &zone.Address{ID: 100, UserID: 7, Pincode: "999999"}

	res, err := uc.Execute(context.Background(), ResolveZoneQuery{AddressID: 100, Vertical: "grocery", AsOf: asOf})
	require.NoError(t, err)
	assert.False(t, res.Serviceable)
	assert.Nil(t, res.Zone)
	assert.Equal(t, MatchNone, res.MatchedBy)
}

func TestResolveZone_UnknownAddress(t *testing.T) {
	uc, _, _, _ := newResolverFixture(t)

	_, err := uc.Execute(context.Background(), ResolveZoneQuery{AddressID: 404, Vertical: "grocery", AsOf: time.Now()})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestResolveZone_CacheTTLClampedToOverrideExpiry(t *testing.T) {
	zoneRepo := &stubZoneRepo{}
	overrideRepo := &stubOverrideRepo{
		byAddress: make(map[uint][]*zone.Override),
		byUser:    make(map[uint][]*zone.Override),
	}
	addressRepo := &stubAddressRepo{addresses: make(map[uint]*zone.Address)}
	cache := newRecordingCache()
	uc := NewResolveZoneUseCase(zoneRepo, overrideRepo, addressRepo, cache, &nopLogger{})

	asOf := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	zoneRepo.zones = []*zone.Zone{testZone(t, 1, "PINNED", nil, true)}
	addressRepo.addresses[100] = &zone.Address{ID: 100, UserID: 7, Pincode: "560001"}

	addrTarget, err := zone.AddressTarget(100)
	require.NoError(t, err)
	// Override expires one minute from now, well inside the default TTL.
	expiry := asOf.Add(time.Minute)
	overrideRepo.byAddress[100] = []*zone.Override{testOverride(t, 1, addrTarget, 1, &expiry)}

	res, err := uc.Execute(context.Background(), ResolveZoneQuery{AddressID: 100, Vertical: "grocery", AsOf: asOf})
	require.NoError(t, err)
	assert.Equal(t, MatchAddressOverride, res.MatchedBy)

	require.Len(t, cache.ttls, 1)
	for _, ttl := range cache.ttls {
		assert.Equal(t, time.Minute, ttl)
	}
}

func TestResolveZone_CacheHitSkipsResolution(t *testing.T) {
	zoneRepo := &stubZoneRepo{}
	overrideRepo := &stubOverrideRepo{
		byAddress: make(map[uint][]*zone.Override),
		byUser:    make(map[uint][]*zone.Override),
	}
	addressRepo := &stubAddressRepo{addresses: make(map[uint]*zone.Address)}
	cache := newRecordingCache()
	uc := NewResolveZoneUseCase(zoneRepo, overrideRepo, addressRepo, cache, &nopLogger{})

	asOf := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	zoneRepo.zones = []*zone.Zone{testZone(t, 1, "EAST", []string{"560001"}, true)}
	addressRepo.addresses[100] = &zone.Address{ID: 100, UserID: 7, Pincode: "560001"}

	first, err := uc.Execute(context.Background(), ResolveZoneQuery{AddressID: 100, Vertical: "grocery", AsOf: asOf})
	require.NoError(t, err)
	require.True(t, first.Serviceable)

	// Drop the zone from the "database". A cached resolution still resolves
	// through GetByID, so keep the zone but empty the override tables to show
	// the precedence chain is not re-run.
	overrideRepo.byAddress[100] = nil
	second, err := uc.Execute(context.Background(), ResolveZoneQuery{AddressID: 100, Vertical: "grocery", AsOf: asOf})
	require.NoError(t, err)
	assert.Equal(t, first.MatchedBy, second.MatchedBy)
	assert.Equal(t, first.Zone.ID(), second.Zone.ID())

	// BypassCache forces a fresh resolution.
	fresh, err := uc.Execute(context.Background(), ResolveZoneQuery{AddressID: 100, Vertical: "grocery", AsOf: asOf, BypassCache: true})
	require.NoError(t, err)
	assert.True(t, fresh.Serviceable)
}
