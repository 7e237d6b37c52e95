package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshvale-inc/freshvale/internal/application/serviceability/usecases"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

// nopLogger is a no-op logger for testing.
type nopLogger struct{}

func newNopLogger() logger.Interface { return &nopLogger{} }

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

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return client, mr
}

func TestResolutionCache_RoundTrip(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisZoneResolutionCache(client, newNopLogger())
	ctx := context.Background()

	entry := usecases.CachedResolution{
		Serviceable: true,
		ZoneID:      3,
		MatchedBy:   usecases.MatchAddressOverride,
		OverrideSID: "zov_abc123",
	}
	require.NoError(t, cache.Set(ctx, 100, "grocery", entry, time.Minute))

	got, err := cache.Get(ctx, 100, "grocery")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry, *got)

	// Entries are keyed per vertical.
	other, err := cache.Get(ctx, 100, "daily_fresh")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestResolutionCache_MissReturnsNil(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisZoneResolutionCache(client, newNopLogger())

	got, err := cache.Get(context.Background(), 42, "grocery")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolutionCache_TTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisZoneResolutionCache(client, newNopLogger())
	ctx := context.Background()

	entry := usecases.CachedResolution{Serviceable: true, ZoneID: 1, MatchedBy: usecases.MatchGeographic}
	require.NoError(t, cache.Set(ctx, 100, "grocery", entry, time.Minute))

	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, 100, "grocery")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolutionCache_TTLClampedToMax(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisZoneResolutionCache(client, newNopLogger())
	ctx := context.Background()

	entry := usecases.CachedResolution{Serviceable: false, MatchedBy: usecases.MatchNone}
	require.NoError(t, cache.Set(ctx, 100, "grocery", entry, 24*time.Hour))

	ttl := mr.TTL("zone:resolution:100:grocery")
	assert.LessOrEqual(t, ttl, 30*time.Minute)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestResolutionCache_NonPositiveTTLNotStored(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisZoneResolutionCache(client, newNopLogger())

	entry := usecases.CachedResolution{Serviceable: true, ZoneID: 1, MatchedBy: usecases.MatchGeographic}
	require.NoError(t, cache.Set(context.Background(), 100, "grocery", entry, 0))

	assert.False(t, mr.Exists("zone:resolution:100:grocery"))
}

func TestResolutionCache_CorruptEntryDropped(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisZoneResolutionCache(client, newNopLogger())
	ctx := context.Background()

	require.NoError(t, mr.Set("zone:resolution:100:grocery", "{not json"))

	got, err := cache.Get(ctx, 100, "grocery")
	require.NoError(t, err)
	assert.Nil(t, got)

	// The corrupt entry is evicted so the next resolution repopulates it.
	assert.False(t, mr.Exists("zone:resolution:100:grocery"))
}
