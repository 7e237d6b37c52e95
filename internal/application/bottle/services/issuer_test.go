package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshvale-inc/freshvale/internal/domain/bottle"
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

type fakeBottleRepo struct {
	bottles map[uint]*bottle.Bottle
	nextID  uint
}

func newFakeBottleRepo() *fakeBottleRepo {
	return &fakeBottleRepo{bottles: make(map[uint]*bottle.Bottle), nextID: 1}
}

func (r *fakeBottleRepo) Create(ctx context.Context, b *bottle.Bottle) error {
	if err := b.SetID(r.nextID); err != nil {
		return err
	}
	r.nextID++
	r.bottles[b.ID()] = b
	b.ClearPendingLogs()
	return nil
}

func (r *fakeBottleRepo) GetByID(ctx context.Context, id uint) (*bottle.Bottle, error) {
	return r.bottles[id], nil
}

func (r *fakeBottleRepo) GetBySID(ctx context.Context, sid string) (*bottle.Bottle, error) {
	for _, b := range r.bottles {
		if b.SID() == sid {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBottleRepo) Update(ctx context.Context, b *bottle.Bottle) error {
	r.bottles[b.ID()] = b
	b.ClearPendingLogs()
	return nil
}

func (r *fakeBottleRepo) FindAvailable(ctx context.Context, limit int) ([]*bottle.Bottle, error) {
	ids := make([]uint, 0, len(r.bottles))
	for id, b := range r.bottles {
		if b.Status() == bottle.StatusAvailable {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	available := make([]*bottle.Bottle, 0, len(ids))
	for _, id := range ids {
		if limit > 0 && len(available) == limit {
			break
		}
		available = append(available, r.bottles[id])
	}
	return available, nil
}

func (r *fakeBottleRepo) ListLogs(ctx context.Context, bottleID uint) ([]bottle.Log, error) {
	return nil, nil
}

func addBottle(t *testing.T, repo *fakeBottleRepo, deposit float64, asOf time.Time) *bottle.Bottle {
	t.Helper()
	b, err := bottle.NewBottle(deposit, asOf)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func addIssuedBottle(t *testing.T, repo *fakeBottleRepo, userID uint, deposit float64, asOf time.Time) *bottle.Bottle {
	t.Helper()
	b := addBottle(t, repo, deposit, asOf)
	require.NoError(t, b.Issue(userID, asOf))
	b.ClearPendingLogs()
	return b
}

func TestIssuer_IssueForDelivery(t *testing.T) {
	asOf := time.Date(2024, 1, 10, 3, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("issues requested count", func(t *testing.T) {
		repo := newFakeBottleRepo()
		for i := 0; i < 3; i++ {
			addBottle(t, repo, 20, asOf)
		}
		issuer := NewIssuer(repo, newNopLogger())

		issued, err := issuer.IssueForDelivery(ctx, 7, 2, asOf)
		require.NoError(t, err)
		assert.Equal(t, 2, issued)

		remaining, err := repo.FindAvailable(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
	})

	t.Run("partial issue when stock runs short", func(t *testing.T) {
		repo := newFakeBottleRepo()
		addBottle(t, repo, 20, asOf)
		issuer := NewIssuer(repo, newNopLogger())

		issued, err := issuer.IssueForDelivery(ctx, 7, 3, asOf)
		require.NoError(t, err)
		assert.Equal(t, 1, issued)
	})

	t.Run("non-positive count is a no-op", func(t *testing.T) {
		issuer := NewIssuer(newFakeBottleRepo(), newNopLogger())

		issued, err := issuer.IssueForDelivery(ctx, 7, 0, asOf)
		require.NoError(t, err)
		assert.Zero(t, issued)
	})
}

func TestIssuer_ProcessReturn(t *testing.T) {
	asOf := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("good return refunds the deposit", func(t *testing.T) {
		repo := newFakeBottleRepo()
		b1 := addIssuedBottle(t, repo, 7, 20, asOf)
		b2 := addIssuedBottle(t, repo, 7, 20, asOf)
		issuer := NewIssuer(repo, newNopLogger())

		processed, refund, err := issuer.ProcessReturn(ctx, 7, []uint{b1.ID(), b2.ID()}, "good", asOf)
		require.NoError(t, err)
		assert.Equal(t, 2, processed)
		assert.Equal(t, 40.0, refund)
		assert.Equal(t, bottle.StatusReturned, b1.Status())
		assert.Equal(t, bottle.StatusReturned, b2.Status())
	})

	t.Run("damaged return forfeits the refund", func(t *testing.T) {
		repo := newFakeBottleRepo()
		b := addIssuedBottle(t, repo, 7, 20, asOf)
		issuer := NewIssuer(repo, newNopLogger())

		processed, refund, err := issuer.ProcessReturn(ctx, 7, []uint{b.ID()}, "damaged", asOf)
		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.Zero(t, refund)
		assert.Equal(t, bottle.StatusDamaged, b.Status())
	})

	t.Run("unknown bottle is skipped", func(t *testing.T) {
		repo := newFakeBottleRepo()
		b := addIssuedBottle(t, repo, 7, 20, asOf)
		issuer := NewIssuer(repo, newNopLogger())

		processed, refund, err := issuer.ProcessReturn(ctx, 7, []uint{b.ID(), 999}, "good", asOf)
		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.Equal(t, 20.0, refund)
	})

	t.Run("bottle issued to another user is skipped", func(t *testing.T) {
		repo := newFakeBottleRepo()
		mine := addIssuedBottle(t, repo, 7, 20, asOf)
		theirs := addIssuedBottle(t, repo, 8, 20, asOf)
		issuer := NewIssuer(repo, newNopLogger())

		processed, refund, err := issuer.ProcessReturn(ctx, 7, []uint{mine.ID(), theirs.ID()}, "good", asOf)
		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.Equal(t, 20.0, refund)
		assert.Equal(t, bottle.StatusIssued, theirs.Status())
	})

	t.Run("returned bottle can be issued again", func(t *testing.T) {
		repo := newFakeBottleRepo()
		b := addIssuedBottle(t, repo, 7, 20, asOf)
		issuer := NewIssuer(repo, newNopLogger())

		_, _, err := issuer.ProcessReturn(ctx, 7, []uint{b.ID()}, "good", asOf)
		require.NoError(t, err)

		issued, err := issuer.IssueForDelivery(ctx, 9, 1, asOf.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Zero(t, issued)

		require.NoError(t, b.Issue(9, asOf.AddDate(0, 0, 1)))
		assert.Equal(t, bottle.StatusIssued, b.Status())
	})
}
