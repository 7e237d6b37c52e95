package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/freshvale-inc/freshvale/internal/domain/subscription"
	vo "github.com/freshvale-inc/freshvale/internal/domain/subscription/valueobjects"
	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/models"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
)

func setupSubscriptionDB(t *testing.T) *gorm.DB {
	return setupTestDB(t, &models.SubscriptionModel{})
}

func createTestSubscription(t *testing.T, repo subscription.Repository, userID uint) *subscription.Subscription {
	t.Helper()

	asOf := time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)
	sub, err := subscription.NewSubscription(
		userID, 1,
		vo.FrequencyDaily, vo.CycleWeekly,
		asOf, 100, "daily_fresh",
		[]subscription.Item{
			{ProductSID: "prod_milk500", Quantity: 2},
			{ProductSID: "prod_curd200", Quantity: 1},
		},
		true, asOf,
	)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), sub))
	return sub
}

func TestSubscriptionRepository_CreateAndGet(t *testing.T) {
	gormDB := setupSubscriptionDB(t)
	repo := NewSubscriptionRepository(gormDB, newNopLogger())
	ctx := context.Background()

	sub := createTestSubscription(t, repo, 10)
	assert.NotZero(t, sub.ID())

	found, err := repo.GetByID(ctx, sub.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, sub.SID(), found.SID())
	assert.Equal(t, uint(10), found.UserID())
	assert.Equal(t, vo.StatusActive, found.Status())
	assert.Equal(t, vo.FrequencyDaily, found.PlanFrequency())
	assert.Equal(t, vo.CycleWeekly, found.BillingCycle())
	assert.Equal(t, "daily_fresh", found.Vertical())
	assert.True(t, found.AutoRenew())

	items := found.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "prod_milk500", items[0].ProductSID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "prod_curd200", items[1].ProductSID)

	bySID, err := repo.GetBySID(ctx, sub.SID())
	require.NoError(t, err)
	require.NotNil(t, bySID)
	assert.Equal(t, sub.ID(), bySID.ID())

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSubscriptionRepository_Update(t *testing.T) {
	asOf := time.Date(2024, 1, 5, 3, 0, 0, 0, time.UTC)

	t.Run("mutated fields round trip", func(t *testing.T) {
		gormDB := setupSubscriptionDB(t)
		repo := NewSubscriptionRepository(gormDB, newNopLogger())
		ctx := context.Background()

		sub := createTestSubscription(t, repo, 10)

		vacationStart := biztime.MonthDay(2024, time.February, 10)
		vacationEnd := biztime.MonthDay(2024, time.February, 15)
		require.NoError(t, sub.SetVacation(vacationStart, vacationEnd, asOf))

		next := biztime.MonthDay(2024, time.January, 8)
		sub.SetNextDeliveryDate(&next, asOf)

		require.NoError(t, sub.UpdateItems([]subscription.Item{
			{ProductSID: "prod_paneer100", Quantity: 3},
		}, asOf))

		sub.RecordBottleIssue(3, asOf)
		sub.RecordBottleReturn(2, asOf)

		require.NoError(t, repo.Update(ctx, sub))

		found, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)
		require.NotNil(t, found)

		require.NotNil(t, found.VacationStart())
		assert.True(t, biztime.SameDate(vacationStart, *found.VacationStart()))
		require.NotNil(t, found.VacationEnd())
		assert.True(t, biztime.SameDate(vacationEnd, *found.VacationEnd()))
		require.NotNil(t, found.NextDeliveryDate())
		assert.True(t, biztime.SameDate(next, *found.NextDeliveryDate()))

		items := found.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "prod_paneer100", items[0].ProductSID)
		assert.Equal(t, 3, items[0].Quantity)

		assert.Equal(t, 3, found.BottlesIssued())
		assert.Equal(t, 2, found.BottlesReturned())
		assert.Equal(t, sub.Version(), found.Version())
	})

	t.Run("pause round trip", func(t *testing.T) {
		gormDB := setupSubscriptionDB(t)
		repo := NewSubscriptionRepository(gormDB, newNopLogger())
		ctx := context.Background()

		sub := createTestSubscription(t, repo, 10)

		until := biztime.MonthDay(2024, time.March, 1)
		require.NoError(t, sub.Pause(&until, asOf))
		require.NoError(t, repo.Update(ctx, sub))

		found, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, vo.StatusPaused, found.Status())
		require.NotNil(t, found.PausedUntil())
		assert.True(t, biztime.SameDate(until, *found.PausedUntil()))
		assert.Nil(t, found.NextDeliveryDate())
	})

	t.Run("cancel round trip", func(t *testing.T) {
		gormDB := setupSubscriptionDB(t)
		repo := NewSubscriptionRepository(gormDB, newNopLogger())
		ctx := context.Background()

		sub := createTestSubscription(t, repo, 10)

		require.NoError(t, sub.Cancel("moving away", asOf))
		require.NoError(t, repo.Update(ctx, sub))

		found, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, vo.StatusCancelled, found.Status())
		require.NotNil(t, found.CancelReason())
		assert.Equal(t, "moving away", *found.CancelReason())
		require.NotNil(t, found.CancelledAt())
	})

	t.Run("updating a missing subscription fails", func(t *testing.T) {
		gormDB := setupSubscriptionDB(t)
		repo := NewSubscriptionRepository(gormDB, newNopLogger())
		ctx := context.Background()

		sub := createTestSubscription(t, repo, 10)
		require.NoError(t, gormDB.Unscoped().Delete(&models.SubscriptionModel{}, sub.ID()).Error)

		err := repo.Update(ctx, sub)
		assert.Error(t, err)
	})
}

func TestSubscriptionRepository_ListDueForDelivery(t *testing.T) {
	gormDB := setupSubscriptionDB(t)
	repo := NewSubscriptionRepository(gormDB, newNopLogger())
	ctx := context.Background()
	asOf := time.Date(2024, 1, 5, 3, 0, 0, 0, time.UTC)

	today := biztime.MonthDay(2024, time.January, 8)
	tomorrow := biztime.MonthDay(2024, time.January, 9)

	due := createTestSubscription(t, repo, 10)
	due.SetNextDeliveryDate(&today, asOf)
	require.NoError(t, repo.Update(ctx, due))

	later := createTestSubscription(t, repo, 11)
	later.SetNextDeliveryDate(&tomorrow, asOf)
	require.NoError(t, repo.Update(ctx, later))

	paused := createTestSubscription(t, repo, 12)
	paused.SetNextDeliveryDate(&today, asOf)
	require.NoError(t, repo.Update(ctx, paused))
	require.NoError(t, paused.Pause(nil, asOf))
	require.NoError(t, repo.Update(ctx, paused))

	listed, err := repo.ListDueForDelivery(ctx, today, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, due.ID(), listed[0].ID())
}

func TestSubscriptionRepository_ListActiveWithoutNextDelivery(t *testing.T) {
	gormDB := setupSubscriptionDB(t)
	repo := NewSubscriptionRepository(gormDB, newNopLogger())
	ctx := context.Background()
	asOf := time.Date(2024, 1, 5, 3, 0, 0, 0, time.UTC)

	unscheduled := createTestSubscription(t, repo, 10)

	scheduled := createTestSubscription(t, repo, 11)
	next := biztime.MonthDay(2024, time.January, 8)
	scheduled.SetNextDeliveryDate(&next, asOf)
	require.NoError(t, repo.Update(ctx, scheduled))

	listed, err := repo.ListActiveWithoutNextDelivery(ctx, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, unscheduled.ID(), listed[0].ID())
}
