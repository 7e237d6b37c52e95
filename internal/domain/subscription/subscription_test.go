package subscription

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/freshvale-inc/freshvale/internal/domain/subscription/valueobjects"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
)

func TestMain(m *testing.M) {
	biztime.MustInit("Asia/Kolkata")
	os.Exit(m.Run())
}

func newTestSubscription(t *testing.T, cycle vo.BillingCycle, freq vo.PlanFrequency, startDate time.Time) *Subscription {
	t.Helper()

	items := []Item{{ProductSID: "prod_milk500", Quantity: 2}}
	sub, err := NewSubscription(1, 10, freq, cycle, startDate, 100, "daily_fresh", items, true, startDate)
	require.NoError(t, err)
	require.NoError(t, sub.SetID(1))
	return sub
}

func TestNewSubscription_Validation(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	items := []Item{{ProductSID: "prod_milk500", Quantity: 2}}

	tests := []struct {
		name    string
		userID  uint
		planID  uint
		freq    vo.PlanFrequency
		cycle   vo.BillingCycle
		addrID  uint
		vert    string
		items   []Item
		wantErr string
	}{
		{"missing user", 0, 10, vo.FrequencyDaily, vo.CycleWeekly, 100, "daily_fresh", items, "user ID is required"},
		{"missing plan", 1, 0, vo.FrequencyDaily, vo.CycleWeekly, 100, "daily_fresh", items, "plan ID is required"},
		{"missing address", 1, 10, vo.FrequencyDaily, vo.CycleWeekly, 0, "daily_fresh", items, "address ID is required"},
		{"missing vertical", 1, 10, vo.FrequencyDaily, vo.CycleWeekly, 100, "", items, "vertical is required"},
		{"invalid frequency", 1, 10, "hourly", vo.CycleWeekly, 100, "daily_fresh", items, "invalid plan frequency"},
		{"invalid cycle", 1, 10, vo.FrequencyDaily, "yearly", 100, "daily_fresh", items, "invalid billing cycle"},
		{"no items", 1, 10, vo.FrequencyDaily, vo.CycleWeekly, 100, "daily_fresh", nil, "at least one item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSubscription(tt.userID, tt.planID, tt.freq, tt.cycle, asOf, tt.addrID, tt.vert, tt.items, true, asOf)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPause_ClearsNextDeliveryDate(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	sub := newTestSubscription(t, vo.CycleWeekly, vo.FrequencyDaily, asOf)

	next := biztime.MonthDay(2024, time.January, 3)
	sub.SetNextDeliveryDate(&next, asOf)
	require.NotNil(t, sub.NextDeliveryDate())

	err := sub.Pause(nil, asOf)
	require.NoError(t, err)

	assert.Equal(t, vo.StatusPaused, sub.Status())
	assert.Nil(t, sub.NextDeliveryDate())
	assert.Nil(t, sub.PausedUntil())
}

func TestPause_UntilMustBeFuture(t *testing.T) {
	asOf := time.Date(2024, 1, 10, 6, 0, 0, 0, time.UTC)
	sub := newTestSubscription(t, vo.CycleWeekly, vo.FrequencyDaily, asOf)

	past := asOf.AddDate(0, 0, -1)
	err := sub.Pause(&past, asOf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be in the future")
	assert.Equal(t, vo.StatusActive, sub.Status())
}

func TestResume_ClearsPausedUntil(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	sub := newTestSubscription(t, vo.CycleWeekly, vo.FrequencyDaily, asOf)

	until := asOf.AddDate(0, 0, 7)
	require.NoError(t, sub.Pause(&until, asOf))
	require.NotNil(t, sub.PausedUntil())

	err := sub.Resume(asOf.AddDate(0, 0, 2))
	require.NoError(t, err)

	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Nil(t, sub.PausedUntil())
}

func TestResume_ActiveSubscriptionFails(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	sub := newTestSubscription(t, vo.CycleWeekly, vo.FrequencyDaily, asOf)

	err := sub.Resume(asOf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot resume")
}

func TestCancel_IsIdempotent(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	sub := newTestSubscription(t, vo.CycleWeekly, vo.FrequencyDaily, asOf)

	require.NoError(t, sub.Cancel("moving away", asOf))
	versionAfterFirst := sub.Version()

	require.NoError(t, sub.Cancel("again", asOf.Add(time.Hour)))

	assert.Equal(t, vo.StatusCancelled, sub.Status())
	assert.Equal(t, versionAfterFirst, sub.Version())
	require.NotNil(t, sub.CancelReason())
	assert.Equal(t, "moving away", *sub.CancelReason())
}

func TestCancel_TerminalBlocksMutations(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	sub := newTestSubscription(t, vo.CycleWeekly, vo.FrequencyDaily, asOf)
	require.NoError(t, sub.Cancel("", asOf))

	assert.ErrorIs(t, sub.Pause(nil, asOf), ErrTerminalStatus)
	assert.ErrorIs(t, sub.Resume(asOf), ErrTerminalStatus)
	assert.ErrorIs(t, sub.SetVacation(asOf.AddDate(0, 0, 1), asOf.AddDate(0, 0, 5), asOf), ErrTerminalStatus)
	assert.ErrorIs(t, sub.UpdateItems([]Item{{ProductSID: "prod_curd", Quantity: 1}}, asOf), ErrTerminalStatus)
	assert.ErrorIs(t, sub.ChangeAddress(200, asOf), ErrTerminalStatus)
}

func TestMarkExpired(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	sub := newTestSubscription(t, vo.CycleMonthly, vo.FrequencyDaily, asOf)

	next := biztime.MonthDay(2024, time.February, 1)
	sub.SetNextDeliveryDate(&next, asOf)

	require.NoError(t, sub.MarkExpired(asOf))
	assert.Equal(t, vo.StatusExpired, sub.Status())
	assert.Nil(t, sub.NextDeliveryDate())

	// Idempotent on re-delivery of the billing verdict.
	require.NoError(t, sub.MarkExpired(asOf.Add(time.Hour)))

	// No path out of expired.
	assert.ErrorIs(t, sub.Resume(asOf), ErrTerminalStatus)
}

func TestSetVacation_Validation(t *testing.T) {
	asOf := time.Date(2024, 1, 10, 6, 0, 0, 0, time.UTC)
	sub := newTestSubscription(t, vo.CycleWeekly, vo.FrequencyDaily, asOf)

	t.Run("end must be after start", func(t *testing.T) {
		day := biztime.MonthDay(2024, time.January, 20)
		err := sub.SetVacation(day, day, asOf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "end must be after")
	})

	t.Run("start must not be in the past", func(t *testing.T) {
		err := sub.SetVacation(biztime.MonthDay(2024, time.January, 5), biztime.MonthDay(2024, time.January, 8), asOf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be in the past")
	})

	t.Run("valid window is stored as dates", func(t *testing.T) {
		err := sub.SetVacation(biztime.MonthDay(2024, time.January, 15), biztime.MonthDay(2024, time.January, 20), asOf)
		require.NoError(t, err)
		require.NotNil(t, sub.VacationStart())
		require.NotNil(t, sub.VacationEnd())
		assert.Equal(t, biztime.MonthDay(2024, time.January, 15), *sub.VacationStart())
		assert.Equal(t, biztime.MonthDay(2024, time.January, 20), *sub.VacationEnd())
	})
}

func TestClearVacation(t *testing.T) {
	asOf := time.Date(2024, 1, 10, 6, 0, 0, 0, time.UTC)
	sub := newTestSubscription(t, vo.CycleWeekly, vo.FrequencyDaily, asOf)

	// Clearing when no window is set is a no-op.
	version := sub.Version()
	require.NoError(t, sub.ClearVacation(asOf))
	assert.Equal(t, version, sub.Version())

	require.NoError(t, sub.SetVacation(biztime.MonthDay(2024, time.January, 15), biztime.MonthDay(2024, time.January, 20), asOf))
	require.NoError(t, sub.ClearVacation(asOf))
	assert.Nil(t, sub.VacationStart())
	assert.Nil(t, sub.VacationEnd())
}

func TestUpdateItems_RejectsDuplicates(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	sub := newTestSubscription(t, vo.CycleWeekly, vo.FrequencyDaily, asOf)

	err := sub.UpdateItems([]Item{
		{ProductSID: "prod_milk500", Quantity: 1},
		{ProductSID: "prod_milk500", Quantity: 2},
	}, asOf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate product")
}

func TestUpdateItems_PreservesOrder(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	sub := newTestSubscription(t, vo.CycleWeekly, vo.FrequencyDaily, asOf)

	items := []Item{
		{ProductSID: "prod_curd", Quantity: 1},
		{ProductSID: "prod_milk500", Quantity: 3},
		{ProductSID: "prod_paneer", Quantity: 2},
	}
	require.NoError(t, sub.UpdateItems(items, asOf))
	assert.Equal(t, items, sub.Items())
}

func TestChangeBillingCycle(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	sub := newTestSubscription(t, vo.CycleWeekly, vo.FrequencyDaily, asOf)

	// Same cycle is a no-op.
	version := sub.Version()
	require.NoError(t, sub.ChangeBillingCycle(vo.CycleWeekly, asOf))
	assert.Equal(t, version, sub.Version())

	require.NoError(t, sub.ChangeBillingCycle(vo.CycleMonthly, asOf))
	assert.Equal(t, vo.CycleMonthly, sub.BillingCycle())

	err := sub.ChangeBillingCycle("yearly", asOf)
	require.Error(t, err)
}

func TestBottleCounters(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	sub := newTestSubscription(t, vo.CycleWeekly, vo.FrequencyDaily, asOf)

	sub.RecordBottleIssue(2, asOf)
	sub.RecordBottleIssue(0, asOf)
	sub.RecordBottleReturn(1, asOf)
	sub.RecordBottleReturn(-3, asOf)

	assert.Equal(t, 2, sub.BottlesIssued())
	assert.Equal(t, 1, sub.BottlesReturned())
}

func TestReconstruct_RejectsInvalidState(t *testing.T) {
	base := ReconstructParams{
		ID:            1,
		SID:           "sub_test00000001",
		UserID:        1,
		PlanID:        10,
		PlanFrequency: vo.FrequencyDaily,
		BillingCycle:  vo.CycleWeekly,
		Status:        vo.StatusActive,
		StartDate:     biztime.MonthDay(2024, time.January, 1),
		AddressID:     100,
		Vertical:      "daily_fresh",
		Items:         []Item{{ProductSID: "prod_milk500", Quantity: 2}},
		Version:       1,
	}

	t.Run("valid", func(t *testing.T) {
		_, err := Reconstruct(base)
		require.NoError(t, err)
	})

	t.Run("zero id", func(t *testing.T) {
		p := base
		p.ID = 0
		_, err := Reconstruct(p)
		require.Error(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		p := base
		p.Status = "frozen"
		_, err := Reconstruct(p)
		require.Error(t, err)
	})
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    vo.SubscriptionStatus
		to      vo.SubscriptionStatus
		allowed bool
	}{
		{vo.StatusActive, vo.StatusPaused, true},
		{vo.StatusActive, vo.StatusCancelled, true},
		{vo.StatusActive, vo.StatusExpired, true},
		{vo.StatusPaused, vo.StatusActive, true},
		{vo.StatusPaused, vo.StatusCancelled, true},
		{vo.StatusCancelled, vo.StatusActive, false},
		{vo.StatusCancelled, vo.StatusPaused, false},
		{vo.StatusExpired, vo.StatusActive, false},
		{vo.StatusExpired, vo.StatusCancelled, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
