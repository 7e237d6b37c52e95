package subscription

import (
	"time"

	vo "github.com/freshvale-inc/freshvale/internal/domain/subscription/valueobjects"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
)

// DefaultHorizonDays bounds the next-delivery-date scan so a subscription
// with no deliverable day ahead cannot trigger an unbounded search.
const DefaultHorizonDays = 180

// ZoneDayFn answers whether the subscription's bound address is serviceable
// on the given business-timezone date: the resolved zone must exist, be
// active and eligible, and the date's weekday must be in the zone's service
// day mask. Callers build the closure from the zone resolver so the
// calculator itself stays pure.
type ZoneDayFn func(date time.Time) bool

// DaySchedule is one calendar day in a month view.
type DaySchedule struct {
	Date       time.Time
	IsDelivery bool
	IsVacation bool
	IsToday    bool
	IsPast     bool
}

// MonthSchedule is the delivery calendar for one month.
type MonthSchedule struct {
	Days            []DaySchedule
	TotalDeliveries int
	VacationDays    int
	FirstDayOffset  int
}

// isCandidateDay applies the recurrence predicate of the billing cycle: a day
// can carry a delivery when the subscription is active, the day is on or
// after the start date, and the cadence pattern selects it.
func (s *Subscription) isCandidateDay(day time.Time) bool {
	if !s.status.CanDeliver() {
		return false
	}

	startDay := biztime.DateOf(s.startDate)
	if day.Before(startDay) {
		return false
	}

	switch s.billingCycle {
	case vo.CycleWeekly:
		switch s.planFrequency {
		case vo.FrequencyDaily:
			return true
		case vo.FrequencyAlternate:
			// Every second day counted from the start date.
			days := int(day.Sub(startDay).Hours() / 24)
			return days%2 == 0
		}
		return false
	case vo.CycleMonthly:
		// Day-of-month anchored to the start date, clipped to month length.
		anchor := startDay.Day()
		daysInMonth := biztime.DaysInMonth(day.Year(), day.Month())
		if anchor > daysInMonth {
			anchor = daysInMonth
		}
		return day.Day() == anchor
	}
	return false
}

// inVacation reports whether the day falls inside the vacation window,
// boundaries inclusive.
func (s *Subscription) inVacation(day time.Time) bool {
	if s.vacationStart == nil || s.vacationEnd == nil {
		return false
	}
	return !day.Before(*s.vacationStart) && !day.After(*s.vacationEnd)
}

// ComputeMonthSchedule enumerates every day of the requested month and marks
// delivery, vacation, today and past flags. It is a pure function of the
// persisted subscription state, the as-of instant, and the zone-day callback;
// calling it twice with the same inputs yields identical output.
func (s *Subscription) ComputeMonthSchedule(year int, month time.Month, asOf time.Time, zoneDay ZoneDayFn) MonthSchedule {
	today := biztime.DateOf(asOf)
	daysInMonth := biztime.DaysInMonth(year, month)

	schedule := MonthSchedule{
		Days:           make([]DaySchedule, 0, daysInMonth),
		FirstDayOffset: int(biztime.MonthDay(year, month, 1).Weekday()),
	}

	for dayNum := 1; dayNum <= daysInMonth; dayNum++ {
		day := biztime.MonthDay(year, month, dayNum)

		entry := DaySchedule{
			Date:    day,
			IsToday: day.Equal(today),
			IsPast:  day.Before(today),
		}

		if s.inVacation(day) {
			entry.IsVacation = true
			schedule.VacationDays++
		}

		if s.isCandidateDay(day) && !entry.IsVacation && zoneDay != nil && zoneDay(day) {
			entry.IsDelivery = true
			schedule.TotalDeliveries++
		}

		schedule.Days = append(schedule.Days, entry)
	}

	return schedule
}

// ComputeNextDeliveryDate returns the earliest non-suppressed delivery day on
// or after the as-of date (or the start date when the subscription has not
// started). It returns (nil, nil) when the status forbids deliveries, and
// ErrUnschedulable when no day is found within horizonDays.
func (s *Subscription) ComputeNextDeliveryDate(asOf time.Time, horizonDays int, zoneDay ZoneDayFn) (*time.Time, error) {
	return s.scanForDelivery(biztime.DateOf(asOf), horizonDays, zoneDay)
}

// AdvanceAfterOrder recomputes the next delivery date strictly after the day
// an order was just generated for, guaranteeing monotonic advancement of the
// pointer.
func (s *Subscription) AdvanceAfterOrder(generatedFor time.Time, horizonDays int, zoneDay ZoneDayFn, asOf time.Time) error {
	next, err := s.scanForDelivery(biztime.DateOf(generatedFor).AddDate(0, 0, 1), horizonDays, zoneDay)
	if err != nil {
		return err
	}
	s.SetNextDeliveryDate(next, asOf)
	return nil
}

func (s *Subscription) scanForDelivery(from time.Time, horizonDays int, zoneDay ZoneDayFn) (*time.Time, error) {
	if !s.status.CanDeliver() {
		return nil, nil
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	startDay := biztime.DateOf(s.startDate)
	if from.Before(startDay) {
		from = startDay
	}

	for i := 0; i <= horizonDays; i++ {
		day := from.AddDate(0, 0, i)
		if !s.isCandidateDay(day) {
			continue
		}
		if s.inVacation(day) {
			continue
		}
		if zoneDay == nil || !zoneDay(day) {
			continue
		}
		return &day, nil
	}

	return nil, ErrUnschedulable
}
