package subscription

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	vo "github.com/freshvale-inc/freshvale/internal/domain/subscription/valueobjects"
	"github.com/freshvale-inc/freshvale/internal/shared/biztime"
	sharedid "github.com/freshvale-inc/freshvale/internal/shared/id"
)

// Subscription is the recurring-delivery aggregate root. It owns the
// pause/resume/vacation/cancel state machine and the derived next delivery
// date. All date comparisons use business-timezone calendar days and every
// state-changing operation takes an explicit as-of instant so the aggregate
// never reads a global clock.
type Subscription struct {
	id               uint
	sid              string
	uuid             string
	userID           uint
	planID           uint
	planFrequency    vo.PlanFrequency
	billingCycle     vo.BillingCycle
	status           vo.SubscriptionStatus
	startDate        time.Time
	vacationStart    *time.Time
	vacationEnd      *time.Time
	pausedUntil      *time.Time
	nextDeliveryDate *time.Time
	autoRenew        bool
	addressID        uint
	vertical         string
	items            []Item
	bottlesIssued    int
	bottlesReturned  int
	cancelledAt      *time.Time
	cancelReason     *string
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

// NewSubscription creates a subscription in active status. Deliveries are
// never generated before startDate.
func NewSubscription(
	userID, planID uint,
	planFrequency vo.PlanFrequency,
	billingCycle vo.BillingCycle,
	startDate time.Time,
	addressID uint,
	vertical string,
	items []Item,
	autoRenew bool,
	asOf time.Time,
) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if addressID == 0 {
		return nil, fmt.Errorf("address ID is required")
	}
	if vertical == "" {
		return nil, fmt.Errorf("vertical is required")
	}
	if !vo.ValidPlanFrequencies[planFrequency] {
		return nil, fmt.Errorf("invalid plan frequency: %s", planFrequency)
	}
	if !vo.ValidBillingCycles[billingCycle] {
		return nil, fmt.Errorf("invalid billing cycle: %s", billingCycle)
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	return &Subscription{
		sid:           sharedid.MustGenerateWithPrefix(sharedid.PrefixSubscription, sharedid.DefaultLength),
		uuid:          uuid.NewString(),
		userID:        userID,
		planID:        planID,
		planFrequency: planFrequency,
		billingCycle:  billingCycle,
		status:        vo.StatusActive,
		startDate:     biztime.DateOf(startDate),
		autoRenew:     autoRenew,
		addressID:     addressID,
		vertical:      vertical,
		items:         append([]Item(nil), items...),
		version:       1,
		createdAt:     asOf,
		updatedAt:     asOf,
	}, nil
}

// ReconstructParams carries every persisted field for rebuilding the
// aggregate from storage.
type ReconstructParams struct {
	ID               uint
	SID              string
	UUID             string
	UserID           uint
	PlanID           uint
	PlanFrequency    vo.PlanFrequency
	BillingCycle     vo.BillingCycle
	Status           vo.SubscriptionStatus
	StartDate        time.Time
	VacationStart    *time.Time
	VacationEnd      *time.Time
	PausedUntil      *time.Time
	NextDeliveryDate *time.Time
	AutoRenew        bool
	AddressID        uint
	Vertical         string
	Items            []Item
	BottlesIssued    int
	BottlesReturned  int
	CancelledAt      *time.Time
	CancelReason     *string
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Reconstruct rebuilds a subscription from persistence.
func Reconstruct(p ReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}
	if !vo.ValidBillingCycles[p.BillingCycle] {
		return nil, fmt.Errorf("invalid billing cycle: %s", p.BillingCycle)
	}
	if !vo.ValidPlanFrequencies[p.PlanFrequency] {
		return nil, fmt.Errorf("invalid plan frequency: %s", p.PlanFrequency)
	}

	return &Subscription{
		id:               p.ID,
		sid:              p.SID,
		uuid:             p.UUID,
		userID:           p.UserID,
		planID:           p.PlanID,
		planFrequency:    p.PlanFrequency,
		billingCycle:     p.BillingCycle,
		status:           p.Status,
		startDate:        p.StartDate,
		vacationStart:    p.VacationStart,
		vacationEnd:      p.VacationEnd,
		pausedUntil:      p.PausedUntil,
		nextDeliveryDate: p.NextDeliveryDate,
		autoRenew:        p.AutoRenew,
		addressID:        p.AddressID,
		vertical:         p.Vertical,
		items:            p.Items,
		bottlesIssued:    p.BottlesIssued,
		bottlesReturned:  p.BottlesReturned,
		cancelledAt:      p.CancelledAt,
		cancelReason:     p.CancelReason,
		version:          p.Version,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                     { return s.id }
func (s *Subscription) SID() string                  { return s.sid }
func (s *Subscription) UUID() string                 { return s.uuid }
func (s *Subscription) UserID() uint                 { return s.userID }
func (s *Subscription) PlanID() uint                 { return s.planID }
func (s *Subscription) PlanFrequency() vo.PlanFrequency { return s.planFrequency }
func (s *Subscription) BillingCycle() vo.BillingCycle   { return s.billingCycle }
func (s *Subscription) Status() vo.SubscriptionStatus   { return s.status }
func (s *Subscription) StartDate() time.Time         { return s.startDate }
func (s *Subscription) VacationStart() *time.Time    { return s.vacationStart }
func (s *Subscription) VacationEnd() *time.Time      { return s.vacationEnd }
func (s *Subscription) PausedUntil() *time.Time      { return s.pausedUntil }
func (s *Subscription) NextDeliveryDate() *time.Time { return s.nextDeliveryDate }
func (s *Subscription) AutoRenew() bool              { return s.autoRenew }
func (s *Subscription) AddressID() uint              { return s.addressID }
func (s *Subscription) Vertical() string             { return s.vertical }
func (s *Subscription) BottlesIssued() int           { return s.bottlesIssued }
func (s *Subscription) BottlesReturned() int         { return s.bottlesReturned }
func (s *Subscription) CancelledAt() *time.Time      { return s.cancelledAt }
func (s *Subscription) CancelReason() *string        { return s.cancelReason }
func (s *Subscription) Version() int                 { return s.version }
func (s *Subscription) CreatedAt() time.Time         { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time         { return s.updatedAt }

// Items returns a copy of the ordered item list.
func (s *Subscription) Items() []Item {
	return append([]Item(nil), s.items...)
}

// OwnedBy reports whether the given user owns this subscription. Lifecycle
// decisions are exclusive to the owner.
func (s *Subscription) OwnedBy(userID uint) bool {
	return s.userID == userID
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *Subscription) touch(asOf time.Time) {
	s.updatedAt = asOf
	s.version++
}

// Pause transitions active → paused. The optional until date must be strictly
// in the future. Pausing clears the next delivery date; no deliveries are
// generated while paused.
func (s *Subscription) Pause(until *time.Time, asOf time.Time) error {
	if s.status.IsTerminal() {
		return ErrTerminalStatus
	}
	if !s.status.CanTransitionTo(vo.StatusPaused) {
		return fmt.Errorf("cannot pause subscription with status %s", s.status)
	}
	if until != nil && !until.After(asOf) {
		return fmt.Errorf("paused_until must be in the future")
	}

	s.status = vo.StatusPaused
	if until != nil {
		d := biztime.DateOf(*until)
		s.pausedUntil = &d
	}
	s.nextDeliveryDate = nil
	s.touch(asOf)

	return nil
}

// Resume transitions paused → active and clears paused_until. The caller must
// recompute the next delivery date afterwards; the aggregate cannot resolve
// zone serviceability on its own.
func (s *Subscription) Resume(asOf time.Time) error {
	if s.status.IsTerminal() {
		return ErrTerminalStatus
	}
	if !s.status.CanTransitionTo(vo.StatusActive) {
		return fmt.Errorf("cannot resume subscription with status %s", s.status)
	}

	s.status = vo.StatusActive
	s.pausedUntil = nil
	s.touch(asOf)

	return nil
}

// Cancel transitions any non-terminal status to cancelled. The reason is
// optional free text. Cancellation is terminal: the next delivery date is
// cleared permanently.
func (s *Subscription) Cancel(reason string, asOf time.Time) error {
	if s.status == vo.StatusCancelled {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusCancelled) {
		return fmt.Errorf("cannot cancel subscription with status %s", s.status)
	}

	s.status = vo.StatusCancelled
	s.cancelledAt = &asOf
	if reason != "" {
		s.cancelReason = &reason
	}
	s.nextDeliveryDate = nil
	s.pausedUntil = nil
	s.touch(asOf)

	return nil
}

// MarkExpired honors the external billing expiry. Terminal.
func (s *Subscription) MarkExpired(asOf time.Time) error {
	if s.status == vo.StatusExpired {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusExpired) {
		return fmt.Errorf("cannot expire subscription with status %s", s.status)
	}

	s.status = vo.StatusExpired
	s.nextDeliveryDate = nil
	s.touch(asOf)

	return nil
}

// SetVacation sets the single vacation window. The end must be strictly after
// the start, and the start must not be in the past. Status is unchanged; the
// window only suppresses delivery days inside it.
func (s *Subscription) SetVacation(start, end time.Time, asOf time.Time) error {
	if s.status.IsTerminal() {
		return ErrTerminalStatus
	}

	startDay := biztime.DateOf(start)
	endDay := biztime.DateOf(end)
	if !endDay.After(startDay) {
		return fmt.Errorf("vacation end must be after vacation start")
	}
	if startDay.Before(biztime.DateOf(asOf)) {
		return fmt.Errorf("vacation start must not be in the past")
	}

	s.vacationStart = &startDay
	s.vacationEnd = &endDay
	s.touch(asOf)

	return nil
}

// ClearVacation removes the vacation window.
func (s *Subscription) ClearVacation(asOf time.Time) error {
	if s.status.IsTerminal() {
		return ErrTerminalStatus
	}
	if s.vacationStart == nil && s.vacationEnd == nil {
		return nil
	}

	s.vacationStart = nil
	s.vacationEnd = nil
	s.touch(asOf)

	return nil
}

// UpdateItems replaces the ordered item list.
func (s *Subscription) UpdateItems(items []Item, asOf time.Time) error {
	if s.status.IsTerminal() {
		return ErrTerminalStatus
	}
	if err := validateItems(items); err != nil {
		return err
	}

	s.items = append([]Item(nil), items...)
	s.touch(asOf)

	return nil
}

// ChangeAddress rebinds the subscription to a new delivery address. Callers
// must recompute the next delivery date against the new zone state.
func (s *Subscription) ChangeAddress(addressID uint, asOf time.Time) error {
	if s.status.IsTerminal() {
		return ErrTerminalStatus
	}
	if addressID == 0 {
		return fmt.Errorf("address ID is required")
	}
	if addressID == s.addressID {
		return nil
	}

	s.addressID = addressID
	s.touch(asOf)

	return nil
}

// ChangeBillingCycle switches the recurrence anchor. Callers must recompute
// the next delivery date afterwards.
func (s *Subscription) ChangeBillingCycle(cycle vo.BillingCycle, asOf time.Time) error {
	if s.status.IsTerminal() {
		return ErrTerminalStatus
	}
	if !vo.ValidBillingCycles[cycle] {
		return fmt.Errorf("invalid billing cycle: %s", cycle)
	}
	if cycle == s.billingCycle {
		return nil
	}

	s.billingCycle = cycle
	s.touch(asOf)

	return nil
}

// SetAutoRenew toggles renewal at billing-cycle end.
func (s *Subscription) SetAutoRenew(autoRenew bool, asOf time.Time) {
	if s.autoRenew == autoRenew {
		return
	}
	s.autoRenew = autoRenew
	s.touch(asOf)
}

// SetNextDeliveryDate stores the recomputed derived pointer. A nil value
// means no deliverable day exists (or the status forbids deliveries).
func (s *Subscription) SetNextDeliveryDate(date *time.Time, asOf time.Time) {
	if date != nil {
		d := biztime.DateOf(*date)
		s.nextDeliveryDate = &d
	} else {
		s.nextDeliveryDate = nil
	}
	s.touch(asOf)
}

// RecordBottleIssue adds to the issued-bottles counter surfaced on the
// subscription view.
func (s *Subscription) RecordBottleIssue(count int, asOf time.Time) {
	if count <= 0 {
		return
	}
	s.bottlesIssued += count
	s.touch(asOf)
}

// RecordBottleReturn adds to the returned-bottles counter.
func (s *Subscription) RecordBottleReturn(count int, asOf time.Time) {
	if count <= 0 {
		return
	}
	s.bottlesReturned += count
	s.touch(asOf)
}

// Validate performs domain-level validation of the aggregate invariants.
func (s *Subscription) Validate() error {
	if s.userID == 0 {
		return fmt.Errorf("user ID is required")
	}
	if s.addressID == 0 {
		return fmt.Errorf("address ID is required")
	}
	if !vo.ValidStatuses[s.status] {
		return fmt.Errorf("invalid status: %s", s.status)
	}
	if (s.vacationStart == nil) != (s.vacationEnd == nil) {
		return fmt.Errorf("vacation window must set both start and end")
	}
	if s.vacationStart != nil && !s.vacationEnd.After(*s.vacationStart) {
		return fmt.Errorf("vacation end must be after vacation start")
	}
	if s.pausedUntil != nil && s.status != vo.StatusPaused {
		return fmt.Errorf("paused_until is only meaningful while paused")
	}
	return validateItems(s.items)
}
