// Package bottle models reusable-container deposits. Every bottle state
// transition appends an immutable log row; the log is an append-only audit
// ledger, never mutated or deleted.
package bottle

import (
	"fmt"
	"time"

	sharedid "github.com/freshvale-inc/freshvale/internal/shared/id"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusIssued    Status = "issued"
	StatusReturned  Status = "returned"
	StatusDamaged   Status = "damaged"
	StatusLost      Status = "lost"
)

var ValidStatuses = map[Status]bool{
	StatusAvailable: true,
	StatusIssued:    true,
	StatusReturned:  true,
	StatusDamaged:   true,
	StatusLost:      true,
}

// Log is one immutable ledger row recording a bottle state transition.
type Log struct {
	BottleID      uint
	Action        Status
	Condition     string
	DepositAmount float64
	RefundAmount  float64
	OccurredAt    time.Time
}

// Bottle is a reusable container with a deposit attached.
type Bottle struct {
	id            uint
	sid           string
	status        Status
	depositAmount float64
	userID        *uint
	pendingLogs   []Log
	createdAt     time.Time
	updatedAt     time.Time
}

func NewBottle(depositAmount float64, asOf time.Time) (*Bottle, error) {
	if depositAmount < 0 {
		return nil, fmt.Errorf("deposit amount cannot be negative")
	}
	return &Bottle{
		sid:           sharedid.MustGenerateWithPrefix(sharedid.PrefixBottle, sharedid.DefaultLength),
		status:        StatusAvailable,
		depositAmount: depositAmount,
		createdAt:     asOf,
		updatedAt:     asOf,
	}, nil
}

// BottleReconstructParams carries persisted bottle fields.
type BottleReconstructParams struct {
	ID            uint
	SID           string
	Status        Status
	DepositAmount float64
	UserID        *uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Reconstruct rebuilds a bottle from persistence.
func Reconstruct(p BottleReconstructParams) (*Bottle, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("bottle ID cannot be zero")
	}
	if !ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid bottle status: %s", p.Status)
	}
	return &Bottle{
		id:            p.ID,
		sid:           p.SID,
		status:        p.Status,
		depositAmount: p.DepositAmount,
		userID:        p.UserID,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}, nil
}

func (b *Bottle) ID() uint               { return b.id }
func (b *Bottle) SID() string            { return b.sid }
func (b *Bottle) Status() Status         { return b.status }
func (b *Bottle) DepositAmount() float64 { return b.depositAmount }
func (b *Bottle) UserID() *uint          { return b.userID }
func (b *Bottle) CreatedAt() time.Time   { return b.createdAt }
func (b *Bottle) UpdatedAt() time.Time   { return b.updatedAt }

// SetID sets the bottle ID (only for persistence layer use)
func (b *Bottle) SetID(id uint) error {
	if b.id != 0 {
		return fmt.Errorf("bottle ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("bottle ID cannot be zero")
	}
	b.id = id
	return nil
}

// PendingLogs returns ledger rows appended by transitions since the bottle
// was loaded. The repository persists and then clears them.
func (b *Bottle) PendingLogs() []Log {
	return append([]Log(nil), b.pendingLogs...)
}

// ClearPendingLogs is called by the persistence layer after the rows are written.
func (b *Bottle) ClearPendingLogs() {
	b.pendingLogs = nil
}

func (b *Bottle) appendLog(action Status, condition string, deposit, refund float64, asOf time.Time) {
	b.pendingLogs = append(b.pendingLogs, Log{
		BottleID:      b.id,
		Action:        action,
		Condition:     condition,
		DepositAmount: deposit,
		RefundAmount:  refund,
		OccurredAt:    asOf,
	})
}

// Issue hands the bottle to a user, collecting the deposit.
func (b *Bottle) Issue(userID uint, asOf time.Time) error {
	if userID == 0 {
		return fmt.Errorf("user ID is required")
	}
	if b.status != StatusAvailable && b.status != StatusReturned {
		return fmt.Errorf("cannot issue bottle with status %s", b.status)
	}

	b.status = StatusIssued
	b.userID = &userID
	b.updatedAt = asOf
	b.appendLog(StatusIssued, "good", b.depositAmount, 0, asOf)
	return nil
}

// Return records the bottle coming back. A good-condition return refunds the
// full deposit; a damaged return refunds nothing and marks the bottle damaged.
func (b *Bottle) Return(condition string, asOf time.Time) error {
	if b.status != StatusIssued {
		return fmt.Errorf("cannot return bottle with status %s", b.status)
	}

	refund := b.depositAmount
	next := StatusReturned
	if condition == "damaged" {
		refund = 0
		next = StatusDamaged
	}

	b.status = next
	b.userID = nil
	b.updatedAt = asOf
	b.appendLog(next, condition, 0, refund, asOf)
	return nil
}

// MarkLost forfeits the deposit.
func (b *Bottle) MarkLost(asOf time.Time) error {
	if b.status != StatusIssued {
		return fmt.Errorf("cannot mark bottle lost with status %s", b.status)
	}

	b.status = StatusLost
	b.updatedAt = asOf
	b.appendLog(StatusLost, "lost", 0, 0, asOf)
	return nil
}
