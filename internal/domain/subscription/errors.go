package subscription

import "errors"

var (
	// ErrUnschedulable is returned when the next-delivery-date scan exhausted
	// its look-ahead horizon without finding a deliverable day. Callers flag
	// the subscription for manual review instead of scanning further.
	ErrUnschedulable = errors.New("no delivery day found within scheduling horizon")

	// ErrTerminalStatus is returned when a mutation is attempted on a
	// cancelled or expired subscription.
	ErrTerminalStatus = errors.New("subscription is in a terminal status")
)
