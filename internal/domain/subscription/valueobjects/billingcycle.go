package valueobjects

import "fmt"

// BillingCycle governs how a subscription's recurrence is anchored.
// Weekly cycles repeat on a weekday pattern derived from the plan frequency;
// monthly cycles repeat on the day-of-month of the start date.
type BillingCycle string

const (
	CycleWeekly  BillingCycle = "weekly"
	CycleMonthly BillingCycle = "monthly"
)

func NewBillingCycle(value string) (BillingCycle, error) {
	bc := BillingCycle(value)
	if !ValidBillingCycles[bc] {
		return "", fmt.Errorf("invalid billing cycle: %s", value)
	}
	return bc, nil
}

func (b BillingCycle) String() string {
	return string(b)
}

var ValidBillingCycles = map[BillingCycle]bool{
	CycleWeekly:  true,
	CycleMonthly: true,
}
