package valueobjects

import "fmt"

// PlanFrequency is the delivery cadence carried by a plan. Daily plans
// deliver on every eligible day; alternate plans deliver every second day
// counted from the subscription start date.
type PlanFrequency string

const (
	FrequencyDaily     PlanFrequency = "daily"
	FrequencyAlternate PlanFrequency = "alternate"
)

func NewPlanFrequency(value string) (PlanFrequency, error) {
	f := PlanFrequency(value)
	if !ValidPlanFrequencies[f] {
		return "", fmt.Errorf("invalid plan frequency: %s", value)
	}
	return f, nil
}

func (f PlanFrequency) String() string {
	return string(f)
}

var ValidPlanFrequencies = map[PlanFrequency]bool{
	FrequencyDaily:     true,
	FrequencyAlternate: true,
}
