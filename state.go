package main

import "fmt"

// WidgetState is the three-way classification of a reading. The order
// matters: StateDown < StateMiddle < StateUp.
type WidgetState int

const (
	StateDown WidgetState = iota
	StateMiddle
	StateUp
)

func (s WidgetState) String() string {
	switch s {
	case StateDown:
		return "down"
	case StateMiddle:
		return "middle"
	case StateUp:
		return "up"
	}
	panic(fmt.Sprintf("invalid widget state %d", int(s)))
}

// Key returns the localization key for the state's default title.
func (s WidgetState) Key() string {
	return "state_" + s.String()
}

// ClassifyReading maps a reading against the two thresholds. The comparison
// order is the contract: when thresholdDown >= thresholdUp the middle state
// is simply unreachable, values below thresholdDown are still down and
// everything else is up.
func ClassifyReading(value, thresholdDown, thresholdUp float64) WidgetState {
	if value < thresholdDown {
		return StateDown
	}
	if value < thresholdUp {
		return StateMiddle
	}
	return StateUp
}

// mustValidState guards paths that index per-state configuration. Reaching
// it with anything outside the three states is a logic fault, not bad input.
func mustValidState(s WidgetState) {
	if s < StateDown || s > StateUp {
		panic(fmt.Sprintf("invalid widget state %d", int(s)))
	}
}
