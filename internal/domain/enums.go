package domain

import "strings"

type PreferredTime string

const (
	PreferMorning   PreferredTime = "morning"
	PreferAfternoon PreferredTime = "afternoon"
	PreferNight     PreferredTime = "night"
)

// ValidPreferredTimes is the canonical set of accepted preferred study times.
var ValidPreferredTimes = map[PreferredTime]bool{
	PreferMorning: true, PreferAfternoon: true, PreferNight: true,
}

// TimeSlotsFrom returns the three time-of-day labels starting at the
// preferred one. An unknown preference starts at morning.
func TimeSlotsFrom(p PreferredTime) []PreferredTime {
	switch p {
	case PreferAfternoon:
		return []PreferredTime{PreferAfternoon, PreferNight, PreferMorning}
	case PreferNight:
		return []PreferredTime{PreferNight, PreferMorning, PreferAfternoon}
	default:
		return []PreferredTime{PreferMorning, PreferAfternoon, PreferNight}
	}
}

type LoadLevel string

const (
	LoadHigh   LoadLevel = "high"
	LoadMedium LoadLevel = "medium"
	LoadLow    LoadLevel = "low"
)

// ParseLoadLevel lower-cases a model-supplied label. ok is false when the
// label is not one of high/medium/low, in which case LoadMedium is returned.
func ParseLoadLevel(s string) (LoadLevel, bool) {
	switch LoadLevel(strings.ToLower(strings.TrimSpace(s))) {
	case LoadHigh:
		return LoadHigh, true
	case LoadMedium:
		return LoadMedium, true
	case LoadLow:
		return LoadLow, true
	default:
		return LoadMedium, false
	}
}

type ChangeType string

const (
	ChangeTimeIncreased    ChangeType = "time_increased"
	ChangeTimeDecreased    ChangeType = "time_decreased"
	ChangePriorityAdjusted ChangeType = "priority_adjusted"
	ChangeReordered        ChangeType = "reordered"
)

// MovesEarlier reports whether the change asks for the topic to be studied sooner.
func (c ChangeType) MovesEarlier() bool {
	return c == ChangeReordered || c == ChangePriorityAdjusted
}

// Direction describes a confidence delta.
type Direction string

const (
	DirectionImproved Direction = "improved"
	DirectionDeclined Direction = "declined"
)
