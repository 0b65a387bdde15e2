package domain

import "time"

// StudentProfile is the caller-supplied description of the student and their
// weekly availability.
type StudentProfile struct {
	Name           string        `json:"name" yaml:"name"`
	Branch         string        `json:"branch" yaml:"branch"`
	GraduationYear int           `json:"graduationYear,omitempty" yaml:"graduationYear"`
	WeekdayHours   float64       `json:"weekdayHours" yaml:"weekdayHours"`
	WeekendHours   float64       `json:"weekendHours" yaml:"weekendHours"`
	PreferredTime  PreferredTime `json:"preferredTime" yaml:"preferredTime"`
}

// WeeklyHours is the study time available in a full Monday..Sunday week.
func (p StudentProfile) WeeklyHours() float64 {
	return p.WeekdayHours*5 + p.WeekendHours*2
}

// HoursOn returns the study budget for a calendar day.
func (p StudentProfile) HoursOn(day time.Time) float64 {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return p.WeekendHours
	default:
		return p.WeekdayHours
	}
}
