package testutil

import (
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// ProfileOption customises a test profile.
type ProfileOption func(*domain.StudentProfile)

func WithHours(weekday, weekend float64) ProfileOption {
	return func(p *domain.StudentProfile) {
		p.WeekdayHours = weekday
		p.WeekendHours = weekend
	}
}

func WithPreferredTime(t domain.PreferredTime) ProfileOption {
	return func(p *domain.StudentProfile) {
		p.PreferredTime = t
	}
}

func NewTestProfile(opts ...ProfileOption) domain.StudentProfile {
	p := domain.StudentProfile{
		Name:           "Test Student",
		Branch:         "Computer Science",
		GraduationYear: 2027,
		WeekdayHours:   2,
		WeekendHours:   4,
		PreferredTime:  domain.PreferMorning,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NewTestSubject builds a subject with credits 4, confidence 3 and one topic
// per name, each at confidence 3.
func NewTestSubject(name string, topics ...string) domain.Subject {
	s := domain.Subject{Name: name, Credits: 4, Confidence: 3}
	for _, t := range topics {
		s.Topics = append(s.Topics, domain.Topic{Name: t, Confidence: 3})
	}
	return s
}

// FixedClock returns a clock frozen at t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// TestNow is a fixed Wednesday used across planner tests.
var TestNow = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

// DateAfter formats the calendar date days after from.
func DateAfter(from time.Time, days int) string {
	return from.AddDate(0, 0, days).Format(domain.DateLayout)
}
