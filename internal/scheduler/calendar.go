package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MondayOf returns the Monday starting the week that contains day.
func MondayOf(day time.Time) time.Time {
	day = Day(day)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// DaysBetween counts whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(Day(b).Sub(Day(a)).Hours() / 24))
}

// TotalWeeks is ceil(days/7) between today and target, never less than 1.
func TotalWeeks(today, target time.Time) int {
	days := DaysBetween(today, target)
	weeks := int(math.Ceil(float64(days) / 7))
	if weeks < 1 {
		return 1
	}
	return weeks
}

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the calendar day.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return Day(t), nil
}

// AvailableHours sums the daily budgets of the days Build can fill: from today
// up to the day before target, within the TotalWeeks weeks of the grid.
func AvailableHours(profile domain.StudentProfile, today, target time.Time) float64 {
	_, end := horizon(today, target)
	total := 0.0
	for day := Day(today); day.Before(end); day = day.AddDate(0, 0, 1) {
		total += floorQuarter(profile.HoursOn(day))
	}
	return total
}

// horizon lays TotalWeeks weeks from the Monday of today's week and returns
// the exclusive end of the packable days.
func horizon(today, target time.Time) (weekGrid, time.Time) {
	today = Day(today)
	grid := weekGrid{start: MondayOf(today), weeks: TotalWeeks(today, target)}
	end := Day(target)
	if gridEnd := grid.end(); gridEnd.Before(end) {
		end = gridEnd
	}
	return grid, end
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// weekGrid lays contiguous Monday..Sunday weeks from start.
type weekGrid struct {
	start time.Time
	weeks int
}

func (g weekGrid) weekOf(day time.Time) int {
	return DaysBetween(g.start, day)/7 + 1
}

func (g weekGrid) weekStart(n int) time.Time {
	return g.start.AddDate(0, 0, 7*(n-1))
}

// end is the day after the last day of the grid.
func (g weekGrid) end() time.Time {
	return g.start.AddDate(0, 0, 7*g.weeks)
}

func (g weekGrid) emptyWeeks(profile domain.StudentProfile) []domain.WeeklySchedule {
	out := make([]domain.WeeklySchedule, g.weeks)
	for i := range out {
		start := g.weekStart(i + 1)
		out[i] = domain.WeeklySchedule{
			WeekNumber: i + 1,
			StartDate:  formatDate(start),
			EndDate:    formatDate(start.AddDate(0, 0, 6)),
			Slots:      []domain.ScheduleSlot{},
			TotalHours: profile.WeeklyHours(),
		}
	}
	return out
}
