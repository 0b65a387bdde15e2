package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// InsufficientTimeWarning prefixes the warning emitted when allocated hours
// do not fit before the target date.
const InsufficientTimeWarning = "Insufficient time"

// Input carries everything the assembler needs. It performs no model calls.
type Input struct {
	Subjects       []domain.Subject
	Allocation     domain.Allocation
	CognitiveLoads []domain.CognitiveLoad
	Priorities     []domain.TopicPriority
	Dependencies   []domain.TopicDependency
	Profile        domain.StudentProfile
	TargetDate     time.Time
	Today          time.Time
}

// Result is the calendar view derived from an allocation.
type Result struct {
	WeeklySchedules         []domain.WeeklySchedule
	SubjectAnalyses         []domain.SubjectAnalysis
	NextSevenDaysFocus      []domain.FocusItem
	EstimatedCompletionDate string
	Warnings                []string
	UnscheduledHours        float64
}

// Build lays out totalWeeks Monday-aligned weeks starting with the week of
// Today and greedily packs the allocation into day slots from Today through
// the day before TargetDate.
func Build(in Input) Result {
	grid, _ := horizon(in.Today, in.TargetDate)
	return assemble(in, grid, Day(in.Today), nil)
}

// Rebuild keeps the weeks of previous numbered before currentWeek and
// re-packs the remaining allocation into the weeks from currentWeek on.
// Hours already placed in the kept weeks count against each topic.
func Rebuild(in Input, previous []domain.WeeklySchedule, currentWeek int) Result {
	today := Day(in.Today)
	grid, _ := horizon(today, in.TargetDate)
	if len(previous) > 0 {
		if start, err := ParseDate(previous[0].StartDate); err == nil {
			grid = weekGrid{start: MondayOf(start), weeks: len(previous)}
		}
	}
	if currentWeek < 1 {
		currentWeek = 1
	}

	var kept []domain.WeeklySchedule
	for _, w := range previous {
		if w.WeekNumber >= 1 && w.WeekNumber < currentWeek && w.WeekNumber <= grid.weeks {
			kept = append(kept, w)
		}
	}

	from := grid.weekStart(currentWeek)
	if from.Before(today) {
		from = today
	}
	return assemble(in, grid, from, kept)
}

func assemble(in Input, grid weekGrid, from time.Time, kept []domain.WeeklySchedule) Result {
	weeks := grid.emptyWeeks(in.Profile)
	placed := make(map[string]float64)
	for _, w := range kept {
		weeks[w.WeekNumber-1] = copyWeek(w)
		for _, s := range w.Slots {
			placed[s.Key()] += s.Duration
		}
	}

	loads := make(map[string]domain.LoadLevel, len(in.CognitiveLoads))
	for _, l := range in.CognitiveLoads {
		loads[l.Key()] = l.Level
	}

	queue := buildQueue(in.Allocation, loads, placed)
	p := newPacker(queue, in.Profile)

	end := Day(in.TargetDate)
	if gridEnd := grid.end(); gridEnd.Before(end) {
		end = gridEnd
	}
	for day := Day(from); day.Before(end); day = day.AddDate(0, 0, 1) {
		n := grid.weekOf(day)
		if n < 1 || n > len(weeks) {
			continue
		}
		for _, slot := range p.packDay(day) {
			weeks[n-1].Slots = append(weeks[n-1].Slots, slot)
			weeks[n-1].ScheduledHours += slot.Duration
		}
	}

	var res Result
	res.WeeklySchedules = weeks

	for _, it := range queue {
		res.UnscheduledHours += it.remaining
	}
	if res.UnscheduledHours > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%s: %.2f allocated hours could not be scheduled before %s",
			InsufficientTimeWarning, res.UnscheduledHours, formatDate(Day(in.TargetDate))))
	}

	res.EstimatedCompletionDate = formatDate(Day(in.TargetDate))
	for i := len(weeks) - 1; i >= 0; i-- {
		if n := len(weeks[i].Slots); n > 0 {
			res.EstimatedCompletionDate = weeks[i].Slots[n-1].Date
			break
		}
	}

	res.SubjectAnalyses = subjectAnalyses(in, loads)
	res.NextSevenDaysFocus = nextSevenDaysFocus(in, weeks, Day(from))
	return res
}

func copyWeek(w domain.WeeklySchedule) domain.WeeklySchedule {
	cp := w
	cp.Slots = make([]domain.ScheduleSlot, len(w.Slots))
	copy(cp.Slots, w.Slots)
	return cp
}
