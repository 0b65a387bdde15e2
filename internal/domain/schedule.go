package domain

import "time"

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

type ScheduleSlot struct {
	Day      string        `json:"day"`
	Date     string        `json:"date"`
	TimeSlot PreferredTime `json:"timeSlot"`
	TopicRef
	Duration      float64   `json:"duration"`
	CognitiveLoad LoadLevel `json:"cognitiveLoad"`
	Reasoning     string    `json:"reasoning"`
}

// WeeklySchedule is one Monday..Sunday week. TotalHours is the week's
// available capacity; ScheduledHours is what was actually placed.
type WeeklySchedule struct {
	WeekNumber     int            `json:"weekNumber"`
	StartDate      string         `json:"startDate"`
	EndDate        string         `json:"endDate"`
	Slots          []ScheduleSlot `json:"slots"`
	TotalHours     float64        `json:"totalHours"`
	ScheduledHours float64        `json:"scheduledHours"`
}

type TopicBreakdown struct {
	TopicID        string    `json:"topicId,omitempty"`
	TopicName      string    `json:"topicName"`
	HoursAllocated float64   `json:"hoursAllocated"`
	CognitiveLoad  LoadLevel `json:"cognitiveLoad"`
}

type SubjectAnalysis struct {
	SubjectName         string           `json:"subjectName"`
	TotalHoursAllocated float64          `json:"totalHoursAllocated"`
	PriorityScore       float64          `json:"priorityScore"`
	TopicBreakdown      []TopicBreakdown `json:"topicBreakdown"`
	Reasoning           string           `json:"reasoning"`
}

type FocusItem struct {
	TopicRef
	StartDate            string   `json:"startDate"`
	Reasoning            string   `json:"reasoning"`
	PrerequisiteWarnings []string `json:"prerequisiteWarnings,omitempty"`
}

type ScheduleReasoning struct {
	DependencyInferenceMethod string `json:"dependencyInferenceMethod"`
	CognitiveLoadRationale    string `json:"cognitiveLoadRationale"`
	PriorityDecisions         string `json:"priorityDecisions"`
	SchedulingLogic           string `json:"schedulingLogic"`
}

// StudySchedule is the unit returned to callers and persisted. The stage
// outputs it was built from are carried along so it can be rebuilt on
// adaptation.
type StudySchedule struct {
	ScheduleID              string            `json:"scheduleId,omitempty"`
	WeeklySchedules         []WeeklySchedule  `json:"weeklySchedules"`
	SubjectAnalyses         []SubjectAnalysis `json:"subjectAnalyses"`
	NextSevenDaysFocus      []FocusItem       `json:"nextSevenDaysFocus"`
	AIReasoning             ScheduleReasoning `json:"aiReasoning"`
	EstimatedCompletionDate string            `json:"estimatedCompletionDate"`
	Version                 int               `json:"version"`

	Profile              *StudentProfile      `json:"profile,omitempty"`
	TargetDate           string               `json:"targetDate,omitempty"`
	GeneratedAt          *time.Time           `json:"generatedAt,omitempty"`
	Subjects             []Subject            `json:"subjects,omitempty"`
	TopicAllocations     []TopicAllocation    `json:"topicAllocations,omitempty"`
	StudyOrder           []StudyOrderEntry    `json:"studyOrder,omitempty"`
	CognitiveLoads       []CognitiveLoad      `json:"cognitiveLoads,omitempty"`
	Priorities           []TopicPriority      `json:"priorities,omitempty"`
	Dependencies         []TopicDependency    `json:"dependencies,omitempty"`
	SchedulingPrinciples SchedulingPrinciples `json:"schedulingPrinciples"`
	Warnings             []string             `json:"warnings,omitempty"`
}

// TotalScheduledHours sums placed slot hours across all weeks.
func (s *StudySchedule) TotalScheduledHours() float64 {
	total := 0.0
	for _, w := range s.WeeklySchedules {
		total += w.ScheduledHours
	}
	return total
}

// Rebuildable reports whether the schedule carries enough context to be
// re-assembled after an adaptation.
func (s *StudySchedule) Rebuildable() bool {
	return s.Profile != nil && s.TargetDate != "" && len(s.TopicAllocations) > 0
}
