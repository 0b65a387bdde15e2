package intelligence

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/scheduler"
)

// semanticOnlyRule is embedded in every stage prompt.
const semanticOnlyRule = `NON-NEGOTIABLE REASONING CONSTRAINT
Derive every dependency, difficulty and ordering judgement purely from semantic analysis of the topic names and the context given here.
You MUST NOT use pre-existing knowledge of specific curricula, syllabi or any fixed topic ordering.`

const analysisSchema = `{
  "topics": [
    {
      "topicId": "string, the id shown in brackets, copied exactly",
      "topic": "string, topic name",
      "subject": "string, subject name",
      "dependency_score": "number 0..1 (1 = foundational, 0 = advanced)",
      "cognitive_load": "\"high\" | \"medium\" | \"low\"",
      "difficulty_score": "number 0..1",
      "prerequisites": ["topicId of a listed topic to learn first"],
      "dependents": ["topicId of a listed topic that builds on this one"]
    }
  ]
}`

const prioritySchema = `{
  "priorities": [
    {
      "topicId": "string, copied exactly",
      "topicName": "string",
      "subjectName": "string",
      "priorityScore": "number 0..1",
      "factors": {
        "creditsWeight": "number 0..1",
        "confidenceWeight": "number 0..1",
        "difficultyWeight": "number 0..1",
        "timeUrgencyWeight": "number 0..1",
        "dependencyWeight": "number 0..1"
      }
    }
  ]
}`

const allocationSchema = `{
  "topicAllocations": [
    {"topicId": "string", "topicName": "string", "subjectName": "string", "hours": "number >= 0"}
  ],
  "studyOrder": [
    {"position": "integer starting at 1", "topicId": "string", "topicName": "string", "subjectName": "string"}
  ],
  "schedulingPrinciples": {
    "highLoadPlacement": "string",
    "dailyBalance": "string",
    "weeklyStrategy": "string",
    "cognitiveLoadTransitions": "string"
  },
  "warnings": ["string"]
}`

// adaptationShape is described inline; the adaptation call passes no schema.
const adaptationShape = `{
  "confidenceAnalysis": "string",
  "adaptations": [
    {
      "topicId": "string, copied exactly",
      "topicName": "string",
      "subjectName": "string",
      "changeType": "time_increased | time_decreased | priority_adjusted | reordered",
      "oldHours": "number",
      "newHours": "number >= 0",
      "reasoning": "string"
    }
  ],
  "prerequisiteWarnings": ["string"],
  "rebalancingStrategy": "string"
}`

// TimeMetrics are the scheduling-time figures shown to the model.
type TimeMetrics struct {
	DaysRemaining       int     `json:"daysRemaining"`
	WeeksRemaining      int     `json:"weeksRemaining"`
	WeeklyHours         float64 `json:"weeklyHours"`
	TotalAvailableHours float64 `json:"totalAvailableHours"`
}

// ComputeTimeMetrics derives days as ceil((target-now)/1 day) and weeks as
// ceil(days/7). TotalAvailableHours counts only the days the assembler fills.
func ComputeTimeMetrics(now, target time.Time, profile domain.StudentProfile) TimeMetrics {
	days := int(math.Ceil(target.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}
	weeks := int(math.Ceil(float64(days) / 7))
	return TimeMetrics{
		DaysRemaining:       days,
		WeeksRemaining:      weeks,
		WeeklyHours:         profile.WeeklyHours(),
		TotalAvailableHours: scheduler.AvailableHours(profile, now, target),
	}
}

type AnalysisPromptInput struct {
	Subjects []domain.Subject
	Branch   string
}

// BuildAnalysisPrompt asks for per-topic dependency, load and difficulty
// estimates without explanatory text.
func BuildAnalysisPrompt(in AnalysisPromptInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are analysing study topics for a %s student.\n", domain.CoalesceStr(strings.TrimSpace(in.Branch), "university"))
	b.WriteString(`For every topic listed below estimate:
- dependency_score: 0..1, where 1 means other listed topics build on it and 0 means it is advanced
- cognitive_load: "high", "medium" or "low" mental effort to learn it
- difficulty_score: 0..1
- prerequisites: ids of listed topics that should be learned before it
- dependents: ids of listed topics that build on it
Return exactly one entry per topic and copy each topicId exactly as shown in brackets.
Reference only topics from this list. Omit explanatory text and any extra fields.

`)
	b.WriteString(semanticOnlyRule)
	b.WriteString("\n\nTOPICS\n")
	b.WriteString(renderSubjects(in.Subjects))
	return b.String()
}

type PriorityPromptInput struct {
	Subjects       []domain.Subject
	Dependencies   []domain.TopicDependency
	CognitiveLoads []domain.CognitiveLoad
	TargetDate     string
	Profile        domain.StudentProfile
	Metrics        TimeMetrics
}

type priorityRow struct {
	TopicID           string   `json:"topicId"`
	Topic             string   `json:"topic"`
	Subject           string   `json:"subject"`
	Credits           float64  `json:"credits"`
	SubjectConfidence int      `json:"subjectConfidence"`
	TopicConfidence   int      `json:"topicConfidence"`
	Standing          string   `json:"standing"`
	CognitiveLoad     string   `json:"cognitiveLoad,omitempty"`
	LoadScore         *float64 `json:"loadScore,omitempty"`
	FoundationScore   *float64 `json:"foundationScore,omitempty"`
	Prerequisites     []string `json:"prerequisites,omitempty"`
	PriorityScore     *float64 `json:"priorityScore,omitempty"`
}

// BuildPriorityPrompt asks for one priority score per topic. Topics without
// an analysis record carry no load fields.
func BuildPriorityPrompt(in PriorityPromptInput) string {
	rows := joinRows(in.Subjects, in.Dependencies, in.CognitiveLoads, nil)

	var b strings.Builder
	b.WriteString(`You are prioritising study topics for exam preparation.
Score every topic below with one priorityScore between 0 and 1 (1 = study first and most).
Weigh subject credits, low student confidence (1 = weakest, 5 = strongest), difficulty and cognitive load,
urgency given the time remaining, and how foundational the topic is for other listed topics.
Report the weight each factor carried in "factors". Do not include a reasoning field.
Copy each topicId exactly.

`)
	b.WriteString(semanticOnlyRule)
	b.WriteString("\n\n")
	writeTimeContext(&b, in.TargetDate, in.Profile, in.Metrics)
	b.WriteString("\nTOPICS\n")
	b.WriteString(mustJSON(rows))
	return b.String()
}

type AllocationPromptInput struct {
	Subjects       []domain.Subject
	Priorities     []domain.TopicPriority
	Dependencies   []domain.TopicDependency
	CognitiveLoads []domain.CognitiveLoad
	Profile        domain.StudentProfile
	TargetDate     string
	Metrics        TimeMetrics
}

// BuildAllocationPrompt asks for hours per topic and a study order. Day-level
// placement is left to the deterministic scheduler.
func BuildAllocationPrompt(in AllocationPromptInput) string {
	rows := joinRows(in.Subjects, in.Dependencies, in.CognitiveLoads, in.Priorities)

	var b strings.Builder
	b.WriteString(`You are allocating study hours across topics before an exam.
1. Give every topic a number of hours. Higher priority and higher cognitive load deserve more time.
   The total must not exceed the total available hours below.
2. Produce a study order covering every topic exactly once, positions starting at 1.
   Prerequisites come before the topics that depend on them.
3. State the scheduling principles you followed and any warnings (for example when time is too short).
Do not assign topics to days or time slots; a scheduler does that from your hours and order.
Copy each topicId exactly.

`)
	b.WriteString(semanticOnlyRule)
	b.WriteString("\n\n")
	writeTimeContext(&b, in.TargetDate, in.Profile, in.Metrics)
	b.WriteString("\nTOPICS\n")
	b.WriteString(mustJSON(rows))
	return b.String()
}

type AdaptationPromptInput struct {
	Allocations []domain.TopicAllocation
	Updates     []domain.ConfidenceUpdate
	CurrentWeek int
}

// DescribeConfidenceUpdate renders one update as a directional delta line.
func DescribeConfidenceUpdate(u domain.ConfidenceUpdate) string {
	line := fmt.Sprintf("- %s / %s: %d → %d (%s)", u.SubjectName, u.TopicName, u.OldConfidence, u.NewConfidence, u.Direction())
	if u.TopicID != "" {
		line += " [" + u.TopicID + "]"
	}
	if u.WeekNumber > 0 {
		line += fmt.Sprintf(" reported in week %d", u.WeekNumber)
	}
	return line
}

// BuildAdaptationPrompt summarises confidence changes against the current
// allocation. The response shape is described inline.
func BuildAdaptationPrompt(in AdaptationPromptInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A student is in week %d of their study schedule and reported these confidence changes (1 = weakest, 5 = strongest):\n", in.CurrentWeek)
	for _, u := range in.Updates {
		b.WriteString(DescribeConfidenceUpdate(u))
		b.WriteString("\n")
	}

	b.WriteString("\nCURRENT TOPIC ALLOCATIONS\n")
	for _, a := range in.Allocations {
		fmt.Fprintf(&b, "- [%s] %s / %s: %.2f hours\n", a.TopicID, a.SubjectName, a.TopicName, a.Hours)
	}

	b.WriteString(`
Identify topics progressing well, which can have future time reduced, and topics where the student is struggling,
which need more time or earlier rescheduling. Flag prerequisite risks suggested by the confidence pattern,
for example a declining topic that others build on. Only list topics whose allocation should change.
Copy each topicId exactly.

`)
	b.WriteString(semanticOnlyRule)
	b.WriteString("\n\nReturn this shape as the result value:\n")
	b.WriteString(adaptationShape)
	return b.String()
}

func renderSubjects(subjects []domain.Subject) string {
	var b strings.Builder
	for _, s := range subjects {
		fmt.Fprintf(&b, "Subject %q [%s] credits=%g confidence=%d/5\n", s.Name, s.ID, s.Credits, s.Confidence)
		for _, t := range s.Topics {
			fmt.Fprintf(&b, "  - [%s] %s (confidence %d/5, %s)\n", t.ID, t.Name, t.Confidence, t.Standing())
		}
	}
	return b.String()
}

func writeTimeContext(b *strings.Builder, targetDate string, profile domain.StudentProfile, m TimeMetrics) {
	b.WriteString("TIME AVAILABLE\n")
	fmt.Fprintf(b, "- Target date: %s\n", targetDate)
	fmt.Fprintf(b, "- Days remaining: %d\n", m.DaysRemaining)
	fmt.Fprintf(b, "- Weeks remaining: %d\n", m.WeeksRemaining)
	fmt.Fprintf(b, "- Weekday hours: %g, weekend hours: %g (%g per week)\n", profile.WeekdayHours, profile.WeekendHours, m.WeeklyHours)
	fmt.Fprintf(b, "- Total available hours: %g\n", m.TotalAvailableHours)
	if profile.PreferredTime != "" {
		fmt.Fprintf(b, "- Preferred study time: %s\n", profile.PreferredTime)
	}
}

// joinRows joins prior-stage records onto each topic by topic key.
func joinRows(subjects []domain.Subject, deps []domain.TopicDependency, loads []domain.CognitiveLoad, prios []domain.TopicPriority) []priorityRow {
	depBy := make(map[string]domain.TopicDependency, len(deps))
	for _, d := range deps {
		depBy[d.Key()] = d
	}
	loadBy := make(map[string]domain.CognitiveLoad, len(loads))
	for _, l := range loads {
		loadBy[l.Key()] = l
	}
	prioBy := make(map[string]domain.TopicPriority, len(prios))
	for _, p := range prios {
		prioBy[p.Key()] = p
	}

	var rows []priorityRow
	for _, s := range subjects {
		for _, t := range s.Topics {
			ref := domain.TopicRef{TopicID: t.ID, TopicName: t.Name, SubjectName: s.Name}
			row := priorityRow{
				TopicID:           t.ID,
				Topic:             t.Name,
				Subject:           s.Name,
				Credits:           s.Credits,
				SubjectConfidence: s.Confidence,
				TopicConfidence:   t.Confidence,
				Standing:          t.Standing(),
			}
			if l, ok := loadBy[ref.Key()]; ok {
				score := l.Score
				row.CognitiveLoad = string(l.Level)
				row.LoadScore = &score
			}
			if d, ok := depBy[ref.Key()]; ok {
				foundation := d.FoundationScore
				row.FoundationScore = &foundation
				row.Prerequisites = d.PrerequisiteIDs
			}
			if p, ok := prioBy[ref.Key()]; ok {
				score := p.Score
				row.PriorityScore = &score
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func mustJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
