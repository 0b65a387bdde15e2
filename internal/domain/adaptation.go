package domain

// ConfidenceUpdate reports a change in a student's confidence for one topic
// during a given week.
type ConfidenceUpdate struct {
	TopicID       string `json:"topicId,omitempty" yaml:"topicId"`
	TopicName     string `json:"topicName" yaml:"topicName"`
	SubjectName   string `json:"subjectName" yaml:"subjectName"`
	OldConfidence int    `json:"oldConfidence" yaml:"oldConfidence"`
	NewConfidence int    `json:"newConfidence" yaml:"newConfidence"`
	WeekNumber    int    `json:"weekNumber" yaml:"weekNumber"`
}

// Direction is improved only when confidence strictly increased.
func (u ConfidenceUpdate) Direction() Direction {
	if u.NewConfidence > u.OldConfidence {
		return DirectionImproved
	}
	return DirectionDeclined
}

type AdaptationInsight struct {
	TopicRef
	ChangeType ChangeType `json:"changeType"`
	OldHours   float64    `json:"oldHours"`
	NewHours   float64    `json:"newHours"`
	Reasoning  string     `json:"reasoning"`
}

type AdaptationReasoning struct {
	ConfidenceAnalysis        string `json:"confidenceAnalysis"`
	RebalancingLogic          string `json:"rebalancingLogic"`
	TimeReallocationDecisions string `json:"timeReallocationDecisions"`
}

// AdaptedSchedule wraps a schedule and its version-incremented successor.
type AdaptedSchedule struct {
	AdaptationID         string              `json:"adaptationId,omitempty"`
	OriginalSchedule     StudySchedule       `json:"originalSchedule"`
	UpdatedSchedule      StudySchedule       `json:"updatedSchedule"`
	ConfidenceUpdates    []ConfidenceUpdate  `json:"confidenceUpdates"`
	AdaptationInsights   []AdaptationInsight `json:"adaptationInsights"`
	PrerequisiteWarnings []string            `json:"prerequisiteWarnings,omitempty"`
	AIReasoning          AdaptationReasoning `json:"aiReasoning"`
}
