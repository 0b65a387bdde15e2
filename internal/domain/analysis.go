package domain

// TopicDependency holds the inferred prerequisite and dependent topics for
// one topic. Names are for display; the id lists reference topics that exist
// in the input. FoundationScore is the model's 0..1 foundational estimate
// (1 = foundational).
type TopicDependency struct {
	TopicRef
	Prerequisites   []string `json:"prerequisitesTopics"`
	Dependents      []string `json:"dependentTopics"`
	PrerequisiteIDs []string `json:"prerequisiteIds,omitempty"`
	DependentIDs    []string `json:"dependentIds,omitempty"`
	FoundationScore float64  `json:"foundationScore"`
	Reasoning       string   `json:"reasoning"`
}

// CognitiveLoad is the inferred mental effort for a topic, independent of the
// student's confidence.
type CognitiveLoad struct {
	TopicRef
	Level     LoadLevel `json:"loadLevel"`
	Score     float64   `json:"loadScore"`
	Reasoning string    `json:"reasoning"`
}

// PriorityFactors are the model's weights for each priority input. Each is
// conceptually in [0,1]; they need not sum to 1.
type PriorityFactors struct {
	Credits     float64 `json:"creditsWeight"`
	Confidence  float64 `json:"confidenceWeight"`
	Difficulty  float64 `json:"difficultyWeight"`
	TimeUrgency float64 `json:"timeUrgencyWeight"`
	Dependency  float64 `json:"dependencyWeight"`
}

type TopicPriority struct {
	TopicRef
	Score     float64         `json:"priorityScore"`
	Factors   PriorityFactors `json:"factors"`
	Reasoning string          `json:"reasoning"`
}

type TopicAllocation struct {
	TopicRef
	Hours     float64 `json:"hours"`
	Reasoning string  `json:"reasoning"`
}

// StudyOrderEntry places a topic in the total study order. Position is 1-based.
type StudyOrderEntry struct {
	Position int `json:"position"`
	TopicRef
	Reasoning string `json:"reasoning"`
}

type SchedulingPrinciples struct {
	HighLoadPlacement        string `json:"highLoadPlacement"`
	DailyBalance             string `json:"dailyBalance"`
	WeeklyStrategy           string `json:"weeklyStrategy"`
	CognitiveLoadTransitions string `json:"cognitiveLoadTransitions"`
}

// Allocation is the Allocation Stage result consumed by the assembler.
type Allocation struct {
	TopicAllocations []TopicAllocation   `json:"topicAllocations"`
	StudyOrder       []StudyOrderEntry    `json:"studyOrder"`
	Principles       SchedulingPrinciples `json:"schedulingPrinciples"`
	Warnings         []string             `json:"warnings"`
}

// TotalHours sums all topic allocations.
func (a Allocation) TotalHours() float64 {
	total := 0.0
	for _, t := range a.TopicAllocations {
		total += t.Hours
	}
	return total
}
