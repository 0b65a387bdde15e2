package testutil

// Canned model replies for a single "Mathematics" subject with topics
// Limits (t01) and Derivatives (t02), in pipeline call order.
const (
	AnalysisJSON = `{"result": {"topics": [
	  {"topicId": "t01", "topic": "Limits", "subject": "Mathematics", "dependency_score": 0.9, "cognitive_load": "medium", "difficulty_score": 0.4, "prerequisites": [], "dependents": ["t02"]},
	  {"topicId": "t02", "topic": "Derivatives", "subject": "Mathematics", "dependency_score": 0.3, "cognitive_load": "high", "difficulty_score": 0.8, "prerequisites": ["t01"], "dependents": []}
	]}}`
	PriorityJSON = `{"result": {"priorities": [
	  {"topicId": "t01", "priorityScore": 0.7},
	  {"topicId": "t02", "priorityScore": 0.9}
	]}}`
	AllocationJSON = `{"result": {
	  "topicAllocations": [{"topicId": "t01", "hours": 6}, {"topicId": "t02", "hours": 8}],
	  "studyOrder": [{"position": 1, "topicId": "t01"}, {"position": 2, "topicId": "t02"}],
	  "schedulingPrinciples": {},
	  "warnings": []
	}}`
	AdaptationJSON = `{"result": {
	  "confidenceAnalysis": "Derivatives is slipping",
	  "adaptations": [{"topicId": "t02", "changeType": "time_increased", "newHours": 10, "reasoning": "More practice"}],
	  "prerequisiteWarnings": [],
	  "rebalancingStrategy": "Shift time towards derivatives"
	}}`
)

// GenerationReplies returns the three replies a generate call consumes.
func GenerationReplies() []string {
	return []string{AnalysisJSON, PriorityJSON, AllocationJSON}
}
