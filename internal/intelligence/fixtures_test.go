package intelligence

import (
	"testing"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/testutil"
)

const analysisResponseJSON = `{"result": {"topics": [
  {"topicId": "t01", "topic": "Limits", "subject": "Mathematics", "dependency_score": 0.9, "cognitive_load": "Medium", "difficulty_score": 0.4, "prerequisites": [], "dependents": ["t02"]},
  {"topicId": "t02", "topic": "Derivatives", "subject": "Mathematics", "dependency_score": 0.3, "cognitive_load": "HIGH", "difficulty_score": 0.8, "prerequisites": ["Limits", "Quantum Gravity"], "dependents": []}
]}}`

const priorityResponseJSON = `{"result": {"priorities": [
  {"topicId": "t01", "topicName": "Limits", "subjectName": "Mathematics", "priorityScore": 0.7},
  {"topicId": "t02", "topicName": "Derivatives", "subjectName": "Mathematics", "priorityScore": 1.4, "factors": {"creditsWeight": 0.5}}
]}}`

const allocationResponseJSON = "Here is the allocation:\n```json\n" + `{"result": {
  "topicAllocations": [
    {"topicId": "t01", "topicName": "Limits", "subjectName": "Mathematics", "hours": 6},
    {"topicId": "t02", "topicName": "Derivatives", "subjectName": "Mathematics", "hours": "8"}
  ],
  "studyOrder": [
    {"position": 1, "topicId": "t01", "topicName": "Limits", "subjectName": "Mathematics"},
    {"position": 2, "topicId": "t02", "topicName": "Derivatives", "subjectName": "Mathematics"},
  ],
  "schedulingPrinciples": {"highLoadPlacement": "Mornings for derivatives"},
  "warnings": ["Tight timeline"]
}}` + "\n```"

func mathSubjects() []domain.Subject {
	return []domain.Subject{testutil.NewTestSubject("Mathematics", "Limits", "Derivatives")}
}

func newTestEngine(t *testing.T, gen *testutil.StubGenerator) *Engine {
	t.Helper()
	return NewEngine(testutil.NewStubClient(gen), nil).WithClock(testutil.FixedClock(testutil.TestNow))
}

func generateInput() GenerateInput {
	return GenerateInput{
		Profile:    testutil.NewTestProfile(testutil.WithHours(2, 4)),
		Subjects:   mathSubjects(),
		TargetDate: testutil.DateAfter(testutil.TestNow, 14),
	}
}
