package contract

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/testutil"
)

func validGenerateRequest() GenerateRequest {
	profile := testutil.NewTestProfile()
	return GenerateRequest{
		Profile:    &profile,
		Subjects:   []domain.Subject{testutil.NewTestSubject("Mathematics", "Limits", "Derivatives")},
		TargetDate: testutil.DateAfter(testutil.TestNow, 14),
	}
}

func requireValidation(t *testing.T, err error) *PlanError {
	t.Helper()
	require.Error(t, err)
	pe, ok := AsPlanError(err)
	require.True(t, ok, "expected PlanError, got %T", err)
	assert.Equal(t, ErrCodeValidation, pe.Code)
	assert.Equal(t, http.StatusBadRequest, pe.HTTPStatus())
	return pe
}

func TestGenerateRequest_Valid(t *testing.T) {
	assert.NoError(t, validGenerateRequest().Validate(testutil.TestNow))
}

func TestGenerateRequest_MissingFields(t *testing.T) {
	pe := requireValidation(t, GenerateRequest{}.Validate(testutil.TestNow))
	assert.Equal(t, "Missing required fields: profile, subjects, targetDate", pe.Message)
}

func TestGenerateRequest_EmptySubjects(t *testing.T) {
	req := validGenerateRequest()
	req.Subjects = []domain.Subject{}

	pe := requireValidation(t, req.Validate(testutil.TestNow))
	assert.Equal(t, "At least one subject is required", pe.Message)
}

func TestGenerateRequest_Problems(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*GenerateRequest)
		want   string
	}{
		{"no hours", func(r *GenerateRequest) { r.Profile.WeekdayHours, r.Profile.WeekendHours = 0, 0 }, "must be positive"},
		{"negative hours", func(r *GenerateRequest) { r.Profile.WeekendHours = -1 }, "must not be negative"},
		{"bad preferred time", func(r *GenerateRequest) { r.Profile.PreferredTime = "dawn" }, `preferredTime "dawn"`},
		{"subject without topics", func(r *GenerateRequest) { r.Subjects[0].Topics = nil }, `subject "Mathematics": at least one topic is required`},
		{"unnamed subject", func(r *GenerateRequest) { r.Subjects[0].Name = " " }, "subjects[0]: name is required"},
		{"unnamed topic", func(r *GenerateRequest) { r.Subjects[0].Topics[1].Name = "" }, "topics[1]: name is required"},
		{"topic confidence", func(r *GenerateRequest) { r.Subjects[0].Topics[0].Confidence = 6 }, `topic "Limits": confidence 6 is outside 1..5`},
		{"subject confidence", func(r *GenerateRequest) { r.Subjects[0].Confidence = 0 }, "confidence 0 is outside 1..5"},
		{"unparseable date", func(r *GenerateRequest) { r.TargetDate = "18/03/2026" }, "is not a YYYY-MM-DD date"},
		{"date today", func(r *GenerateRequest) { r.TargetDate = "2026-03-04" }, "must be after today"},
		{"date past", func(r *GenerateRequest) { r.TargetDate = "2025-12-01" }, "must be after today"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validGenerateRequest()
			tc.mutate(&req)

			pe := requireValidation(t, req.Validate(testutil.TestNow))
			assert.Contains(t, pe.Details, tc.want)
		})
	}
}

func TestGenerateRequest_TomorrowIsValid(t *testing.T) {
	req := validGenerateRequest()
	req.TargetDate = "2026-03-05"
	assert.NoError(t, req.Validate(testutil.TestNow))
}

func TestGenerateRequest_DecodesWireShape(t *testing.T) {
	body := `{
	  "profile": {"name": "Ada", "branch": "CS", "weekdayHours": 2, "weekendHours": 4, "preferredTime": "night"},
	  "subjects": [{"name": "Mathematics", "credits": 4, "confidence": 3,
	    "topics": [{"name": "Limits", "confidence": 2, "isWeak": true}]}],
	  "targetDate": "2026-03-18"
	}`
	var req GenerateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.NoError(t, req.Validate(testutil.TestNow))
	assert.Equal(t, domain.PreferNight, req.Profile.PreferredTime)
	assert.True(t, req.Subjects[0].Topics[0].IsWeak)
}

func validAdaptRequest() AdaptRequest {
	return AdaptRequest{
		CurrentSchedule: &domain.StudySchedule{Version: 1},
		ConfidenceUpdates: []domain.ConfidenceUpdate{{
			TopicName: "Derivatives", SubjectName: "Mathematics", OldConfidence: 4, NewConfidence: 2, WeekNumber: 1,
		}},
		CurrentWeek: intPtr(1),
	}
}

func intPtr(v int) *int { return &v }

func TestAdaptRequest_Valid(t *testing.T) {
	assert.NoError(t, validAdaptRequest().Validate())

	byID := NewAdaptRequest("sched-1", validAdaptRequest().ConfidenceUpdates, 2)
	assert.NoError(t, byID.Validate())
	assert.Equal(t, 2, byID.Week())
}

func TestAdaptRequest_EmptyUpdatesRejected(t *testing.T) {
	req := validAdaptRequest()
	req.ConfidenceUpdates = []domain.ConfidenceUpdate{}

	pe := requireValidation(t, req.Validate())
	assert.Equal(t, "At least one confidence update is required", pe.Message)
}

func TestAdaptRequest_EmptyUpdatesFromJSON(t *testing.T) {
	var req AdaptRequest
	require.NoError(t, json.Unmarshal([]byte(`{"currentSchedule": {"version": 1}, "confidenceUpdates": [], "currentWeek": 1}`), &req))

	pe := requireValidation(t, req.Validate())
	assert.Equal(t, "At least one confidence update is required", pe.Message)
}

func TestAdaptRequest_MissingFields(t *testing.T) {
	pe := requireValidation(t, AdaptRequest{}.Validate())
	assert.Equal(t, "Missing required fields: currentSchedule, confidenceUpdates, currentWeek", pe.Message)
	assert.Zero(t, AdaptRequest{}.Week())
}

func TestAdaptRequest_Problems(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*AdaptRequest)
		want   string
	}{
		{"week zero", func(r *AdaptRequest) { r.CurrentWeek = intPtr(0) }, "currentWeek 0 must be at least 1"},
		{"no topic", func(r *AdaptRequest) { r.ConfidenceUpdates[0].TopicName = "" }, "topicId or topicName is required"},
		{"confidence range", func(r *AdaptRequest) { r.ConfidenceUpdates[0].NewConfidence = 9 }, "confidence 4 → 9 is outside 1..5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validAdaptRequest()
			tc.mutate(&req)

			pe := requireValidation(t, req.Validate())
			assert.Contains(t, pe.Details, tc.want)
		})
	}
}

func TestPlanError(t *testing.T) {
	cause := errors.New("analysis stage: empty or invalid response")

	gen := GenerationError(cause)
	assert.Equal(t, http.StatusInternalServerError, gen.HTTPStatus())
	assert.ErrorIs(t, gen, cause)
	assert.Equal(t, "GENERATION_FAILED: Failed to generate schedule: analysis stage: empty or invalid response", gen.Error())

	adapt := AdaptationError(cause)
	assert.Equal(t, ErrCodeAdaptation, adapt.Code)
	assert.Equal(t, "Failed to adapt schedule", adapt.Message)

	nf := NotFoundError("Schedule not found", cause)
	assert.Equal(t, http.StatusNotFound, nf.HTTPStatus())

	_, ok := AsPlanError(cause)
	assert.False(t, ok)
}
