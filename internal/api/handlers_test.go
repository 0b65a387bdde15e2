package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/intelligence"
	"github.com/alexanderramin/studyplanner/internal/repository"
	"github.com/alexanderramin/studyplanner/internal/service"
	"github.com/alexanderramin/studyplanner/internal/testutil"
)

type fakePlanner struct {
	generate   func(contract.GenerateRequest) (*domain.StudySchedule, error)
	adapt      func(contract.AdaptRequest) (*domain.AdaptedSchedule, error)
	get        func(id string) (*domain.StudySchedule, error)
	getVersion func(id string, version int) (*domain.StudySchedule, error)
	versions   func(id string) ([]repository.ScheduleVersion, error)
}

func (f *fakePlanner) Generate(_ context.Context, req contract.GenerateRequest) (*domain.StudySchedule, error) {
	return f.generate(req)
}

func (f *fakePlanner) Adapt(_ context.Context, req contract.AdaptRequest) (*domain.AdaptedSchedule, error) {
	return f.adapt(req)
}

func (f *fakePlanner) Get(_ context.Context, id string) (*domain.StudySchedule, error) {
	return f.get(id)
}

func (f *fakePlanner) GetVersion(_ context.Context, id string, version int) (*domain.StudySchedule, error) {
	return f.getVersion(id, version)
}

func (f *fakePlanner) Versions(_ context.Context, id string) ([]repository.ScheduleVersion, error) {
	return f.versions(id)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	r := NewRouter(&fakePlanner{}, nil)

	w := do(t, r, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestGenerate_EndToEnd(t *testing.T) {
	gen := testutil.NewStubGenerator(testutil.GenerationReplies()...)
	engine := intelligence.NewEngine(testutil.NewStubClient(gen), nil).WithClock(testutil.FixedClock(testutil.TestNow))
	planner := service.NewPlannerService(engine, service.WithClock(testutil.FixedClock(testutil.TestNow)))
	r := NewRouter(planner, nil)

	profile := testutil.NewTestProfile()
	w := do(t, r, http.MethodPost, "/api/schedule/generate", contract.GenerateRequest{
		Profile:    &profile,
		Subjects:   []domain.Subject{testutil.NewTestSubject("Mathematics", "Limits", "Derivatives")},
		TargetDate: testutil.DateAfter(testutil.TestNow, 14),
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Success  bool                 `json:"success"`
		Schedule domain.StudySchedule `json:"schedule"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Schedule.Version)
	assert.Len(t, resp.Schedule.WeeklySchedules, 2)
	assert.NotEmpty(t, resp.Schedule.ScheduleID)
	assert.Equal(t, 3, gen.Calls())
}

func TestGenerate_MissingFieldsIs400(t *testing.T) {
	gen := testutil.NewStubGenerator()
	engine := intelligence.NewEngine(testutil.NewStubClient(gen), nil)
	r := NewRouter(service.NewPlannerService(engine), nil)

	w := do(t, r, http.MethodPost, "/api/schedule/generate", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields: profile, subjects, targetDate", decode(t, w)["error"])
	assert.Zero(t, gen.Calls())
}

func TestGenerate_MalformedBodyIs400(t *testing.T) {
	r := NewRouter(&fakePlanner{}, nil)

	w := do(t, r, http.MethodPost, "/api/schedule/generate", `{"profile": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decode(t, w)["error"])
}

func TestGenerate_PipelineFailureIs500(t *testing.T) {
	r := NewRouter(&fakePlanner{
		generate: func(contract.GenerateRequest) (*domain.StudySchedule, error) {
			return nil, contract.GenerationError(errors.New("model returned no text"))
		},
	}, nil)

	w := do(t, r, http.MethodPost, "/api/schedule/generate", `{}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Failed to generate schedule", body["error"])
	assert.Equal(t, "model returned no text", body["details"])
}

func TestAdapt_ReturnsAdaptedSchedule(t *testing.T) {
	var got contract.AdaptRequest
	r := NewRouter(&fakePlanner{
		adapt: func(req contract.AdaptRequest) (*domain.AdaptedSchedule, error) {
			got = req
			return &domain.AdaptedSchedule{
				AdaptationID:    "a-1",
				UpdatedSchedule: domain.StudySchedule{ScheduleID: "s-1", Version: 2},
			}, nil
		},
	}, nil)

	w := do(t, r, http.MethodPost, "/api/schedule/adapt", `{
	  "scheduleId": "s-1",
	  "currentWeek": 1,
	  "confidenceUpdates": [{"topicName": "Derivatives", "subjectName": "Mathematics", "oldConfidence": 4, "newConfidence": 2, "weekNumber": 1}]
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "s-1", got.ScheduleID)
	assert.Equal(t, 1, got.Week())
	require.Len(t, got.ConfidenceUpdates, 1)
	assert.Equal(t, 2, got.ConfidenceUpdates[0].NewConfidence)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	adapted := body["adaptedSchedule"].(map[string]any)
	assert.Equal(t, "a-1", adapted["adaptationId"])
	assert.EqualValues(t, 2, adapted["updatedSchedule"].(map[string]any)["version"])
}

func TestAdapt_EmptyUpdatesIs400(t *testing.T) {
	gen := testutil.NewStubGenerator()
	engine := intelligence.NewEngine(testutil.NewStubClient(gen), nil)
	r := NewRouter(service.NewPlannerService(engine), nil)

	w := do(t, r, http.MethodPost, "/api/schedule/adapt", `{"scheduleId": "s-1", "currentWeek": 1, "confidenceUpdates": []}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "At least one confidence update is required", decode(t, w)["error"])
	assert.Zero(t, gen.Calls())
}

func TestGetSchedule_NotFoundIs404(t *testing.T) {
	r := NewRouter(&fakePlanner{
		get: func(id string) (*domain.StudySchedule, error) {
			return nil, contract.NotFoundError("Schedule not found", repository.ErrNotFound)
		},
	}, nil)

	w := do(t, r, http.MethodGet, "/api/schedules/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Schedule not found", decode(t, w)["error"])
}

func TestGetVersion(t *testing.T) {
	r := NewRouter(&fakePlanner{
		getVersion: func(id string, version int) (*domain.StudySchedule, error) {
			return &domain.StudySchedule{ScheduleID: id, Version: version}, nil
		},
	}, nil)

	w := do(t, r, http.MethodGet, "/api/schedules/s-1/versions/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	schedule := decode(t, w)["schedule"].(map[string]any)
	assert.Equal(t, "s-1", schedule["scheduleId"])
	assert.EqualValues(t, 3, schedule["version"])

	w = do(t, r, http.MethodGet, "/api/schedules/s-1/versions/zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListVersions(t *testing.T) {
	created := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	r := NewRouter(&fakePlanner{
		versions: func(id string) ([]repository.ScheduleVersion, error) {
			return []repository.ScheduleVersion{
				{ScheduleID: id, Version: 1, TargetDate: "2026-03-18", CreatedAt: created},
				{ScheduleID: id, Version: 2, TargetDate: "2026-03-18", CreatedAt: created},
			}, nil
		},
	}, nil)

	w := do(t, r, http.MethodGet, "/api/schedules/s-1/versions", nil)

	require.Equal(t, http.StatusOK, w.Code)
	versions := decode(t, w)["versions"].([]any)
	require.Len(t, versions, 2)
	assert.EqualValues(t, 2, versions[1].(map[string]any)["version"])
}

func TestUnclassifiedErrorIs500(t *testing.T) {
	r := NewRouter(&fakePlanner{
		get: func(string) (*domain.StudySchedule, error) { return nil, errors.New("boom") },
	}, nil)

	w := do(t, r, http.MethodGet, "/api/schedules/s-1", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "boom", decode(t, w)["details"])
}
