package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// ScheduleVersion summarises one stored version without its payload.
type ScheduleVersion struct {
	ScheduleID string    `json:"scheduleId"`
	Version    int       `json:"version"`
	TargetDate string    `json:"targetDate"`
	Model      string    `json:"model,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AdaptationRecord links two versions of a schedule to the confidence
// updates that produced the later one.
type AdaptationRecord struct {
	ID          string
	ScheduleID  string
	FromVersion int
	ToVersion   int
	CurrentWeek int
	Updates     []domain.ConfidenceUpdate
	Insights    []domain.AdaptationInsight
	CreatedAt   time.Time
}

type ScheduleRepo interface {
	Save(ctx context.Context, s *domain.StudySchedule, model string) error
	Latest(ctx context.Context, id string) (*domain.StudySchedule, error)
	GetVersion(ctx context.Context, id string, version int) (*domain.StudySchedule, error)
	ListVersions(ctx context.Context, id string) ([]ScheduleVersion, error)
}

type AdaptationRepo interface {
	Create(ctx context.Context, rec *AdaptationRecord) error
	ListBySchedule(ctx context.Context, scheduleID string) ([]AdaptationRecord, error)
}
