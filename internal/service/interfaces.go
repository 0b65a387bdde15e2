package service

import (
	"context"

	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/intelligence"
	"github.com/alexanderramin/studyplanner/internal/repository"
)

// PlannerService is the inbound boundary for schedule generation and
// adaptation. Errors are *contract.PlanError.
type PlannerService interface {
	Generate(ctx context.Context, req contract.GenerateRequest) (*domain.StudySchedule, error)
	Adapt(ctx context.Context, req contract.AdaptRequest) (*domain.AdaptedSchedule, error)
	Get(ctx context.Context, id string) (*domain.StudySchedule, error)
	GetVersion(ctx context.Context, id string, version int) (*domain.StudySchedule, error)
	Versions(ctx context.Context, id string) ([]repository.ScheduleVersion, error)
}

// Engine runs the model-backed pipeline.
type Engine interface {
	Generate(ctx context.Context, in intelligence.GenerateInput) (*domain.StudySchedule, error)
	AdaptSchedule(ctx context.Context, in intelligence.AdaptInput) (*domain.AdaptedSchedule, error)
}

var _ Engine = (*intelligence.Engine)(nil)
