package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/intelligence"
	"github.com/alexanderramin/studyplanner/internal/repository"
)

type plannerService struct {
	engine    Engine
	schedules repository.ScheduleRepo
	uow       db.UnitOfWork
	model     string
	logger    *zap.Logger
	observer  UseCaseObserver
	now       func() time.Time
}

type PlannerOption func(*plannerService)

// WithStore persists every generated and adapted version. Without a store
// the planner is stateless and lookups report not found.
func WithStore(schedules repository.ScheduleRepo, uow db.UnitOfWork) PlannerOption {
	return func(s *plannerService) {
		s.schedules = schedules
		s.uow = uow
	}
}

// WithModel records the model name alongside stored versions.
func WithModel(model string) PlannerOption {
	return func(s *plannerService) { s.model = model }
}

func WithLogger(logger *zap.Logger) PlannerOption {
	return func(s *plannerService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithObserver(observer UseCaseObserver) PlannerOption {
	return func(s *plannerService) { s.observer = useCaseObserverOrNoop([]UseCaseObserver{observer}) }
}

func WithClock(now func() time.Time) PlannerOption {
	return func(s *plannerService) { s.now = now }
}

func NewPlannerService(engine Engine, opts ...PlannerOption) PlannerService {
	s := &plannerService{
		engine:   engine,
		logger:   zap.NewNop(),
		observer: NoopUseCaseObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("planner")
	return s
}

func (s *plannerService) Generate(ctx context.Context, req contract.GenerateRequest) (schedule *domain.StudySchedule, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"subjects": len(req.Subjects),
		"topics":   domain.TopicCount(req.Subjects),
	}
	defer func() { s.observe(ctx, "generate-schedule", startedAt, fields, err) }()

	if err = req.Validate(s.now()); err != nil {
		return nil, err
	}

	schedule, err = s.engine.Generate(ctx, intelligence.GenerateInput{
		Profile:    *req.Profile,
		Subjects:   req.Subjects,
		TargetDate: req.TargetDate,
	})
	if err != nil {
		err = contract.GenerationError(err)
		return nil, err
	}

	schedule.ScheduleID = uuid.New().String()
	fields["schedule_id"] = schedule.ScheduleID
	fields["weeks"] = len(schedule.WeeklySchedules)
	fields["warnings"] = len(schedule.Warnings)

	if s.schedules != nil {
		if storeErr := s.schedules.Save(ctx, schedule, s.model); storeErr != nil {
			s.logger.Warn("storing generated schedule failed",
				zap.String("schedule_id", schedule.ScheduleID), zap.Error(storeErr))
		}
	}
	return schedule, nil
}

func (s *plannerService) Adapt(ctx context.Context, req contract.AdaptRequest) (adapted *domain.AdaptedSchedule, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"updates":      len(req.ConfidenceUpdates),
		"current_week": req.Week(),
	}
	defer func() { s.observe(ctx, "adapt-schedule", startedAt, fields, err) }()

	if err = req.Validate(); err != nil {
		return nil, err
	}

	var current *domain.StudySchedule
	current, err = s.currentSchedule(ctx, req)
	if err != nil {
		return nil, err
	}
	fields["schedule_id"] = current.ScheduleID
	fields["from_version"] = current.Version

	adapted, err = s.engine.AdaptSchedule(ctx, intelligence.AdaptInput{
		Schedule:    *current,
		Updates:     req.ConfidenceUpdates,
		CurrentWeek: req.Week(),
	})
	if err != nil {
		err = contract.AdaptationError(err)
		return nil, err
	}

	adapted.AdaptationID = uuid.New().String()
	if adapted.UpdatedSchedule.ScheduleID == "" {
		adapted.UpdatedSchedule.ScheduleID = uuid.New().String()
	}
	if adapted.OriginalSchedule.ScheduleID == "" {
		adapted.OriginalSchedule.ScheduleID = adapted.UpdatedSchedule.ScheduleID
	}
	fields["to_version"] = adapted.UpdatedSchedule.Version
	fields["insights"] = len(adapted.AdaptationInsights)

	if s.schedules != nil && s.uow != nil {
		if storeErr := s.storeAdaptation(ctx, adapted, req.Week()); storeErr != nil {
			s.logger.Warn("storing adapted schedule failed",
				zap.String("schedule_id", adapted.UpdatedSchedule.ScheduleID), zap.Error(storeErr))
		}
	}
	return adapted, nil
}

func (s *plannerService) currentSchedule(ctx context.Context, req contract.AdaptRequest) (*domain.StudySchedule, error) {
	if req.CurrentSchedule != nil {
		current := *req.CurrentSchedule
		if current.ScheduleID == "" {
			current.ScheduleID = req.ScheduleID
		}
		return &current, nil
	}
	return s.Get(ctx, req.ScheduleID)
}

// storeAdaptation writes the successor version and its adaptation record in
// one transaction. An inline original that was never stored is saved first so
// the record's from_version names a stored version.
func (s *plannerService) storeAdaptation(ctx context.Context, adapted *domain.AdaptedSchedule, currentWeek int) error {
	original := adapted.OriginalSchedule
	updated := adapted.UpdatedSchedule
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSchedules := repository.NewSQLiteScheduleRepo(tx)
		txAdaptations := repository.NewSQLiteAdaptationRepo(tx)

		if original.Version >= 1 && original.ScheduleID == updated.ScheduleID {
			_, err := txSchedules.GetVersion(ctx, original.ScheduleID, original.Version)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				if err := txSchedules.Save(ctx, &original, s.model); err != nil {
					return err
				}
			case err != nil:
				return err
			}
		}
		if err := txSchedules.Save(ctx, &updated, s.model); err != nil {
			return err
		}
		return txAdaptations.Create(ctx, &repository.AdaptationRecord{
			ID:          adapted.AdaptationID,
			ScheduleID:  updated.ScheduleID,
			FromVersion: adapted.OriginalSchedule.Version,
			ToVersion:   updated.Version,
			CurrentWeek: currentWeek,
			Updates:     adapted.ConfidenceUpdates,
			Insights:    adapted.AdaptationInsights,
		})
	})
}

func (s *plannerService) Get(ctx context.Context, id string) (*domain.StudySchedule, error) {
	if s.schedules == nil {
		return nil, contract.NotFoundError("Schedule not found", repository.ErrNotFound)
	}
	schedule, err := s.schedules.Latest(ctx, id)
	return schedule, lookupError(err)
}

func (s *plannerService) GetVersion(ctx context.Context, id string, version int) (*domain.StudySchedule, error) {
	if s.schedules == nil {
		return nil, contract.NotFoundError("Schedule version not found", repository.ErrNotFound)
	}
	schedule, err := s.schedules.GetVersion(ctx, id, version)
	return schedule, lookupError(err)
}

func (s *plannerService) Versions(ctx context.Context, id string) ([]repository.ScheduleVersion, error) {
	if s.schedules == nil {
		return nil, contract.NotFoundError("Schedule not found", repository.ErrNotFound)
	}
	versions, err := s.schedules.ListVersions(ctx, id)
	return versions, lookupError(err)
}

func lookupError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return contract.NotFoundError("Schedule not found", err)
	default:
		return &contract.PlanError{Code: contract.ErrCodeGeneration, Message: "Failed to load schedule", Details: err.Error(), Err: err}
	}
}

func (s *plannerService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
