package intelligence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/scheduler"
)

type GenerateInput struct {
	Profile    domain.StudentProfile
	Subjects   []domain.Subject
	TargetDate string
}

// Generate runs Analysis, Priority and Allocation in sequence, each prompt
// embedding the previous stage's output, then assembles the calendar. Any
// stage failure aborts the run.
func (e *Engine) Generate(ctx context.Context, in GenerateInput) (*domain.StudySchedule, error) {
	now := e.now().UTC()
	target, err := scheduler.ParseDate(in.TargetDate)
	if err != nil {
		return nil, err
	}
	targetDate := target.Format(domain.DateLayout)

	subjects := domain.WithTopicIDs(in.Subjects)
	metrics := ComputeTimeMetrics(now, target, in.Profile)
	e.logger.Info("generating schedule",
		zap.Int("subjects", len(subjects)),
		zap.Int("topics", domain.TopicCount(subjects)),
		zap.String("target_date", targetDate),
		zap.Int("days_remaining", metrics.DaysRemaining))

	analysis, err := e.AnalyzeTopics(ctx, subjects, in.Profile.Branch)
	if err != nil {
		return nil, err
	}

	priorities, err := e.CalculatePriorities(ctx, PriorityInput{
		Subjects:       subjects,
		Dependencies:   analysis.Dependencies,
		CognitiveLoads: analysis.CognitiveLoads,
		TargetDate:     targetDate,
		Profile:        in.Profile,
		Metrics:        metrics,
	})
	if err != nil {
		return nil, err
	}

	alloc, err := e.GenerateAllocation(ctx, AllocationInput{
		Subjects:       subjects,
		Priorities:     priorities.Priorities,
		Dependencies:   analysis.Dependencies,
		CognitiveLoads: analysis.CognitiveLoads,
		Profile:        in.Profile,
		TargetDate:     targetDate,
		Metrics:        metrics,
	})
	if err != nil {
		return nil, err
	}

	assembled := scheduler.Build(scheduler.Input{
		Subjects:       subjects,
		Allocation:     *alloc,
		CognitiveLoads: analysis.CognitiveLoads,
		Priorities:     priorities.Priorities,
		Dependencies:   analysis.Dependencies,
		Profile:        in.Profile,
		TargetDate:     target,
		Today:          now,
	})

	var warnings []string
	warnings = append(warnings, analysis.Warnings...)
	warnings = append(warnings, priorities.Warnings...)
	warnings = append(warnings, alloc.Warnings...)
	warnings = append(warnings, assembled.Warnings...)

	profile := in.Profile
	return &domain.StudySchedule{
		WeeklySchedules:    assembled.WeeklySchedules,
		SubjectAnalyses:    assembled.SubjectAnalyses,
		NextSevenDaysFocus: assembled.NextSevenDaysFocus,
		AIReasoning: domain.ScheduleReasoning{
			DependencyInferenceMethod: analysis.Reasoning,
			CognitiveLoadRationale:    loadRationale(analysis.CognitiveLoads),
			PriorityDecisions:         priorities.Reasoning,
			SchedulingLogic:           schedulingLogic(alloc, assembled),
		},
		EstimatedCompletionDate: assembled.EstimatedCompletionDate,
		Version:                 1,
		Profile:                 &profile,
		TargetDate:              targetDate,
		GeneratedAt:             &now,
		Subjects:                subjects,
		TopicAllocations:        alloc.TopicAllocations,
		StudyOrder:              alloc.StudyOrder,
		CognitiveLoads:          analysis.CognitiveLoads,
		Priorities:              priorities.Priorities,
		Dependencies:            analysis.Dependencies,
		SchedulingPrinciples:    alloc.Principles,
		Warnings:                warnings,
	}, nil
}

func loadRationale(loads []domain.CognitiveLoad) string {
	counts := make(map[domain.LoadLevel]int)
	for _, l := range loads {
		counts[l.Level]++
	}
	return fmt.Sprintf("%d high, %d medium and %d low cognitive load topics; high-load sessions are capped at %.1f hours",
		counts[domain.LoadHigh], counts[domain.LoadMedium], counts[domain.LoadLow], scheduler.SessionCap(domain.LoadHigh))
}

func schedulingLogic(alloc *domain.Allocation, res scheduler.Result) string {
	return fmt.Sprintf("%.2f allocated hours packed into %d weeks in study order. %s",
		alloc.TotalHours(), len(res.WeeklySchedules), alloc.Principles.WeeklyStrategy)
}
