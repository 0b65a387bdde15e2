package intelligence

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/llm"
	"github.com/alexanderramin/studyplanner/internal/scheduler"
)

// DefaultRebalancingLogic is used when the model gives no strategy.
const DefaultRebalancingLogic = "AI adjusted schedule based on confidence changes"

type AdaptInput struct {
	Schedule    domain.StudySchedule
	Updates     []domain.ConfidenceUpdate
	CurrentWeek int
}

type adaptationResponse struct {
	ConfidenceAnalysis string `json:"confidenceAnalysis"`
	Adaptations        []struct {
		TopicID     string    `json:"topicId"`
		TopicName   string    `json:"topicName"`
		SubjectName string    `json:"subjectName"`
		ChangeType  string    `json:"changeType"`
		OldHours    flexFloat `json:"oldHours"`
		NewHours    flexFloat `json:"newHours"`
		Reasoning   string    `json:"reasoning"`
	} `json:"adaptations"`
	PrerequisiteWarnings []string `json:"prerequisiteWarnings"`
	RebalancingStrategy  string   `json:"rebalancingStrategy"`
}

// AdaptSchedule asks the model how confidence changes should move time
// between topics and returns the original schedule with its successor. The
// successor's version is always the input version plus one.
func (e *Engine) AdaptSchedule(ctx context.Context, in AdaptInput) (*domain.AdaptedSchedule, error) {
	current := in.Schedule
	ix := scheduleIndex(current)

	updates := make([]domain.ConfidenceUpdate, len(in.Updates))
	for i, u := range in.Updates {
		if ref, ok := ix.Resolve(u.TopicID, u.SubjectName, u.TopicName); ok {
			u.TopicID = ref.TopicID
		}
		updates[i] = u
	}

	prompt := BuildAdaptationPrompt(AdaptationPromptInput{
		Allocations: current.TopicAllocations,
		Updates:     updates,
		CurrentWeek: in.CurrentWeek,
	})
	resp, err := llm.CallStructured[adaptationResponse](ctx, e.client, llm.TaskAdaptation, prompt, "")
	if err != nil {
		return nil, fmt.Errorf("adaptation stage: %w", err)
	}

	insights := mapInsights(ix, resp, current.TopicAllocations, e.logger)
	updated := e.successor(current, insights, in.CurrentWeek)

	return &domain.AdaptedSchedule{
		OriginalSchedule:     current,
		UpdatedSchedule:      updated,
		ConfidenceUpdates:    updates,
		AdaptationInsights:   insights,
		PrerequisiteWarnings: nonEmpty(resp.PrerequisiteWarnings),
		AIReasoning: domain.AdaptationReasoning{
			ConfidenceAnalysis:        domain.CoalesceStr(strings.TrimSpace(resp.ConfidenceAnalysis), summarizeUpdates(updates)),
			RebalancingLogic:          domain.CoalesceStr(strings.TrimSpace(resp.RebalancingStrategy), DefaultRebalancingLogic),
			TimeReallocationDecisions: summarizeInsights(insights),
		},
	}, nil
}

func scheduleIndex(s domain.StudySchedule) *TopicIndex {
	if len(s.Subjects) > 0 {
		return NewTopicIndex(s.Subjects)
	}
	refs := make([]domain.TopicRef, 0, len(s.TopicAllocations))
	for _, a := range s.TopicAllocations {
		refs = append(refs, a.TopicRef)
	}
	return IndexFromRefs(refs)
}

func mapInsights(ix *TopicIndex, resp adaptationResponse, allocs []domain.TopicAllocation, logger *zap.Logger) []domain.AdaptationInsight {
	current := make(map[string]float64, len(allocs))
	for _, a := range allocs {
		current[a.Key()] = a.Hours
	}

	insights := []domain.AdaptationInsight{}
	seen := make(map[string]bool)
	for _, a := range resp.Adaptations {
		ref, ok := ix.Resolve(a.TopicID, a.SubjectName, a.TopicName)
		if !ok {
			logger.Warn("dropping unresolved adaptation entry",
				zap.String("topic_id", a.TopicID), zap.String("topic", a.TopicName))
			continue
		}
		if seen[ref.Key()] {
			continue
		}
		seen[ref.Key()] = true

		oldHours, known := current[ref.Key()]
		if !known {
			oldHours = math.Max(0, a.OldHours.Or(0))
		}
		newHours := math.Max(0, a.NewHours.Or(oldHours))
		insights = append(insights, domain.AdaptationInsight{
			TopicRef:   ref,
			ChangeType: parseChangeType(a.ChangeType, oldHours, newHours),
			OldHours:   oldHours,
			NewHours:   newHours,
			Reasoning:  a.Reasoning,
		})
	}
	return insights
}

func parseChangeType(s string, oldHours, newHours float64) domain.ChangeType {
	switch ct := domain.ChangeType(strings.ToLower(strings.TrimSpace(s))); ct {
	case domain.ChangeTimeIncreased, domain.ChangeTimeDecreased, domain.ChangePriorityAdjusted, domain.ChangeReordered:
		return ct
	}
	switch {
	case newHours > oldHours:
		return domain.ChangeTimeIncreased
	case newHours < oldHours:
		return domain.ChangeTimeDecreased
	default:
		return domain.ChangePriorityAdjusted
	}
}

// successor returns a copy of s with version+1. When s carries its build
// context the calendar is re-packed from currentWeek with the new hours.
func (e *Engine) successor(s domain.StudySchedule, insights []domain.AdaptationInsight, currentWeek int) domain.StudySchedule {
	next := s
	next.Version = s.Version + 1
	if !s.Rebuildable() {
		return next
	}
	target, err := scheduler.ParseDate(s.TargetDate)
	if err != nil {
		e.logger.Warn("schedule target date unreadable, skipping rebuild", zap.String("target_date", s.TargetDate))
		return next
	}

	alloc := applyInsights(domain.Allocation{
		TopicAllocations: s.TopicAllocations,
		StudyOrder:       s.StudyOrder,
		Principles:       s.SchedulingPrinciples,
	}, insights)

	now := e.now().UTC()
	res := scheduler.Rebuild(scheduler.Input{
		Subjects:       s.Subjects,
		Allocation:     alloc,
		CognitiveLoads: s.CognitiveLoads,
		Priorities:     s.Priorities,
		Dependencies:   s.Dependencies,
		Profile:        *s.Profile,
		TargetDate:     target,
		Today:          now,
	}, s.WeeklySchedules, currentWeek)

	next.WeeklySchedules = res.WeeklySchedules
	next.SubjectAnalyses = res.SubjectAnalyses
	next.NextSevenDaysFocus = res.NextSevenDaysFocus
	next.EstimatedCompletionDate = res.EstimatedCompletionDate
	next.TopicAllocations = alloc.TopicAllocations
	next.StudyOrder = alloc.StudyOrder
	next.GeneratedAt = &now

	next.Warnings = nil
	for _, w := range s.Warnings {
		if !strings.HasPrefix(w, scheduler.InsufficientTimeWarning) {
			next.Warnings = append(next.Warnings, w)
		}
	}
	next.Warnings = append(next.Warnings, res.Warnings...)
	return next
}

// applyInsights sets new hours and moves reordered or re-prioritised topics
// to the front of the study order. The input slices are not modified.
func applyInsights(alloc domain.Allocation, insights []domain.AdaptationInsight) domain.Allocation {
	byKey := make(map[string]domain.AdaptationInsight, len(insights))
	for _, in := range insights {
		byKey[in.Key()] = in
	}

	out := domain.Allocation{Principles: alloc.Principles, Warnings: alloc.Warnings}
	for _, a := range alloc.TopicAllocations {
		if in, ok := byKey[a.Key()]; ok {
			a.Hours = in.NewHours
			a.Reasoning = domain.CoalesceStr(in.Reasoning, a.Reasoning)
		}
		out.TopicAllocations = append(out.TopicAllocations, a)
	}

	var front, rest []domain.StudyOrderEntry
	moved := make(map[string]bool)
	for _, in := range insights {
		if !in.ChangeType.MovesEarlier() {
			continue
		}
		for _, e := range alloc.StudyOrder {
			if e.Key() == in.Key() && !moved[e.Key()] {
				moved[e.Key()] = true
				e.Reasoning = "Moved earlier after confidence update"
				front = append(front, e)
			}
		}
	}
	for _, e := range alloc.StudyOrder {
		if !moved[e.Key()] {
			rest = append(rest, e)
		}
	}
	for i, e := range append(front, rest...) {
		e.Position = i + 1
		out.StudyOrder = append(out.StudyOrder, e)
	}
	return out
}

func summarizeUpdates(updates []domain.ConfidenceUpdate) string {
	var improved, declined int
	for _, u := range updates {
		if u.Direction() == domain.DirectionImproved {
			improved++
		} else {
			declined++
		}
	}
	return fmt.Sprintf("%d confidence updates: %d improved, %d declined", len(updates), improved, declined)
}

func summarizeInsights(insights []domain.AdaptationInsight) string {
	if len(insights) == 0 {
		return "No time reallocations"
	}
	parts := make([]string, len(insights))
	for i, in := range insights {
		parts[i] = fmt.Sprintf("%s: %.2fh → %.2fh (%s)", in.TopicName, in.OldHours, in.NewHours, in.ChangeType)
	}
	return strings.Join(parts, "; ")
}

func nonEmpty(ss []string) []string {
	var out []string
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
