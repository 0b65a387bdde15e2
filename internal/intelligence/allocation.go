package intelligence

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/llm"
)

const allocationReasoning = "Hours allocated by the AI from priority and cognitive load"

// DefaultSchedulingPrinciples fill any principle the model leaves empty.
var DefaultSchedulingPrinciples = domain.SchedulingPrinciples{
	HighLoadPlacement:        "High cognitive load topics open the day in the preferred study slot",
	DailyBalance:             "Each day mixes topics and never runs two high-load sessions back to back when a lighter topic is available",
	WeeklyStrategy:           "Topics follow the study order so prerequisites are covered before the topics that build on them",
	CognitiveLoadTransitions: "Heavy sessions are followed by lighter ones",
}

type AllocationInput struct {
	Subjects       []domain.Subject
	Priorities     []domain.TopicPriority
	Dependencies   []domain.TopicDependency
	CognitiveLoads []domain.CognitiveLoad
	Profile        domain.StudentProfile
	TargetDate     string
	Metrics        TimeMetrics
}

type allocationResponse struct {
	TopicAllocations []struct {
		TopicID     string    `json:"topicId"`
		TopicName   string    `json:"topicName"`
		SubjectName string    `json:"subjectName"`
		Hours       flexFloat `json:"hours"`
	} `json:"topicAllocations"`
	StudyOrder []struct {
		Position    flexFloat `json:"position"`
		TopicID     string    `json:"topicId"`
		TopicName   string    `json:"topicName"`
		SubjectName string    `json:"subjectName"`
	} `json:"studyOrder"`
	SchedulingPrinciples domain.SchedulingPrinciples `json:"schedulingPrinciples"`
	Warnings             []string                    `json:"warnings"`
}

// GenerateAllocation asks for hours per topic and a total study order. Every
// input topic appears exactly once in both lists of the result.
func (e *Engine) GenerateAllocation(ctx context.Context, in AllocationInput) (*domain.Allocation, error) {
	prompt := BuildAllocationPrompt(AllocationPromptInput(in))
	resp, err := llm.CallStructured[allocationResponse](ctx, e.client, llm.TaskAllocation, prompt, allocationSchema)
	if err != nil {
		return nil, fmt.Errorf("allocation stage: %w", err)
	}
	alloc, matched := mapAllocation(NewTopicIndex(in.Subjects), resp, in.Priorities, e.logger)
	if matched == 0 {
		return nil, fmt.Errorf("allocation stage: %w", errNoMatches("topicAllocations"))
	}
	return alloc, nil
}

func mapAllocation(ix *TopicIndex, resp allocationResponse, prios []domain.TopicPriority, logger *zap.Logger) (*domain.Allocation, int) {
	out := &domain.Allocation{
		TopicAllocations: []domain.TopicAllocation{},
		StudyOrder:       []domain.StudyOrderEntry{},
		Principles:       withDefaultPrinciples(resp.SchedulingPrinciples),
	}
	for _, w := range resp.Warnings {
		if w != "" {
			out.Warnings = append(out.Warnings, w)
		}
	}

	hours := make(map[string]float64)
	for _, a := range resp.TopicAllocations {
		ref, ok := ix.Resolve(a.TopicID, a.SubjectName, a.TopicName)
		if !ok {
			logger.Warn("dropping unresolved allocation entry",
				zap.String("topic_id", a.TopicID), zap.String("topic", a.TopicName))
			continue
		}
		if _, dup := hours[ref.Key()]; dup {
			continue
		}
		hours[ref.Key()] = math.Max(0, a.Hours.Or(0))
	}
	for _, ref := range ix.Refs() {
		h, ok := hours[ref.Key()]
		if !ok {
			out.Warnings = append(out.Warnings, fmt.Sprintf("No hours allocated to %s", ref))
		}
		out.TopicAllocations = append(out.TopicAllocations, domain.TopicAllocation{
			TopicRef:  ref,
			Hours:     h,
			Reasoning: allocationReasoning,
		})
	}

	type ordered struct {
		ref      domain.TopicRef
		position float64
	}
	var order []ordered
	inOrder := make(map[string]bool)
	for _, o := range resp.StudyOrder {
		ref, ok := ix.Resolve(o.TopicID, o.SubjectName, o.TopicName)
		if !ok {
			logger.Warn("dropping unresolved study order entry",
				zap.String("topic_id", o.TopicID), zap.String("topic", o.TopicName))
			continue
		}
		if inOrder[ref.Key()] {
			continue
		}
		inOrder[ref.Key()] = true
		order = append(order, ordered{ref: ref, position: o.Position.Or(math.MaxInt32)})
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].position < order[j].position })
	for _, o := range order {
		out.StudyOrder = append(out.StudyOrder, domain.StudyOrderEntry{
			Position:  len(out.StudyOrder) + 1,
			TopicRef:  o.ref,
			Reasoning: fmt.Sprintf("Position %d in the AI study order", len(out.StudyOrder)+1),
		})
	}

	for _, p := range missingByPriority(ix, inOrder, prios) {
		out.StudyOrder = append(out.StudyOrder, domain.StudyOrderEntry{
			Position:  len(out.StudyOrder) + 1,
			TopicRef:  p,
			Reasoning: "Appended by priority score",
		})
	}
	return out, len(hours)
}

// missingByPriority returns topics absent from the order, highest priority first.
func missingByPriority(ix *TopicIndex, inOrder map[string]bool, prios []domain.TopicPriority) []domain.TopicRef {
	score := make(map[string]float64, len(prios))
	for _, p := range prios {
		score[p.Key()] = p.Score
	}
	var missing []domain.TopicRef
	for _, ref := range ix.Refs() {
		if !inOrder[ref.Key()] {
			missing = append(missing, ref)
		}
	}
	sort.SliceStable(missing, func(i, j int) bool {
		return score[missing[i].Key()] > score[missing[j].Key()]
	})
	return missing
}

func withDefaultPrinciples(p domain.SchedulingPrinciples) domain.SchedulingPrinciples {
	d := DefaultSchedulingPrinciples
	return domain.SchedulingPrinciples{
		HighLoadPlacement:        domain.CoalesceStr(p.HighLoadPlacement, d.HighLoadPlacement),
		DailyBalance:             domain.CoalesceStr(p.DailyBalance, d.DailyBalance),
		WeeklyStrategy:           domain.CoalesceStr(p.WeeklyStrategy, d.WeeklyStrategy),
		CognitiveLoadTransitions: domain.CoalesceStr(p.CognitiveLoadTransitions, d.CognitiveLoadTransitions),
	}
}
