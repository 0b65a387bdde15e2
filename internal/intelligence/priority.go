package intelligence

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/llm"
)

const priorityReasoning = "Scored by the AI from credits, confidence, difficulty, urgency and dependency signals"

type PriorityInput struct {
	Subjects       []domain.Subject
	Dependencies   []domain.TopicDependency
	CognitiveLoads []domain.CognitiveLoad
	TargetDate     string
	Profile        domain.StudentProfile
	Metrics        TimeMetrics
}

type PriorityResult struct {
	Priorities []domain.TopicPriority
	Reasoning  string
	Warnings   []string
}

type priorityEntry struct {
	TopicID       string    `json:"topicId"`
	TopicName     string    `json:"topicName"`
	SubjectName   string    `json:"subjectName"`
	PriorityScore flexFloat `json:"priorityScore"`
	Factors       struct {
		Credits     flexFloat `json:"creditsWeight"`
		Confidence  flexFloat `json:"confidenceWeight"`
		Difficulty  flexFloat `json:"difficultyWeight"`
		TimeUrgency flexFloat `json:"timeUrgencyWeight"`
		Dependency  flexFloat `json:"dependencyWeight"`
	} `json:"factors"`
}

// CalculatePriorities scores every topic in [0,1]. Topics the model skips get
// a neutral 0.5 and a warning.
func (e *Engine) CalculatePriorities(ctx context.Context, in PriorityInput) (*PriorityResult, error) {
	prompt := BuildPriorityPrompt(PriorityPromptInput(in))
	raw, err := e.client.Structured(ctx, llm.TaskPriority, prompt, prioritySchema)
	if err != nil {
		return nil, fmt.Errorf("priority stage: %w", err)
	}
	entries, err := decodeList[priorityEntry](raw, "priorities")
	if err != nil {
		return nil, fmt.Errorf("priority stage: %w", err)
	}

	ix := NewTopicIndex(in.Subjects)
	res, matched := mapPriorities(ix, entries, e.logger)
	if matched == 0 {
		return nil, fmt.Errorf("priority stage: %w", errNoMatches("priorities"))
	}
	res.Reasoning = priorityDecisions(res.Priorities)
	return res, nil
}

func mapPriorities(ix *TopicIndex, entries []priorityEntry, logger *zap.Logger) (*PriorityResult, int) {
	byKey := make(map[string]domain.TopicPriority)
	for _, en := range entries {
		ref, ok := ix.Resolve(en.TopicID, en.SubjectName, en.TopicName)
		if !ok {
			logger.Warn("dropping unresolved priority entry",
				zap.String("topic_id", en.TopicID), zap.String("topic", en.TopicName))
			continue
		}
		if _, dup := byKey[ref.Key()]; dup {
			continue
		}
		byKey[ref.Key()] = domain.TopicPriority{
			TopicRef: ref,
			Score:    domain.Clamp(en.PriorityScore.Or(0.5), 0, 1),
			Factors: domain.PriorityFactors{
				Credits:     domain.Clamp(en.Factors.Credits.Or(0), 0, 1),
				Confidence:  domain.Clamp(en.Factors.Confidence.Or(0), 0, 1),
				Difficulty:  domain.Clamp(en.Factors.Difficulty.Or(0), 0, 1),
				TimeUrgency: domain.Clamp(en.Factors.TimeUrgency.Or(0), 0, 1),
				Dependency:  domain.Clamp(en.Factors.Dependency.Or(0), 0, 1),
			},
			Reasoning: priorityReasoning,
		}
	}

	res := &PriorityResult{}
	for _, ref := range ix.Refs() {
		p, ok := byKey[ref.Key()]
		if !ok {
			p = domain.TopicPriority{TopicRef: ref, Score: 0.5, Reasoning: "No score returned; neutral priority assumed"}
			res.Warnings = append(res.Warnings, fmt.Sprintf("No priority returned for %s; assumed 0.5", ref))
		}
		res.Priorities = append(res.Priorities, p)
	}
	return res, len(byKey)
}

// priorityDecisions summarises the highest-scored topics.
func priorityDecisions(prios []domain.TopicPriority) string {
	if len(prios) == 0 {
		return "No topics to prioritise"
	}
	ranked := make([]domain.TopicPriority, len(prios))
	copy(ranked, prios)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	n := min(3, len(ranked))
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%s (%.2f)", ranked[i].TopicName, ranked[i].Score)
	}
	return "Highest priorities: " + strings.Join(parts, ", ")
}
