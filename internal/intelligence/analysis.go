package intelligence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/llm"
)

// AnalysisResult holds per-topic dependency and cognitive-load estimates in
// input topic order.
type AnalysisResult struct {
	Dependencies   []domain.TopicDependency
	CognitiveLoads []domain.CognitiveLoad
	Reasoning      string
	Warnings       []string
}

type analysisEntry struct {
	TopicID         string    `json:"topicId"`
	Topic           string    `json:"topic"`
	Subject         string    `json:"subject"`
	DependencyScore flexFloat `json:"dependency_score"`
	CognitiveLoad   string    `json:"cognitive_load"`
	DifficultyScore flexFloat `json:"difficulty_score"`
	Prerequisites   []string  `json:"prerequisites"`
	Dependents      []string  `json:"dependents"`
}

// AnalyzeTopics infers dependencies and cognitive load for every topic.
// subjects must carry topic ids.
func (e *Engine) AnalyzeTopics(ctx context.Context, subjects []domain.Subject, branch string) (*AnalysisResult, error) {
	prompt := BuildAnalysisPrompt(AnalysisPromptInput{Subjects: subjects, Branch: branch})
	raw, err := e.client.Structured(ctx, llm.TaskAnalysis, prompt, analysisSchema)
	if err != nil {
		return nil, fmt.Errorf("analysis stage: %w", err)
	}
	entries, err := decodeList[analysisEntry](raw, "topics")
	if err != nil {
		return nil, fmt.Errorf("analysis stage: %w", err)
	}

	ix := NewTopicIndex(subjects)
	res, matched := mapAnalysis(ix, entries, e.logger)
	if matched == 0 {
		return nil, fmt.Errorf("analysis stage: %w", errNoMatches("topics"))
	}
	res.Reasoning = fmt.Sprintf(
		"Dependencies and cognitive load were inferred by semantic analysis of %d topics across %d subjects, without reference to any fixed curriculum.",
		ix.Len(), len(subjects))
	return res, nil
}

// mapAnalysis also returns how many input topics the entries matched.
func mapAnalysis(ix *TopicIndex, entries []analysisEntry, logger *zap.Logger) (*AnalysisResult, int) {
	deps := make(map[string]domain.TopicDependency)
	loads := make(map[string]domain.CognitiveLoad)
	res := &AnalysisResult{}

	for _, en := range entries {
		ref, ok := ix.Resolve(en.TopicID, en.Subject, en.Topic)
		if !ok {
			logger.Warn("dropping unresolved analysis entry",
				zap.String("topic_id", en.TopicID), zap.String("topic", en.Topic), zap.String("subject", en.Subject))
			continue
		}
		if _, dup := loads[ref.Key()]; dup {
			continue
		}

		level, known := domain.ParseLoadLevel(en.CognitiveLoad)
		if !known {
			logger.Warn("unknown cognitive load label, using medium",
				zap.String("topic", ref.String()), zap.String("label", en.CognitiveLoad))
		}
		loads[ref.Key()] = domain.CognitiveLoad{
			TopicRef: ref,
			Level:    level,
			Score:    domain.Clamp(en.DifficultyScore.Or(0.5), 0, 1),
		}

		dep := domain.TopicDependency{
			TopicRef:        ref,
			FoundationScore: domain.Clamp(en.DependencyScore.Or(0.5), 0, 1),
		}
		dep.Prerequisites, dep.PrerequisiteIDs = resolveMentions(ix, en.Prerequisites, ref, "prerequisite", logger)
		dep.Dependents, dep.DependentIDs = resolveMentions(ix, en.Dependents, ref, "dependent", logger)
		deps[ref.Key()] = dep
	}

	for _, ref := range ix.Refs() {
		load, ok := loads[ref.Key()]
		if !ok {
			load = domain.CognitiveLoad{TopicRef: ref, Level: domain.LoadMedium, Score: 0.5,
				Reasoning: "No estimate returned; medium load assumed"}
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("No analysis returned for %s; assumed medium cognitive load", ref))
		}
		dep, ok := deps[ref.Key()]
		if !ok {
			dep = domain.TopicDependency{TopicRef: ref, FoundationScore: 0.5,
				Prerequisites: []string{}, Dependents: []string{}}
		}
		res.CognitiveLoads = append(res.CognitiveLoads, load)
		res.Dependencies = append(res.Dependencies, dep)
	}
	return res, len(loads)
}

// resolveMentions keeps references to known topics other than self and drops
// the rest with a warning.
func resolveMentions(ix *TopicIndex, mentions []string, self domain.TopicRef, kind string, logger *zap.Logger) (names, ids []string) {
	names, ids = []string{}, []string{}
	seen := make(map[string]bool)
	for _, m := range mentions {
		ref, ok := ix.ResolveMention(m, self.SubjectName)
		if !ok {
			logger.Warn("dropping dangling topic reference",
				zap.String("topic", self.String()), zap.String("kind", kind), zap.String("reference", m))
			continue
		}
		if ref.Key() == self.Key() || seen[ref.Key()] {
			continue
		}
		seen[ref.Key()] = true
		names = append(names, ref.TopicName)
		ids = append(ids, ref.TopicID)
	}
	return names, ids
}
