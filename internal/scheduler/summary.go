package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// subjectAnalyses groups allocations by subject. Subjects follow input order;
// allocations naming an unknown subject follow in first-appearance order.
func subjectAnalyses(in Input, loads map[string]domain.LoadLevel) []domain.SubjectAnalysis {
	priorities := make(map[string]float64, len(in.Priorities))
	for _, p := range in.Priorities {
		priorities[p.Key()] = p.Score
	}

	var order []string
	names := make(map[string]string)
	addSubject := func(name string) string {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := names[key]; !ok {
			names[key] = name
			order = append(order, key)
		}
		return key
	}
	for _, s := range in.Subjects {
		addSubject(s.Name)
	}

	grouped := make(map[string][]domain.TopicAllocation)
	for _, a := range in.Allocation.TopicAllocations {
		key := addSubject(a.SubjectName)
		grouped[key] = append(grouped[key], a)
	}

	var out []domain.SubjectAnalysis
	for _, key := range order {
		allocs := grouped[key]
		if len(allocs) == 0 {
			continue
		}
		sa := domain.SubjectAnalysis{SubjectName: names[key]}
		var scoreSum float64
		var scored int
		for _, a := range allocs {
			load, ok := loads[a.Key()]
			if !ok {
				load = domain.LoadMedium
			}
			sa.TotalHoursAllocated += a.Hours
			sa.TopicBreakdown = append(sa.TopicBreakdown, domain.TopicBreakdown{
				TopicID:        a.TopicID,
				TopicName:      a.TopicName,
				HoursAllocated: a.Hours,
				CognitiveLoad:  load,
			})
			if s, ok := priorities[a.Key()]; ok {
				scoreSum += s
				scored++
			}
		}
		if scored > 0 {
			sa.PriorityScore = scoreSum / float64(scored)
		}
		sa.Reasoning = fmt.Sprintf("%d topics, %.2f hours allocated, mean priority %.2f",
			len(allocs), sa.TotalHoursAllocated, sa.PriorityScore)
		out = append(out, sa)
	}
	return out
}

// nextSevenDaysFocus lists the topics scheduled in the seven days starting at
// from, in order of first appearance.
func nextSevenDaysFocus(in Input, weeks []domain.WeeklySchedule, from time.Time) []domain.FocusItem {
	firstDate := make(map[string]string)
	refs := make(map[string]domain.TopicRef)
	for _, w := range weeks {
		for _, s := range w.Slots {
			if _, ok := firstDate[s.Key()]; !ok {
				firstDate[s.Key()] = s.Date
			}
		}
	}
	for _, a := range in.Allocation.TopicAllocations {
		refs[a.Key()] = a.TopicRef
	}

	reasons := make(map[string]string)
	for _, e := range in.Allocation.StudyOrder {
		reasons[e.Key()] = domain.CoalesceStr(e.Reasoning, fmt.Sprintf("Study order position %d", e.Position))
	}
	deps := make(map[string]domain.TopicDependency)
	for _, d := range in.Dependencies {
		deps[d.Key()] = d
	}

	windowEnd := formatDate(from.AddDate(0, 0, 7))
	windowStart := formatDate(from)
	seen := make(map[string]bool)
	out := []domain.FocusItem{}
	for _, w := range weeks {
		for _, s := range w.Slots {
			if s.Date < windowStart || s.Date >= windowEnd || seen[s.Key()] {
				continue
			}
			seen[s.Key()] = true
			item := domain.FocusItem{
				TopicRef:  s.TopicRef,
				StartDate: s.Date,
				Reasoning: domain.CoalesceStr(reasons[s.Key()], "Scheduled in the coming week"),
			}
			for _, pre := range deps[s.Key()].PrerequisiteIDs {
				name := pre
				if ref, ok := refs[pre]; ok {
					name = ref.TopicName
				}
				date, scheduled := firstDate[pre]
				switch {
				case !scheduled:
					item.PrerequisiteWarnings = append(item.PrerequisiteWarnings,
						fmt.Sprintf("Prerequisite %s is not scheduled", name))
				case date > s.Date:
					item.PrerequisiteWarnings = append(item.PrerequisiteWarnings,
						fmt.Sprintf("Prerequisite %s is scheduled later, on %s", name, date))
				}
			}
			out = append(out, item)
		}
	}
	return out
}
