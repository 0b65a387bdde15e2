package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// FormatAdaptation renders the confidence changes, the resulting per-topic
// insights and the updated schedule.
func FormatAdaptation(a *domain.AdaptedSchedule, now time.Time) string {
	var b strings.Builder

	b.WriteString(Header("Adaptation"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s → %s\n",
		StylePurple.Render(fmt.Sprintf("v%d", a.OriginalSchedule.Version)),
		StylePurple.Render(fmt.Sprintf("v%d", a.UpdatedSchedule.Version)))

	if len(a.ConfidenceUpdates) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(a.ConfidenceUpdates))
		for _, u := range a.ConfidenceUpdates {
			direction := StyleGreen.Render(string(u.Direction()))
			if u.Direction() == domain.DirectionDeclined {
				direction = StyleRed.Render(string(u.Direction()))
			}
			rows = append(rows, []string{
				Bold(u.SubjectName + " / " + u.TopicName),
				fmt.Sprintf("%d → %d", u.OldConfidence, u.NewConfidence),
				direction,
				fmt.Sprintf("%d", u.WeekNumber),
			})
		}
		b.WriteString(RenderTable([]string{"TOPIC", "CONFIDENCE", "CHANGE", "WEEK"}, rows))
	}

	if len(a.AdaptationInsights) > 0 {
		b.WriteString("\n" + Header("Changes") + "\n")
		rows := make([][]string, 0, len(a.AdaptationInsights))
		for _, in := range a.AdaptationInsights {
			rows = append(rows, []string{
				Bold(in.TopicRef.String()),
				ChangeIndicator(in.ChangeType),
				FormatHours(in.OldHours) + " → " + FormatHours(in.NewHours),
				Dim(in.Reasoning),
			})
		}
		b.WriteString(RenderTable([]string{"TOPIC", "CHANGE", "HOURS", "WHY"}, rows))
	}

	for _, w := range a.PrerequisiteWarnings {
		b.WriteString(StyleYellow.Render("! ") + w + "\n")
	}

	if r := labelled([][2]string{
		{"Confidence", a.AIReasoning.ConfidenceAnalysis},
		{"Rebalancing", a.AIReasoning.RebalancingLogic},
		{"Time reallocation", a.AIReasoning.TimeReallocationDecisions},
	}); r != "" {
		b.WriteString("\n" + RenderBox("Reasoning", r) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(FormatSchedule(&a.UpdatedSchedule, now))
	return b.String()
}
