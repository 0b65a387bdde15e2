package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

const weekBarWidth = 12

// FormatSchedule renders a schedule as a terminal report: summary, subject
// breakdown, one table per week, the next seven days and the model's
// reasoning.
func FormatSchedule(s *domain.StudySchedule, now time.Time) string {
	var b strings.Builder

	b.WriteString(Header("Study schedule"))
	b.WriteString("\n")
	b.WriteString(scheduleSummary(s, now))
	b.WriteString("\n")

	if len(s.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range s.Warnings {
			b.WriteString(StyleYellow.Render("! ") + w + "\n")
		}
	}

	if len(s.SubjectAnalyses) > 0 {
		b.WriteString("\n" + Header("Subjects") + "\n")
		b.WriteString(formatSubjects(s.SubjectAnalyses))
	}

	for _, w := range s.WeeklySchedules {
		b.WriteString("\n")
		b.WriteString(formatWeek(w))
	}

	if len(s.NextSevenDaysFocus) > 0 {
		b.WriteString("\n" + Header("Next 7 days") + "\n")
		for i, f := range s.NextSevenDaysFocus {
			fmt.Fprintf(&b, "%2d. %s  %s\n", i+1, Bold(f.String()), Dim("from "+f.StartDate))
			if f.Reasoning != "" {
				b.WriteString("    " + Dim(f.Reasoning) + "\n")
			}
			for _, pw := range f.PrerequisiteWarnings {
				b.WriteString("    " + StyleYellow.Render("! "+pw) + "\n")
			}
		}
	}

	if r := formatReasoning(s.AIReasoning); r != "" {
		b.WriteString("\n" + RenderBox("Reasoning", r) + "\n")
	}
	return b.String()
}

func scheduleSummary(s *domain.StudySchedule, now time.Time) string {
	var parts []string
	if s.ScheduleID != "" {
		parts = append(parts, "Schedule "+TruncID(s.ScheduleID))
	}
	parts = append(parts, StylePurple.Render(fmt.Sprintf("v%d", s.Version)))
	if s.TargetDate != "" {
		parts = append(parts, "Target "+DateWithDistance(s.TargetDate, now))
	}
	if s.EstimatedCompletionDate != "" {
		parts = append(parts, "Done by "+s.EstimatedCompletionDate)
	}

	capacity := 0.0
	for _, w := range s.WeeklySchedules {
		capacity += w.TotalHours
	}
	line := strings.Join(parts, "  ")
	return line + "\n" + fmt.Sprintf("%s scheduled of %s available across %d weeks",
		Bold(FormatHours(s.TotalScheduledHours())), FormatHours(capacity), len(s.WeeklySchedules))
}

func formatSubjects(subjects []domain.SubjectAnalysis) string {
	headers := []string{"SUBJECT", "HOURS", "PRIORITY", "TOPICS"}
	rows := make([][]string, 0, len(subjects))
	for _, sa := range subjects {
		topics := make([]string, 0, len(sa.TopicBreakdown))
		for _, t := range sa.TopicBreakdown {
			topics = append(topics, LoadStyle(t.CognitiveLoad).Render(t.TopicName)+" "+Dim(FormatHours(t.HoursAllocated)))
		}
		rows = append(rows, []string{
			Bold(sa.SubjectName),
			FormatHours(sa.TotalHoursAllocated),
			fmt.Sprintf("%.2f", sa.PriorityScore),
			strings.Join(topics, ", "),
		})
	}
	return RenderTable(headers, rows)
}

func formatWeek(w domain.WeeklySchedule) string {
	var b strings.Builder

	title := StyleHeader.Render(fmt.Sprintf("WEEK %d", w.WeekNumber)) +
		Dim(fmt.Sprintf("  %s → %s", w.StartDate, w.EndDate))
	usage := 0.0
	if w.TotalHours > 0 {
		usage = w.ScheduledHours / w.TotalHours
	}
	fmt.Fprintf(&b, "%s  %s  %s / %s\n", title, RenderProgress(usage, weekBarWidth),
		FormatHours(w.ScheduledHours), FormatHours(w.TotalHours))

	if len(w.Slots) == 0 {
		b.WriteString(Dim("  nothing scheduled") + "\n")
		return b.String()
	}

	headers := []string{"DAY", "DATE", "SLOT", "TOPIC", "HOURS", "LOAD"}
	rows := make([][]string, 0, len(w.Slots))
	for _, slot := range w.Slots {
		rows = append(rows, []string{
			slot.Day,
			Dim(slot.Date),
			SlotLabel(slot.TimeSlot),
			slot.TopicRef.String(),
			FormatHours(slot.Duration),
			LoadBadge(slot.CognitiveLoad),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

func formatReasoning(r domain.ScheduleReasoning) string {
	return labelled([][2]string{
		{"Dependencies", r.DependencyInferenceMethod},
		{"Cognitive load", r.CognitiveLoadRationale},
		{"Priorities", r.PriorityDecisions},
		{"Scheduling", r.SchedulingLogic},
	})
}

// labelled renders non-empty label/text pairs one per paragraph.
func labelled(pairs [][2]string) string {
	var parts []string
	for _, p := range pairs {
		if strings.TrimSpace(p[1]) == "" {
			continue
		}
		parts = append(parts, Bold(p[0])+"\n"+p[1])
	}
	return strings.Join(parts, "\n\n")
}
