package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplanner/internal/repository"
)

// FormatVersions lists the stored versions of one schedule, newest last.
func FormatVersions(versions []repository.ScheduleVersion) string {
	if len(versions) == 0 {
		return Dim("No stored versions.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header("Versions"))
	b.WriteString("\n" + Dim("schedule ") + versions[0].ScheduleID + "\n\n")

	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		model := v.Model
		if model == "" {
			model = "--"
		}
		rows = append(rows, []string{
			StylePurple.Render(fmt.Sprintf("v%d", v.Version)),
			v.TargetDate,
			Dim(model),
			v.CreatedAt.Local().Format("Jan 2, 2006 15:04"),
		})
	}
	b.WriteString(RenderTable([]string{"VERSION", "TARGET", "MODEL", "CREATED"}, rows))
	return b.String()
}
