package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/domain"
)

func newAdaptCmd(app *App) *cobra.Command {
	var updatesPath string
	var inline []string
	var week int
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "adapt <schedule-id>",
		Short: "Adapt a stored schedule to new confidence levels",
		Example: `  studyplanner adapt 0f8c2a4e-... --week 2 --update "Mathematics/Derivatives=4:2"
  studyplanner adapt 0f8c2a4e-... --week 2 --updates updates.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var updates []domain.ConfidenceUpdate
			if updatesPath != "" {
				if err := readInput(updatesPath, cmd.InOrStdin(), &updates); err != nil {
					return err
				}
			}
			for _, raw := range inline {
				u, err := parseUpdate(raw, week)
				if err != nil {
					return err
				}
				updates = append(updates, u)
			}
			for i := range updates {
				if updates[i].WeekNumber == 0 {
					updates[i].WeekNumber = week
				}
			}
			if updates == nil {
				updates = []domain.ConfidenceUpdate{}
			}

			stop := app.spinner(cmd.ErrOrStderr(), "Adapting schedule")
			adapted, err := app.Planner.Adapt(cmd.Context(), contract.NewAdaptRequest(args[0], updates, week))
			stop()
			if err != nil {
				return err
			}

			return out.write(cmd.OutOrStdout(), adapted, func() string {
				return formatter.FormatAdaptation(adapted, app.now())
			})
		},
	}

	cmd.Flags().StringVar(&updatesPath, "updates", "", "YAML or JSON list of confidence updates, - for stdin")
	cmd.Flags().StringArrayVar(&inline, "update", nil, `Confidence change as "Subject/Topic=old:new" (repeatable)`)
	cmd.Flags().IntVar(&week, "week", 0, "Current week number (1-based)")
	_ = cmd.MarkFlagRequired("week")
	out.bind(cmd.Flags())

	return cmd
}

// parseUpdate reads "Subject/Topic=old:new".
func parseUpdate(raw string, week int) (domain.ConfidenceUpdate, error) {
	invalid := fmt.Errorf("invalid update %q: want Subject/Topic=old:new", raw)

	name, levels, ok := strings.Cut(raw, "=")
	if !ok {
		return domain.ConfidenceUpdate{}, invalid
	}
	subject, topic, ok := strings.Cut(name, "/")
	if !ok || strings.TrimSpace(subject) == "" || strings.TrimSpace(topic) == "" {
		return domain.ConfidenceUpdate{}, invalid
	}
	oldStr, newStr, ok := strings.Cut(levels, ":")
	if !ok {
		return domain.ConfidenceUpdate{}, invalid
	}
	oldConf, err := strconv.Atoi(strings.TrimSpace(oldStr))
	if err != nil {
		return domain.ConfidenceUpdate{}, invalid
	}
	newConf, err := strconv.Atoi(strings.TrimSpace(newStr))
	if err != nil {
		return domain.ConfidenceUpdate{}, invalid
	}

	return domain.ConfidenceUpdate{
		SubjectName:   strings.TrimSpace(subject),
		TopicName:     strings.TrimSpace(topic),
		OldConfidence: oldConf,
		NewConfidence: newConf,
		WeekNumber:    week,
	}, nil
}
