package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/alexanderramin/studyplanner/internal/domain"
)

func newShowCmd(app *App) *cobra.Command {
	var version int
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "show <schedule-id>",
		Short: "Show a stored schedule, latest version unless --version is set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				schedule *domain.StudySchedule
				err      error
			)
			if cmd.Flags().Changed("version") {
				schedule, err = app.Planner.GetVersion(cmd.Context(), args[0], version)
			} else {
				schedule, err = app.Planner.Get(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			return out.write(cmd.OutOrStdout(), schedule, func() string {
				return formatter.FormatSchedule(schedule, app.now())
			})
		},
	}

	cmd.Flags().IntVar(&version, "version", 0, "Show a specific version")
	out.bind(cmd.Flags())

	return cmd
}

func newVersionsCmd(app *App) *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "versions <schedule-id>",
		Short: "List stored versions of a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			versions, err := app.Planner.Versions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return out.write(cmd.OutOrStdout(), versions, func() string {
				return formatter.FormatVersions(versions)
			})
		},
	}

	out.bind(cmd.Flags())
	return cmd
}
