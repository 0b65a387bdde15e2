package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/alexanderramin/studyplanner/internal/contract"
)

func newGenerateCmd(app *App) *cobra.Command {
	var input string
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a study schedule from a profile, subjects and a target date",
		Example: `  studyplanner generate --input plan.yaml
  cat plan.json | studyplanner generate --input - --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req contract.GenerateRequest
			if err := readInput(input, cmd.InOrStdin(), &req); err != nil {
				return err
			}

			stop := app.spinner(cmd.ErrOrStderr(), "Generating schedule")
			schedule, err := app.Planner.Generate(cmd.Context(), req)
			stop()
			if err != nil {
				return err
			}

			return out.write(cmd.OutOrStdout(), schedule, func() string {
				return formatter.FormatSchedule(schedule, app.now())
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "YAML or JSON request file, - for stdin")
	_ = cmd.MarkFlagRequired("input")
	out.bind(cmd.Flags())

	return cmd
}
