package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/alexanderramin/studyplanner/internal/service"
)

// App holds what CLI commands need to run.
type App struct {
	Planner service.PlannerService
	Logger  *zap.Logger

	// Addr is the default listen address for serve.
	Addr string

	// Now is the clock used when rendering relative dates.
	Now func() time.Time

	// IsInteractive reports whether progress spinners may be drawn.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "studyplanner" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studyplanner",
		Short:         "AI study schedule generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newAdaptCmd(app),
		newShowCmd(app),
		newVersionsCmd(app),
		newServeCmd(app),
	)

	return root
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *zap.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop()
}

// spinner starts a progress spinner on w when attached to a terminal. The
// returned func stops it.
func (a *App) spinner(w io.Writer, message string) func() {
	if a.IsInteractive == nil || !a.IsInteractive() {
		return func() {}
	}
	return formatter.StartSpinner(w, message)
}
