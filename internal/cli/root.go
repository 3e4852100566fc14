package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/scalehouse/internal/config"
	"github.com/alexanderramin/scalehouse/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Products  service.ProductService
	Prices    service.PriceCardService
	Timeline  service.TimelineService
	Schedules service.ImportService

	Config *config.Config
	Logger *slog.Logger

	// Now pins "today" for status and highlight decisions. Nil means time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. When it returns
	// true, a bare "scalehouse" opens the timeline TUI.
	IsInteractive func() bool
}

func (a *App) settings() *config.Config {
	if a.Config == nil {
		a.Config = config.Default()
	}
	return a.Config
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		a.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// NewRootCmd creates the top-level "scalehouse" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "scalehouse",
		Short:         "Commodity price timeline for weighbridge buying",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(cmd, app, tuiOptions{})
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newProductCmd(app),
		newPriceCmd(app),
		newTimelineCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newTUICmd(app),
	)

	return root
}
