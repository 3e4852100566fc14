package cli

import (
	"github.com/alexanderramin/scalehouse/internal/db"
	"github.com/alexanderramin/scalehouse/internal/watch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	req := boardRequest(app)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive price timeline",
		Long: `Open the interactive price timeline.

Drag a bar to move a price card, or drag its first or last cell to change
the start or end day. Releasing the mouse saves the change; it is refused
when the new days overlap another card of the same product.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app, tuiOptions{Request: &req})
		},
	}

	addBoardFlags(cmd.Flags(), &req)

	return cmd
}

func runTUI(cmd *cobra.Command, app *App, opts tuiOptions) error {
	ctx := cmd.Context()
	cfg := app.settings()

	if opts.Changes == nil && cfg.WatchDB && cfg.DBPath != db.MemoryPath {
		w, err := watch.New(cfg.DBPath, watch.WithLogger(app.logger()))
		if err != nil {
			app.logger().Warn("database watcher disabled", "error", err)
		} else {
			defer w.Close()
			opts.Changes = w.Changes()
		}
	}

	m := newTimelineModel(ctx, app, opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
