package cli

import (
	"fmt"

	"github.com/alexanderramin/scalehouse/internal/cli/formatter"
	"github.com/alexanderramin/scalehouse/internal/contract"
	"github.com/spf13/cobra"
)

const defaultTimelineWidth = 100

// boardRequest starts from the configured defaults. Flags registered by
// addBoardFlags overwrite the fields afterwards.
func boardRequest(app *App) contract.BoardRequest {
	cfg := app.settings()
	req := contract.NewBoardRequest()
	req.Zoom = cfg.Zoom()
	req.WeekStart = cfg.Weekday()
	req.MinWidthPercent = cfg.MinBarWidthPercent
	return req
}

func newTimelineCmd(app *App) *cobra.Command {
	req := boardRequest(app)
	width := defaultTimelineWidth

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print the price timeline for a day, week, month or year",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Timeline.Board(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.RenderTimeline(resp.Window, resp.Rows, width).String())
			if len(resp.Rows) == 0 {
				fmt.Fprintln(out, formatter.Dim("No products found."))
			}
			for _, w := range resp.Warnings {
				fmt.Fprintln(out, formatter.StyleRed.Render("▲ "+w))
			}
			return nil
		},
	}

	addBoardFlags(cmd.Flags(), &req)
	cmd.Flags().IntVar(&width, "width", defaultTimelineWidth, "Output width in columns")

	return cmd
}
