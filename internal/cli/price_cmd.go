package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/scalehouse/internal/cli/formatter"
	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/alexanderramin/scalehouse/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "price",
		Aliases: []string{"prices"},
		Short:   "Manage price cards",
	}

	cmd.AddCommand(
		newPriceAddCmd(app),
		newPriceListCmd(app),
		newPriceShowCmd(app),
		newPriceUpdateCmd(app),
		newPriceMoveCmd(app),
		newPriceRemoveCmd(app),
		newPriceDuplicateCmd(app),
		newPriceHistoryCmd(app),
	)

	return cmd
}

func toCardRow(s service.CardSummary) formatter.CardRow {
	return formatter.CardRow{
		Card:        s.Card,
		Status:      s.Status,
		DaysLeft:    s.DaysLeft,
		Overlapping: s.Overlapping,
	}
}

// summaryFor returns the list view of one card so that detail output
// carries the same status and overlap fields as "price list".
func summaryFor(cmd *cobra.Command, app *App, card *domain.PriceCard) (formatter.CardRow, error) {
	summaries, err := app.Prices.List(cmd.Context(), service.CardListFilter{})
	if err != nil {
		return formatter.CardRow{}, err
	}
	for _, s := range summaries {
		if s.Card.ID == card.ID {
			return toCardRow(s), nil
		}
	}
	return formatter.CardRow{Card: card}, nil
}

func printCard(cmd *cobra.Command, app *App, verb string, card *domain.PriceCard) error {
	row, err := summaryFor(cmd, app, card)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s price card %s\n", verb, card.DisplayID())
	fmt.Fprintln(out, formatter.FormatCardDetail(row))
	return nil
}

func newPriceAddCmd(app *App) *cobra.Command {
	var (
		product string
		start   time.Time
		end     *time.Time
		price   float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a price card",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Products.Resolve(ctx, product)
			if err != nil {
				return fmt.Errorf("product %q: %w", product, err)
			}

			c := &domain.PriceCard{ProductID: p.ID, StartDate: start, UnitPrice: price}
			if end != nil {
				c.EndDate = *end
			}
			if err := app.Prices.Create(ctx, c); err != nil {
				return err
			}
			return printCard(cmd, app, "Created", c)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&product, "product", "p", "", "Product code")
	dateVar(fs, &start, "start", "First valid day (YYYY-MM-DD)")
	optionalDateVar(fs, &end, "end", "Last valid day (YYYY-MM-DD, default: start)")
	fs.Float64Var(&price, "price", 0, "Unit price")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newPriceListCmd(app *App) *cobra.Command {
	var (
		product string
		f       service.CardListFilter
		asCards bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List price cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if product != "" {
				p, err := app.Products.Resolve(ctx, product)
				if err != nil {
					return fmt.Errorf("product %q: %w", product, err)
				}
				f.ProductID = p.ID
			}

			summaries, err := app.Prices.List(ctx, f)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No price cards found.")
				return nil
			}

			rows := make([]formatter.CardRow, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, toCardRow(s))
			}
			if asCards {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCardList(rows))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCardTable(rows))
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&product, "product", "p", "", "Only this product")
	fs.StringVar(&f.Search, "search", "", "Product code or name contains")
	statusVar(fs, &f.Status)
	optionalDateVar(fs, &f.From, "from", "Cards valid on or after this day")
	optionalDateVar(fs, &f.To, "to", "Cards valid on or before this day")
	fs.BoolVar(&asCards, "cards", false, "Show a card per price instead of a table")

	return cmd
}

func newPriceShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one price card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Prices.GetByID(ctx, id)
			if err != nil {
				return err
			}
			row, err := summaryFor(cmd, app, c)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCardDetail(row))
			return nil
		},
	}
}

func newPriceUpdateCmd(app *App) *cobra.Command {
	var (
		start, end *time.Time
		price      float64
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the price or validity of a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Prices.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if start != nil {
				c.StartDate = *start
			}
			if end != nil {
				c.EndDate = *end
			}
			if cmd.Flags().Changed("price") {
				c.UnitPrice = price
			}
			if err := app.Prices.Update(ctx, c); err != nil {
				return err
			}
			return printCard(cmd, app, "Updated", c)
		},
	}

	fs := cmd.Flags()
	optionalDateVar(fs, &start, "start", "New first valid day")
	optionalDateVar(fs, &end, "end", "New last valid day")
	fs.Float64Var(&price, "price", 0, "New unit price")

	return cmd
}

func newPriceMoveCmd(app *App) *cobra.Command {
	var (
		days int
		mode = domain.GestureDrag
	)

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Shift a card or one of its edges by whole days",
		Long: `Shift a card the same way dragging its bar in the timeline does.

  --mode drag          moves both ends (default)
  --mode resize-start  moves the first day; it never passes the last day
  --mode resize-end    moves the last day; it never passes the first day`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Prices.Move(ctx, id, mode, days)
			if err != nil {
				return err
			}
			return printCard(cmd, app, "Moved", c)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to shift (negative moves earlier)")
	cmd.Flags().Var(gestureModeValue{&mode}, "mode", "drag, resize-start or resize-end")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func newPriceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a price card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Prices.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed price card %s\n", id[:min(8, len(id))])
			return nil
		},
	}
}

func newPriceDuplicateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate ID",
		Short: "Copy a card onto the days right after it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Prices.Duplicate(ctx, id)
			if err != nil {
				return err
			}
			return printCard(cmd, app, "Duplicated", c)
		},
	}
}

func newPriceHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [ID]",
		Short: "Show the change log of a card, or recent changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				entries []*domain.PriceHistory
				err     error
			)
			if len(args) == 1 {
				id, rerr := resolveCardID(ctx, app, args[0])
				if rerr != nil {
					// Deleted cards keep their history under the full ID.
					if _, perr := uuid.Parse(args[0]); perr != nil {
						return rerr
					}
					id = args[0]
				}
				entries, err = app.Prices.History(ctx, id)
			} else {
				entries, err = app.Prices.RecentHistory(ctx, limit)
			}
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(entries, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Entries to show without an ID")

	return cmd
}
