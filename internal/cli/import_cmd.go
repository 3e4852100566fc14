package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/scalehouse/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a YAML price schedule (all cards or none)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Schedules.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d price cards (%d new products, %d existing)\n",
				len(result.Cards), result.ProductsCreated, result.ProductsReused)
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var (
		out     string
		product []string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export price cards as a YAML schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := app.Schedules.Export(cmd.Context(), product)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if err := importer.WriteSchedule(w, schedule); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d products to %s\n", len(schedule.Products), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringSliceVarP(&product, "product", "p", nil, "Limit to product codes (repeatable)")

	return cmd
}
