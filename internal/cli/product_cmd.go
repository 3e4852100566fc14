package cli

import (
	"fmt"

	"github.com/alexanderramin/scalehouse/internal/cli/formatter"
	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/spf13/cobra"
)

func newProductCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"products"},
		Short:   "Manage products",
	}

	cmd.AddCommand(
		newProductAddCmd(app),
		newProductListCmd(app),
		newProductRemoveCmd(app),
	)

	return cmd
}

func newProductAddCmd(app *App) *cobra.Command {
	var code, name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Product{Code: code, Name: name}
			if err := app.Products.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created product %s (%s)\n", p.Code, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Product code, e.g. WOOD-A")
	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the code)")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newProductListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products with today's price",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			products, err := app.Products.List(ctx)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No products found.")
				return nil
			}

			today := domain.DateOf(app.now())
			rows := make([]formatter.ProductRow, 0, len(products))
			for _, p := range products {
				current, err := app.Products.CurrentPrice(ctx, p.ID, today)
				if err != nil {
					return err
				}
				rows = append(rows, formatter.ProductRow{Product: p, Current: current})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProductList(rows))
			return nil
		},
	}
}

func newProductRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove CODE",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Products.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Products.Delete(ctx, p.ID, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed product %s\n", p.Code)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Also delete the product's price cards")

	return cmd
}
