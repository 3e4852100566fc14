package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/scalehouse/internal/cli/formatter"
	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/alexanderramin/scalehouse/internal/timeline"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func scalehouseHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// priceDraft holds the raw strings of the new-price form.
type priceDraft struct {
	ProductID string
	Start     string
	End       string
	Price     string
}

func (d priceDraft) card() (*domain.PriceCard, error) {
	if d.ProductID == "" {
		return nil, fmt.Errorf("choose a product")
	}
	start, err := domain.ParseDate(strings.TrimSpace(d.Start))
	if err != nil {
		return nil, err
	}
	c := &domain.PriceCard{ProductID: d.ProductID, StartDate: start}
	if end := strings.TrimSpace(d.End); end != "" {
		if c.EndDate, err = domain.ParseDate(end); err != nil {
			return nil, err
		}
	}
	if c.UnitPrice, err = strconv.ParseFloat(strings.TrimSpace(d.Price), 64); err != nil {
		return nil, fmt.Errorf("invalid price %q", d.Price)
	}
	return c, nil
}

func validateDate(s string) error {
	if _, err := domain.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateDate(s)
}

func validatePrice(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a price of 0 or more")
	}
	return nil
}

// newPriceForm asks for product, validity and price. The product list is
// the rows currently on the timeline.
func newPriceForm(d *priceDraft, resources []timeline.Resource) *huh.Form {
	opts := make([]huh.Option[string], 0, len(resources))
	for _, r := range resources {
		opts = append(opts, huh.NewOption(r.Label, r.Key))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Product").
				Options(opts...).
				Value(&d.ProductID),
			huh.NewInput().
				Title("First valid day").
				Placeholder("2026-02-01").
				Value(&d.Start).
				Validate(validateDate),
			huh.NewInput().
				Title("Last valid day (blank for one day)").
				Value(&d.End).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Unit price").
				Placeholder("7.50").
				Value(&d.Price).
				Validate(validatePrice),
		),
	).WithTheme(scalehouseHuhTheme()).WithShowHelp(false)
}
