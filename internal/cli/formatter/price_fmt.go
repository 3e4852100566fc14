package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
)

// ProductRow is a product with the price of its card active today.
type ProductRow struct {
	Product *domain.Product
	Current *domain.PriceCard
}

// FormatProductList renders the product master table.
func FormatProductList(rows []ProductRow) string {
	table := Table{
		Headers:    []string{"CODE", "NAME", "CURRENT PRICE", "VALID UNTIL"},
		RightAlign: map[int]bool{2: true},
	}
	for _, r := range rows {
		price, until := Dim("--"), Dim("--")
		if r.Current != nil {
			price = StyleGreen.Render(FormatPrice(r.Current.UnitPrice))
			until = FormatDate(r.Current.EndDate)
		}
		table.Rows = append(table.Rows, []string{Bold(r.Product.Code), r.Product.Name, price, until})
	}
	return table.Render()
}

// CardRow is one card with its derived list fields.
type CardRow struct {
	Card        *domain.PriceCard
	Status      domain.CardStatus
	DaysLeft    int
	Overlapping bool
}

// FormatCardTable renders price cards as a compact table.
func FormatCardTable(rows []CardRow) string {
	table := Table{
		Headers:    []string{"ID", "PRODUCT", "START", "END", "DAYS", "PRICE", "STATUS", ""},
		RightAlign: map[int]bool{4: true, 5: true},
	}
	for _, r := range rows {
		c := r.Card
		table.Rows = append(table.Rows, []string{
			TruncID(c.ID),
			c.ProductCode,
			FormatDate(c.StartDate),
			FormatDate(c.EndDate),
			fmt.Sprintf("%d", c.DurationDays()),
			FormatPrice(c.UnitPrice),
			StatusPill(r.Status),
			OverlapChip(r.Overlapping),
		})
	}
	return table.Render()
}

// FormatCardList renders price cards as stacked cards, grouped by product.
func FormatCardList(rows []CardRow) string {
	var b strings.Builder
	lastProduct := ""
	for _, r := range rows {
		c := r.Card
		if c.ProductID != lastProduct {
			if lastProduct != "" {
				b.WriteString("\n")
			}
			b.WriteString(Header(c.ProductCode + "  " + c.ProductName))
			b.WriteString("\n")
			lastProduct = c.ProductID
		}

		line := fmt.Sprintf("  %s  %s  %s",
			StatusColor(r.Status).Render("▌"),
			StyleBold.Render(FormatPrice(c.UnitPrice)),
			FormatRange(c.StartDate, c.EndDate))
		b.WriteString(line)
		b.WriteString("\n")

		meta := []string{TruncID(c.ID), StatusPill(r.Status), Dim(DaysLabel(c.DurationDays()))}
		if r.Status == domain.StatusActive {
			meta = append(meta, DaysLeftLabel(r.Status, r.DaysLeft))
		}
		if r.Overlapping {
			meta = append(meta, OverlapChip(true))
		}
		b.WriteString("     " + strings.Join(meta, Dim(" · ")) + "\n")
	}
	return b.String()
}

// FormatCardDetail renders one card in a box.
func FormatCardDetail(r CardRow) string {
	c := r.Card
	lines := []string{
		fmt.Sprintf("%-10s %s", Dim("ID"), c.ID),
		fmt.Sprintf("%-10s %s  %s", Dim("Product"), Bold(c.ProductCode), c.ProductName),
		fmt.Sprintf("%-10s %s", Dim("Price"), StyleGreen.Render(FormatPrice(c.UnitPrice))),
		fmt.Sprintf("%-10s %s (%s)", Dim("Valid"), FormatRange(c.StartDate, c.EndDate), DaysLabel(c.DurationDays())),
		fmt.Sprintf("%-10s %s", Dim("Status"), StatusPill(r.Status)),
	}
	if r.Status == domain.StatusActive {
		lines = append(lines, fmt.Sprintf("%-10s %s", Dim("Remaining"), DaysLeftLabel(r.Status, r.DaysLeft)))
	}
	if r.Overlapping {
		lines = append(lines, fmt.Sprintf("%-10s %s", Dim("Warning"), OverlapChip(true)))
	}
	if c.CreatedBy != "" {
		lines = append(lines, fmt.Sprintf("%-10s %s", Dim("Created by"), c.CreatedBy))
	}
	return RenderBox("Price card", strings.Join(lines, "\n"))
}

// FormatHistory renders audit rows oldest first.
func FormatHistory(entries []*domain.PriceHistory, now time.Time) string {
	table := Table{Headers: []string{"WHEN", "ACTION", "CARD", "PRICE", "VALIDITY", "BY"}}
	for _, h := range entries {
		table.Rows = append(table.Rows, []string{
			HumanTimestamp(h.ChangedAt, now),
			actionLabel(h.Action),
			TruncID(h.PriceID),
			change(priceText(h.OldUnitPrice), priceText(h.NewUnitPrice)),
			change(rangeText(h.OldStartDate, h.OldEndDate), rangeText(h.NewStartDate, h.NewEndDate)),
			h.ChangedBy,
		})
	}
	return table.Render()
}

func actionLabel(a domain.HistoryAction) string {
	switch a {
	case domain.ActionCreate:
		return StyleGreen.Render(string(a))
	case domain.ActionDelete:
		return StyleRed.Render(string(a))
	default:
		return StyleYellow.Render(string(a))
	}
}

func change(before, after string) string {
	switch {
	case before == "":
		return after
	case after == "":
		return Dim(before)
	case before == after:
		return after
	default:
		return Dim(before) + " → " + after
	}
}

func priceText(p *float64) string {
	if p == nil {
		return ""
	}
	return FormatPrice(*p)
}

func rangeText(start, end *time.Time) string {
	if start == nil || end == nil {
		return ""
	}
	return FormatRange(*start, *end)
}
