package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stripANSI removes escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansi.Strip(s)
}

func day(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(Table{
		Headers:    []string{"CODE", "PRICE"},
		Rows:       [][]string{{StyleBold.Render("WOOD-A"), "7.50"}, {"EUC01", "12.00"}},
		RightAlign: map[int]bool{1: true},
	}.Render())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "CODE    PRICE", lines[0])
	assert.Equal(t, "WOOD-A   7.50", lines[2])
	assert.Equal(t, "EUC01   12.00", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "2026-02-10", FormatRange(day("2026-02-10"), day("2026-02-10")))
	assert.Equal(t, "2026-02-10 → 2026-02-12", FormatRange(day("2026-02-10"), day("2026-02-12")))
}

func TestDaysLeftLabel(t *testing.T) {
	assert.Equal(t, "--", stripANSI(DaysLeftLabel(domain.StatusExpired, 0)))
	assert.Equal(t, "1 day left", stripANSI(DaysLeftLabel(domain.StatusActive, 1)))
	assert.Equal(t, "12 days left", stripANSI(DaysLeftLabel(domain.StatusActive, 12)))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "Just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-72 * time.Hour), "2026-02-04 12:00"},
		{now.Add(time.Hour), "2026-02-07 13:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanTimestamp(tt.at, now))
	}
}

func TestFormatProductList_ShowsCurrentPrice(t *testing.T) {
	out := stripANSI(FormatProductList([]ProductRow{
		{Product: &domain.Product{Code: "WOOD-A", Name: "Rubber wood A"},
			Current: &domain.PriceCard{UnitPrice: 7.5, EndDate: day("2026-02-28")}},
		{Product: &domain.Product{Code: "EUC01", Name: "Eucalyptus"}},
	}))

	assert.Contains(t, out, "WOOD-A")
	assert.Contains(t, out, "7.50")
	assert.Contains(t, out, "2026-02-28")
	assert.Regexp(t, `EUC01\s+Eucalyptus\s+--\s+--`, out)
}

func TestFormatCardList_GroupsByProduct(t *testing.T) {
	a := &domain.PriceCard{ID: "aaaaaaaa-1", ProductID: "p1", ProductCode: "WOOD-A", ProductName: "Rubber wood A",
		StartDate: day("2026-02-01"), EndDate: day("2026-02-14"), UnitPrice: 7.5}
	b := &domain.PriceCard{ID: "bbbbbbbb-1", ProductID: "p2", ProductCode: "EUC01", ProductName: "Eucalyptus",
		StartDate: day("2026-02-20"), EndDate: day("2026-02-20"), UnitPrice: 3}

	out := stripANSI(FormatCardList([]CardRow{
		{Card: a, Status: domain.StatusActive, DaysLeft: 5, Overlapping: true},
		{Card: b, Status: domain.StatusUpcoming},
	}))

	assert.Contains(t, out, "WOOD-A  RUBBER WOOD A")
	assert.Contains(t, out, "EUC01  EUCALYPTUS")
	assert.Contains(t, out, "2026-02-01 → 2026-02-14")
	assert.Contains(t, out, "5 days left")
	assert.Contains(t, out, "overlap")
	assert.Contains(t, out, "1 day")
	assert.Less(t, strings.Index(out, "WOOD-A"), strings.Index(out, "EUC01"))
}

func TestFormatHistory_ShowsChanges(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	before := &domain.PriceCard{ID: "card-1", ProductID: "p1", StartDate: day("2026-02-10"), EndDate: day("2026-02-12"), UnitPrice: 7}
	after := before.Clone()
	after.StartDate, after.EndDate = day("2026-02-13"), day("2026-02-15")

	out := stripANSI(FormatHistory([]*domain.PriceHistory{
		domain.NewHistoryEntry("h1", domain.ActionCreate, nil, before, "ana", now.Add(-2*time.Hour)),
		domain.NewHistoryEntry("h2", domain.ActionUpdate, before, after, "ana", now.Add(-time.Minute)),
	}, now))

	assert.Contains(t, out, "CREATE")
	assert.Contains(t, out, "UPDATE")
	assert.Contains(t, out, "2026-02-10 → 2026-02-12 → 2026-02-13 → 2026-02-15")
	assert.Contains(t, out, "2h ago")
}
