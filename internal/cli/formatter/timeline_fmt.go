package formatter

import (
	"math"
	"strings"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/alexanderramin/scalehouse/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

const (
	minLabelWidth = 8
	maxLabelWidth = 24
	minGridWidth  = 10

	// TimelineHeaderLines is the number of lines above the first row.
	TimelineHeaderLines = 2
)

// BarHit is the on-screen extent of one bar, in grid cells inclusive.
type BarHit struct {
	Line         int
	StartCol     int
	EndCol       int
	Card         *domain.PriceCard
	ClippedStart bool
	ClippedEnd   bool
}

// TimelineFrame is a rendered timeline plus the cell extents of every
// drawn bar so that pointer positions can be mapped back to cards.
type TimelineFrame struct {
	Lines      []string
	LabelWidth int
	GridWidth  int
	Hits       []BarHit
}

func (f *TimelineFrame) String() string {
	return strings.Join(f.Lines, "\n")
}

// GridX converts a terminal column into a grid cell offset. The result is
// negative when x falls inside the label column.
func (f *TimelineFrame) GridX(x int) float64 {
	return float64(x - f.LabelWidth)
}

// HitTest finds the bar under terminal position (x, line) and the gesture
// a press there starts: the first and last cell of a bar resize it, any
// other cell drags it. Clipped edges are not handles.
func (f *TimelineFrame) HitTest(x, line int) (BarHit, domain.GestureMode, bool) {
	col := x - f.LabelWidth
	for _, h := range f.Hits {
		if h.Line != line || col < h.StartCol || col > h.EndCol {
			continue
		}
		if h.EndCol > h.StartCol {
			if col == h.StartCol && !h.ClippedStart {
				return h, domain.GestureResizeStart, true
			}
			if col == h.EndCol && !h.ClippedEnd {
				return h, domain.GestureResizeEnd, true
			}
		}
		return h, domain.GestureDrag, true
	}
	return BarHit{}, "", false
}

// RenderTimeline draws the window header, a day ruler with today
// highlighted and one line per lane of every row, fitted to width columns.
func RenderTimeline(w timeline.Window, rows []timeline.Row, width int) *TimelineFrame {
	labelWidth := minLabelWidth
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Resource.Label)+2)
	}
	labelWidth = min(labelWidth, maxLabelWidth)
	grid := max(width-labelWidth, minGridWidth)

	f := &TimelineFrame{LabelWidth: labelWidth, GridWidth: grid}
	f.Lines = append(f.Lines,
		StyleHeader.Render(w.Title())+"  "+Dim("["+string(w.Zoom)+"]"),
		strings.Repeat(" ", labelWidth)+renderRuler(w, grid),
	)

	for _, r := range rows {
		label := padLabel(r.Resource.Label, labelWidth)
		if len(r.Lanes) == 0 {
			f.Lines = append(f.Lines, StyleBold.Render(label)+Dim("no prices in this period"))
			continue
		}
		for i, lane := range r.Lanes {
			prefix := strings.Repeat(" ", labelWidth)
			if i == 0 {
				prefix = StyleBold.Render(label)
			}
			line, hits := renderLane(lane, grid, len(f.Lines))
			f.Lines = append(f.Lines, prefix+line)
			f.Hits = append(f.Hits, hits...)
		}
	}
	return f
}

func padLabel(s string, width int) string {
	if lipgloss.Width(s) > width-1 {
		s = string([]rune(s)[:width-2]) + "…"
	}
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}

// cellSpan maps a geometry to inclusive grid cells. Every visible bar gets
// at least one cell.
func cellSpan(g timeline.Geometry, grid int) (int, int) {
	const eps = 1e-9
	start := int(math.Floor(g.Left/100*float64(grid) + eps))
	end := int(math.Ceil(g.Right()/100*float64(grid)-eps)) - 1
	start = min(max(start, 0), grid-1)
	end = min(max(end, start), grid-1)
	return start, end
}

type cellRow struct {
	runes  []rune
	styles []*lipgloss.Style
}

func newCellRow(n int) cellRow {
	r := cellRow{runes: make([]rune, n), styles: make([]*lipgloss.Style, n)}
	for i := range r.runes {
		r.runes[i] = ' '
	}
	return r
}

func (r cellRow) write(at int, s string, style *lipgloss.Style) {
	for i, ch := range []rune(s) {
		if at+i >= len(r.runes) {
			return
		}
		r.runes[at+i] = ch
		if style != nil {
			r.styles[at+i] = style
		}
	}
}

func (r cellRow) render() string {
	var b strings.Builder
	for i := 0; i < len(r.runes); {
		j := i
		for j < len(r.runes) && r.styles[j] == r.styles[i] {
			j++
		}
		chunk := string(r.runes[i:j])
		if r.styles[i] != nil {
			chunk = r.styles[i].Render(chunk)
		}
		b.WriteString(chunk)
		i = j
	}
	return b.String()
}

func renderRuler(w timeline.Window, grid int) string {
	row := newCellRow(grid)
	winStart, winEnd := w.Bounds()
	span := timeline.Mapper{}
	dim, today := StyleDim, StyleToday
	nextFree := 0

	for _, col := range w.Columns {
		colEnd := timeline.AddDays(col.Date, 1)
		if w.Zoom == domain.ZoomYear {
			colEnd = col.Date.AddDate(0, 1, 0)
		}
		g := span.MapSpan(col.Date, colEnd, winStart, winEnd)
		if !g.Visible {
			continue
		}
		start, end := cellSpan(g, grid)
		if col.Highlight {
			for i := start; i <= end; i++ {
				row.styles[i] = &today
			}
		}
		if start < nextFree {
			continue
		}
		style := &dim
		if col.Highlight {
			style = &today
		}
		row.write(start, col.Label, style)
		nextFree = start + len([]rune(col.Label)) + 1
	}
	return row.render()
}

func barStyle(b timeline.Bar) lipgloss.Style {
	switch {
	case b.Previewing:
		return barPreview
	case b.Overlapping:
		return barOverlap
	case b.Status == domain.StatusActive:
		return barActive
	case b.Status == domain.StatusUpcoming:
		return barUpcoming
	default:
		return barExpired
	}
}

func renderLane(lane timeline.Lane, grid, line int) (string, []BarHit) {
	row := newCellRow(grid)
	var hits []BarHit
	prevEnd := -1

	for _, b := range lane.Bars {
		if !b.Geometry.Visible {
			continue
		}
		start, end := cellSpan(b.Geometry, grid)
		// Neighbours in a lane never share a day but may round into the
		// same cell.
		if start <= prevEnd {
			start = prevEnd + 1
		}
		if start > end {
			continue
		}
		prevEnd = end

		style := barStyle(b)
		for i := start; i <= end; i++ {
			row.styles[i] = &style
		}
		text := FormatPrice(b.Card.UnitPrice)
		if n := end - start + 1; len(text)+2 <= n {
			row.write(start+1, text, nil)
		}
		if b.Geometry.ClippedStart {
			row.write(start, "◂", nil)
		}
		if b.Geometry.ClippedEnd {
			row.write(end, "▸", nil)
		}

		hits = append(hits, BarHit{
			Line:         line,
			StartCol:     start,
			EndCol:       end,
			Card:         b.Card,
			ClippedStart: b.Geometry.ClippedStart,
			ClippedEnd:   b.Geometry.ClippedEnd,
		})
	}
	return row.render(), hits
}
