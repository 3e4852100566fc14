package timeline

import (
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
)

// DefaultMinWidthPercent keeps single-day bars clickable at year zoom.
const DefaultMinWidthPercent = 0.2

// Geometry positions a bar inside its row as percentages of the window.
type Geometry struct {
	Left    float64
	Width   float64
	Visible bool

	// ClippedStart/ClippedEnd report that the bar continues beyond the
	// window edge.
	ClippedStart bool
	ClippedEnd   bool
}

// Right is Left + Width.
func (g Geometry) Right() float64 { return g.Left + g.Width }

// Preview is an uncommitted day offset applied to a bar while a gesture
// is in flight.
type Preview struct {
	Mode domain.GestureMode
	Days int
}

// Mapper converts card ranges into bar geometry.
type Mapper struct {
	MinWidthPercent float64
}

// MapGeometry maps a card with the default minimum width.
func MapGeometry(c *domain.PriceCard, w Window, preview *Preview) Geometry {
	return Mapper{MinWidthPercent: DefaultMinWidthPercent}.Map(c, w, preview)
}

// Map positions c inside w. The preview, if any, is applied to a copy of
// the bounds before clamping; c itself is never modified.
func (m Mapper) Map(c *domain.PriceCard, w Window, preview *Preview) Geometry {
	start, end := StartOfDay(c.StartDate), StartOfDay(c.EndDate)
	if preview != nil && preview.Days != 0 {
		start, end = ApplyDelta(preview.Mode, start, end, preview.Days)
	}
	winStart, winEnd := w.Bounds()
	return m.MapSpan(start, AddDays(end, 1), winStart, winEnd)
}

// MapSpan positions the instant range [spanStart, spanEnd) inside
// [winStart, winEnd). A zero or negative window yields zero width.
func (m Mapper) MapSpan(spanStart, spanEnd, winStart, winEnd time.Time) Geometry {
	total := winEnd.Sub(winStart)
	if total <= 0 {
		return Geometry{}
	}
	if !spanEnd.After(winStart) || !spanStart.Before(winEnd) {
		return Geometry{}
	}

	effStart, effEnd := spanStart, spanEnd
	g := Geometry{Visible: true}
	if effStart.Before(winStart) {
		effStart = winStart
		g.ClippedStart = true
	}
	if effEnd.After(winEnd) {
		effEnd = winEnd
		g.ClippedEnd = true
	}

	g.Left = float64(effStart.Sub(winStart)) / float64(total) * 100
	g.Width = float64(effEnd.Sub(effStart)) / float64(total) * 100

	if g.Width < m.MinWidthPercent {
		g.Width = m.MinWidthPercent
	}
	if g.Width > 100 {
		g.Width = 100
	}
	// The floor may push a bar at the right edge past 100%.
	if g.Left+g.Width > 100 {
		g.Left = 100 - g.Width
	}
	return g
}
