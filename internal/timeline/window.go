package timeline

import (
	"fmt"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
)

// Column is one header cell of a window: a day, or a month at year zoom.
type Column struct {
	Date      time.Time
	Label     string
	Highlight bool
}

// Window is the visible calendar range for a zoom level. Start and End are
// calendar days, both inclusive.
type Window struct {
	Zoom    domain.ZoomLevel
	Anchor  time.Time
	Start   time.Time
	End     time.Time
	Columns []Column
}

// Bounds returns the window as instants: midnight of Start and the
// midnight after End.
func (w Window) Bounds() (time.Time, time.Time) {
	return StartOfDay(w.Start), AddDays(w.End, 1)
}

// Duration is the length of the window from the start of its first day to
// the end of its last day.
func (w Window) Duration() time.Duration {
	from, to := w.Bounds()
	return to.Sub(from)
}

// Days counts the calendar days the window covers.
func (w Window) Days() int {
	return DaysBetween(w.Start, w.End)
}

// Contains reports whether t falls on a day inside the window.
func (w Window) Contains(t time.Time) bool {
	d := StartOfDay(t)
	return !d.Before(StartOfDay(w.Start)) && !d.After(StartOfDay(w.End))
}

// Title is a short heading for the window, e.g. "February 2026".
func (w Window) Title() string {
	switch w.Zoom {
	case domain.ZoomDay:
		return w.Start.Format("Monday, 2 January 2006")
	case domain.ZoomWeek:
		return fmt.Sprintf("%s - %s", w.Start.Format("2 Jan"), w.End.Format("2 Jan 2006"))
	case domain.ZoomYear:
		return w.Start.Format("2006")
	default:
		return w.Start.Format("January 2006")
	}
}

// WindowOptions tunes window projection.
type WindowOptions struct {
	// WeekStart is the first weekday of a week-zoom window.
	WeekStart time.Weekday
	// Clock decides which column is highlighted. Nil means time.Now.
	Clock Clock
}

// ProjectWindow computes the window of the given zoom level that contains
// anchor, with one column per day (per month at year zoom). Highlight
// flags are evaluated against the clock on every call.
func ProjectWindow(zoom domain.ZoomLevel, anchor time.Time, opts WindowOptions) Window {
	a := StartOfDay(anchor)
	today := StartOfDay(opts.Clock.now())
	w := Window{Zoom: zoom, Anchor: a}

	switch zoom {
	case domain.ZoomDay:
		w.Start, w.End = a, a
		w.Columns = []Column{{Date: a, Label: a.Format("Monday, 2 Jan 2006"), Highlight: a.Equal(today)}}

	case domain.ZoomWeek:
		offset := (int(a.Weekday()) - int(opts.WeekStart) + 7) % 7
		w.Start = AddDays(a, -offset)
		w.End = AddDays(w.Start, 6)
		w.Columns = dayColumns(w.Start, 7, "Mon 2", today)

	case domain.ZoomYear:
		w.Start = time.Date(a.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		w.End = time.Date(a.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		w.Columns = make([]Column, 0, 12)
		for m := time.January; m <= time.December; m++ {
			d := time.Date(a.Year(), m, 1, 0, 0, 0, 0, time.UTC)
			w.Columns = append(w.Columns, Column{
				Date:      d,
				Label:     d.Format("Jan"),
				Highlight: d.Year() == today.Year() && d.Month() == today.Month(),
			})
		}

	default:
		w.Zoom = domain.ZoomMonth
		w.Start = time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, time.UTC)
		n := daysIn(a.Year(), a.Month())
		w.End = AddDays(w.Start, n-1)
		w.Columns = dayColumns(w.Start, n, "2", today)
	}
	return w
}

func dayColumns(start time.Time, n int, layout string, today time.Time) []Column {
	cols := make([]Column, 0, n)
	for i := 0; i < n; i++ {
		d := AddDays(start, i)
		cols = append(cols, Column{Date: d, Label: d.Format(layout), Highlight: d.Equal(today)})
	}
	return cols
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// addMonths shifts t by n months, clamping the day to the length of the
// target month (Jan 31 + 1 month = Feb 28).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// Shift moves an anchor by steps units of the zoom level.
func Shift(anchor time.Time, zoom domain.ZoomLevel, steps int) time.Time {
	a := StartOfDay(anchor)
	switch zoom {
	case domain.ZoomDay:
		return AddDays(a, steps)
	case domain.ZoomWeek:
		return AddDays(a, 7*steps)
	case domain.ZoomYear:
		return addMonths(a, 12*steps)
	default:
		return addMonths(a, steps)
	}
}

// Navigator holds the zoom level and anchor date of a timeline view and
// re-derives its window on demand.
type Navigator struct {
	zoom   domain.ZoomLevel
	anchor time.Time
	opts   WindowOptions
}

// NewNavigator starts a navigator at anchor. A zero anchor means today.
func NewNavigator(zoom domain.ZoomLevel, anchor time.Time, opts WindowOptions) *Navigator {
	if anchor.IsZero() {
		anchor = opts.Clock.now()
	}
	if zoom == "" {
		zoom = domain.ZoomMonth
	}
	return &Navigator{zoom: zoom, anchor: StartOfDay(anchor), opts: opts}
}

func (n *Navigator) Zoom() domain.ZoomLevel { return n.zoom }
func (n *Navigator) Anchor() time.Time      { return n.anchor }

// Window projects the current window. Highlights reflect the clock at the
// moment of the call.
func (n *Navigator) Window() Window {
	return ProjectWindow(n.zoom, n.anchor, n.opts)
}

func (n *Navigator) Previous() { n.anchor = Shift(n.anchor, n.zoom, -1) }
func (n *Navigator) Next()     { n.anchor = Shift(n.anchor, n.zoom, 1) }

// Today moves the anchor to the clock's current day.
func (n *Navigator) Today() { n.anchor = StartOfDay(n.opts.Clock.now()) }

// SetZoom changes the zoom level and keeps the anchor.
func (n *Navigator) SetZoom(z domain.ZoomLevel) { n.zoom = z }

// SetAnchor jumps to an arbitrary day.
func (n *Navigator) SetAnchor(t time.Time) { n.anchor = StartOfDay(t) }
