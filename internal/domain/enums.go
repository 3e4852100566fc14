package domain

// CardStatus classifies a price card against a reference day.
type CardStatus string

const (
	StatusUpcoming CardStatus = "upcoming"
	StatusActive   CardStatus = "active"
	StatusExpired  CardStatus = "expired"
)

// ValidCardStatuses is the canonical set of accepted status filter strings.
var ValidCardStatuses = map[string]bool{
	"upcoming": true, "active": true, "expired": true,
}

type HistoryAction string

const (
	ActionCreate HistoryAction = "CREATE"
	ActionUpdate HistoryAction = "UPDATE"
	ActionDelete HistoryAction = "DELETE"
)

// ZoomLevel is the calendar granularity of a timeline window.
type ZoomLevel string

const (
	ZoomDay   ZoomLevel = "day"
	ZoomWeek  ZoomLevel = "week"
	ZoomMonth ZoomLevel = "month"
	ZoomYear  ZoomLevel = "year"
)

// ZoomLevels lists the zoom levels from finest to coarsest.
var ZoomLevels = []ZoomLevel{ZoomDay, ZoomWeek, ZoomMonth, ZoomYear}

// ParseZoomLevel accepts a zoom name or its first letter.
func ParseZoomLevel(s string) (ZoomLevel, bool) {
	switch s {
	case "day", "d":
		return ZoomDay, true
	case "week", "w":
		return ZoomWeek, true
	case "month", "m":
		return ZoomMonth, true
	case "year", "y":
		return ZoomYear, true
	}
	return "", false
}

// GestureMode identifies which part of a bar a pointer gesture moves.
type GestureMode string

const (
	GestureDrag        GestureMode = "drag"
	GestureResizeStart GestureMode = "resize-start"
	GestureResizeEnd   GestureMode = "resize-end"
)

// ParseGestureMode validates a gesture mode string.
func ParseGestureMode(s string) (GestureMode, bool) {
	switch GestureMode(s) {
	case GestureDrag, GestureResizeStart, GestureResizeEnd:
		return GestureMode(s), true
	}
	return "", false
}
