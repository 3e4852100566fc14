package timeline

import (
	"errors"
	"math"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
)

var (
	// ErrNoActiveGesture means UpdateGesture or EndGesture was called
	// without a preceding BeginGesture. It is a caller bug.
	ErrNoActiveGesture = errors.New("no active gesture")

	// ErrGestureInProgress is returned by BeginGesture while another
	// gesture is still active.
	ErrGestureInProgress = errors.New("a gesture is already in progress")
)

const msPerDay = float64(24 * 60 * 60 * 1000)

// Gesture is the state of one pointer interaction. Bounds are snapshotted
// at BeginGesture and never read from the live card again.
type Gesture struct {
	Mode         domain.GestureMode
	CardID       string
	InitialX     float64
	InitialStart time.Time
	InitialEnd   time.Time
	PreviewDays  int
}

// Result is the outcome of EndGesture. NewStart/NewEnd are set only when
// Committed is true, which requires the bounds to differ from the
// snapshot; a resize clamped back onto its own edge is not a commit.
type Result struct {
	Committed bool
	CardID    string
	Mode      domain.GestureMode
	DeltaDays int
	NewStart  time.Time
	NewEnd    time.Time
}

// CommitFunc receives the new bounds of a committed gesture. The
// controller does not wait on or inspect its outcome.
type CommitFunc func(cardID string, start, end time.Time)

// Controller is the drag/resize state machine. It is either idle or holds
// exactly one active gesture. Not safe for concurrent use; pointer events
// arrive sequentially.
type Controller struct {
	onCommit   CommitFunc
	duration   time.Duration
	pixelWidth float64
	active     *Gesture
}

// NewController returns an idle controller. onCommit may be nil.
func NewController(onCommit CommitFunc) *Controller {
	return &Controller{onCommit: onCommit}
}

// SetScale tells the controller how many pixels the window spans on
// screen. Call it whenever the window or the viewport width changes.
func (c *Controller) SetScale(w Window, pixelWidth float64) {
	c.duration = w.Duration()
	c.pixelWidth = pixelWidth
}

// Active returns a copy of the current gesture, if any.
func (c *Controller) Active() (Gesture, bool) {
	if c.active == nil {
		return Gesture{}, false
	}
	return *c.active, true
}

// Preview returns the live offset for cardID, or nil when that card is
// not being moved.
func (c *Controller) Preview(cardID string) *Preview {
	if c.active == nil || c.active.CardID != cardID {
		return nil
	}
	return &Preview{Mode: c.active.Mode, Days: c.active.PreviewDays}
}

// BeginGesture starts a drag or resize of card at pointerX.
func (c *Controller) BeginGesture(mode domain.GestureMode, card *domain.PriceCard, pointerX float64) error {
	if c.active != nil {
		return ErrGestureInProgress
	}
	if _, ok := domain.ParseGestureMode(string(mode)); !ok {
		return errors.New("unknown gesture mode " + string(mode))
	}
	c.active = &Gesture{
		Mode:         mode,
		CardID:       card.ID,
		InitialX:     pointerX,
		InitialStart: StartOfDay(card.StartDate),
		InitialEnd:   StartOfDay(card.EndDate),
	}
	return nil
}

// UpdateGesture converts the pointer position into a snapped day offset
// and stores it as the live preview. Nothing is committed.
func (c *Controller) UpdateGesture(pointerX float64) (int, error) {
	if c.active == nil {
		return 0, ErrNoActiveGesture
	}
	c.active.PreviewDays = c.deltaDays(c.active.InitialX, pointerX)
	return c.active.PreviewDays, nil
}

// EndGesture finishes the active gesture at pointerX and returns the
// controller to idle. When the snapped delta leaves both bounds where
// they were the gesture is discarded; otherwise the commit callback gets
// the new bounds.
func (c *Controller) EndGesture(pointerX float64) (Result, error) {
	g := c.active
	if g == nil {
		return Result{}, ErrNoActiveGesture
	}
	c.active = nil

	delta := c.deltaDays(g.InitialX, pointerX)
	res := Result{CardID: g.CardID, Mode: g.Mode, DeltaDays: delta}
	if delta == 0 {
		return res, nil
	}

	start, end := ApplyDelta(g.Mode, g.InitialStart, g.InitialEnd, delta)
	if start.Equal(g.InitialStart) && end.Equal(g.InitialEnd) {
		return res, nil
	}

	res.Committed = true
	res.NewStart, res.NewEnd = start, end
	if c.onCommit != nil {
		c.onCommit(g.CardID, res.NewStart, res.NewEnd)
	}
	return res, nil
}

// Cancel drops the active gesture without committing. It reports whether
// a gesture was active.
func (c *Controller) Cancel() bool {
	had := c.active != nil
	c.active = nil
	return had
}

func (c *Controller) deltaDays(fromX, toX float64) int {
	if c.pixelWidth <= 0 || c.duration <= 0 {
		return 0
	}
	msPerPixel := float64(c.duration.Milliseconds()) / c.pixelWidth
	return int(math.Round((toX - fromX) * msPerPixel / msPerDay))
}

// ApplyDelta shifts [start, end] by days according to mode. Resizes clamp
// so that start never passes end; a fully collapsed bar is one day long.
func ApplyDelta(mode domain.GestureMode, start, end time.Time, days int) (time.Time, time.Time) {
	switch mode {
	case domain.GestureResizeStart:
		start = AddDays(start, days)
		if start.After(end) {
			start = end
		}
	case domain.GestureResizeEnd:
		end = AddDays(end, days)
		if end.Before(start) {
			end = start
		}
	default:
		start, end = AddDays(start, days), AddDays(end, days)
	}
	return start, end
}
