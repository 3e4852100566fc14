package timeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commitCall struct {
	id         string
	start, end time.Time
}

// newTestController returns a controller scaled to 10px per day over
// February 2026 and a pointer to the commits it has made.
func newTestController() (*Controller, *[]commitCall) {
	var calls []commitCall
	c := NewController(func(id string, start, end time.Time) {
		calls = append(calls, commitCall{id, start, end})
	})
	c.SetScale(febWindow(), 280)
	return c, &calls
}

func TestGesture_ZeroMovementIsNoop(t *testing.T) {
	c, calls := newTestController()
	src := card("c1", "p", "2026-02-10", "2026-02-12")

	require.NoError(t, c.BeginGesture(domain.GestureDrag, src, 100))
	res, err := c.EndGesture(100)
	require.NoError(t, err)

	assert.False(t, res.Committed)
	assert.Empty(t, *calls)
	_, active := c.Active()
	assert.False(t, active)
}

func TestGesture_SubHalfDayMovementSnapsToZero(t *testing.T) {
	c, calls := newTestController()
	require.NoError(t, c.BeginGesture(domain.GestureDrag, card("c1", "p", "2026-02-10", "2026-02-12"), 100))
	res, err := c.EndGesture(104)
	require.NoError(t, err)
	assert.False(t, res.Committed)
	assert.Empty(t, *calls)
}

func TestGesture_DragShiftsBothBounds(t *testing.T) {
	c, calls := newTestController()
	src := card("c1", "p", "2026-02-10", "2026-02-12")

	require.NoError(t, c.BeginGesture(domain.GestureDrag, src, 100))
	res, err := c.EndGesture(130)
	require.NoError(t, err)

	require.True(t, res.Committed)
	assert.Equal(t, 3, res.DeltaDays)
	assert.Equal(t, d("2026-02-13"), res.NewStart)
	assert.Equal(t, d("2026-02-15"), res.NewEnd)
	assert.Equal(t, DaysBetween(src.StartDate, src.EndDate), DaysBetween(res.NewStart, res.NewEnd))
	require.Len(t, *calls, 1)
	assert.Equal(t, commitCall{"c1", d("2026-02-13"), d("2026-02-15")}, (*calls)[0])

	assert.Equal(t, d("2026-02-10"), src.StartDate, "source card is never mutated")
}

func TestGesture_DragBackwards(t *testing.T) {
	c, _ := newTestController()
	require.NoError(t, c.BeginGesture(domain.GestureDrag, card("c1", "p", "2026-02-10", "2026-02-12"), 100))
	res, err := c.EndGesture(52)
	require.NoError(t, err)
	assert.Equal(t, -5, res.DeltaDays)
	assert.Equal(t, d("2026-02-05"), res.NewStart)
	assert.Equal(t, d("2026-02-07"), res.NewEnd)
}

func TestGesture_ResizeStartPastEndClamps(t *testing.T) {
	c, _ := newTestController()
	require.NoError(t, c.BeginGesture(domain.GestureResizeStart, card("c1", "p", "2026-02-10", "2026-02-12"), 100))
	res, err := c.EndGesture(200)
	require.NoError(t, err)

	require.True(t, res.Committed)
	assert.Equal(t, d("2026-02-12"), res.NewStart)
	assert.Equal(t, d("2026-02-12"), res.NewEnd)
	assert.False(t, res.NewStart.After(res.NewEnd))
}

func TestGesture_ReleaseWithoutMotionUsesReleasePoint(t *testing.T) {
	c, calls := newTestController()
	require.NoError(t, c.BeginGesture(domain.GestureResizeEnd, card("c1", "p", "2026-02-10", "2026-02-12"), 100))

	res, err := c.EndGesture(150)
	require.NoError(t, err)
	require.True(t, res.Committed)
	assert.Equal(t, 5, res.DeltaDays)
	assert.Equal(t, d("2026-02-17"), res.NewEnd)
	require.Len(t, *calls, 1)

	_, active := c.Active()
	assert.False(t, active)
	_, err = c.EndGesture(150)
	assert.ErrorIs(t, err, ErrNoActiveGesture)
}

func TestGesture_ClampBackToSnapshotIsNoop(t *testing.T) {
	tests := []struct {
		name  string
		mode  domain.GestureMode
		start string
		end   string
		to    float64
	}{
		{name: "resize-start on one-day card", mode: domain.GestureResizeStart, start: "2026-02-10", end: "2026-02-10", to: 130},
		{name: "resize-end on one-day card", mode: domain.GestureResizeEnd, start: "2026-02-10", end: "2026-02-10", to: 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, calls := newTestController()
			require.NoError(t, c.BeginGesture(tt.mode, card("c1", "p", tt.start, tt.end), 100))

			res, err := c.EndGesture(tt.to)
			require.NoError(t, err)
			assert.False(t, res.Committed)
			assert.NotZero(t, res.DeltaDays)
			assert.True(t, res.NewStart.IsZero())
			assert.Empty(t, *calls)
			_, active := c.Active()
			assert.False(t, active)
		})
	}
}

func TestGesture_ResizeEndBeforeStartClamps(t *testing.T) {
	c, _ := newTestController()
	require.NoError(t, c.BeginGesture(domain.GestureResizeEnd, card("c1", "p", "2026-02-10", "2026-02-12"), 100))
	res, err := c.EndGesture(0)
	require.NoError(t, err)
	assert.Equal(t, d("2026-02-10"), res.NewStart)
	assert.Equal(t, d("2026-02-10"), res.NewEnd)
}

func TestGesture_ResizeEndExtends(t *testing.T) {
	c, _ := newTestController()
	require.NoError(t, c.BeginGesture(domain.GestureResizeEnd, card("c1", "p", "2026-02-10", "2026-02-12"), 100))
	res, err := c.EndGesture(120)
	require.NoError(t, err)
	assert.Equal(t, d("2026-02-10"), res.NewStart)
	assert.Equal(t, d("2026-02-14"), res.NewEnd)
}

func TestGesture_UpdateFeedsPreviewOnly(t *testing.T) {
	c, calls := newTestController()
	src := card("c1", "p", "2026-02-10", "2026-02-12")
	require.NoError(t, c.BeginGesture(domain.GestureDrag, src, 100))

	days, err := c.UpdateGesture(120)
	require.NoError(t, err)
	assert.Equal(t, 2, days)

	p := c.Preview("c1")
	require.NotNil(t, p)
	assert.Equal(t, Preview{Mode: domain.GestureDrag, Days: 2}, *p)
	assert.Nil(t, c.Preview("other"))
	assert.Empty(t, *calls)

	g, active := c.Active()
	require.True(t, active)
	assert.Equal(t, d("2026-02-10"), g.InitialStart)
	assert.Equal(t, 100.0, g.InitialX)
}

func TestGesture_EndRecomputesFromReleasePoint(t *testing.T) {
	c, _ := newTestController()
	require.NoError(t, c.BeginGesture(domain.GestureDrag, card("c1", "p", "2026-02-10", "2026-02-12"), 100))
	_, _ = c.UpdateGesture(150)
	res, err := c.EndGesture(100)
	require.NoError(t, err)
	assert.False(t, res.Committed)
}

func TestGesture_SnapshotIgnoresLaterCardEdits(t *testing.T) {
	c, _ := newTestController()
	src := card("c1", "p", "2026-02-10", "2026-02-12")
	require.NoError(t, c.BeginGesture(domain.GestureDrag, src, 100))
	src.StartDate = d("2026-02-01")
	res, err := c.EndGesture(110)
	require.NoError(t, err)
	assert.Equal(t, d("2026-02-11"), res.NewStart)
}

func TestGesture_ScaleFollowsZoom(t *testing.T) {
	c, _ := newTestController()
	year := ProjectWindow(domain.ZoomYear, d("2026-02-15"), WindowOptions{})
	c.SetScale(year, 365)

	require.NoError(t, c.BeginGesture(domain.GestureDrag, card("c1", "p", "2026-02-10", "2026-02-12"), 10))
	res, err := c.EndGesture(40)
	require.NoError(t, err)
	assert.Equal(t, 30, res.DeltaDays)
}

func TestGesture_NoScaleNeverMoves(t *testing.T) {
	c := NewController(nil)
	require.NoError(t, c.BeginGesture(domain.GestureDrag, card("c1", "p", "2026-02-10", "2026-02-12"), 0))
	res, err := c.EndGesture(500)
	require.NoError(t, err)
	assert.False(t, res.Committed)
}

func TestGesture_WithoutBeginIsProgrammerError(t *testing.T) {
	c, _ := newTestController()
	_, err := c.UpdateGesture(10)
	assert.ErrorIs(t, err, ErrNoActiveGesture)
	_, err = c.EndGesture(10)
	assert.ErrorIs(t, err, ErrNoActiveGesture)
}

func TestGesture_SecondBeginRejected(t *testing.T) {
	c, _ := newTestController()
	require.NoError(t, c.BeginGesture(domain.GestureDrag, card("c1", "p", "2026-02-10", "2026-02-12"), 0))
	err := c.BeginGesture(domain.GestureResizeEnd, card("c2", "p", "2026-02-20", "2026-02-22"), 0)
	assert.ErrorIs(t, err, ErrGestureInProgress)

	g, _ := c.Active()
	assert.Equal(t, "c1", g.CardID)
}

func TestGesture_UnknownModeRejected(t *testing.T) {
	c, _ := newTestController()
	assert.Error(t, c.BeginGesture("spin", card("c1", "p", "2026-02-10", "2026-02-12"), 0))
	_, active := c.Active()
	assert.False(t, active)
}

func TestGesture_CancelDiscards(t *testing.T) {
	c, calls := newTestController()
	require.NoError(t, c.BeginGesture(domain.GestureDrag, card("c1", "p", "2026-02-10", "2026-02-12"), 100))
	_, _ = c.UpdateGesture(200)

	assert.True(t, c.Cancel())
	assert.False(t, c.Cancel())
	assert.Nil(t, c.Preview("c1"))
	assert.Empty(t, *calls)
	_, err := c.EndGesture(200)
	assert.ErrorIs(t, err, ErrNoActiveGesture)
}
