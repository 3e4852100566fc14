package timeline

import (
	"testing"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout_RowsFollowResourceOrder(t *testing.T) {
	cards := []*domain.PriceCard{
		card("a1", "A", "2026-02-01", "2026-02-10"),
		card("a2", "A", "2026-02-05", "2026-02-12"),
		card("b1", "B", "2026-01-01", "2026-01-31"),
	}
	rows := Layout(LayoutInput{
		Resources: []Resource{{Key: "B", Label: "Grade B"}, {Key: "A", Label: "Grade A"}, {Key: "C", Label: "Grade C"}},
		Cards:     cards,
		Window:    febWindow(),
		Today:     d("2026-02-06"),
		Mapper:    Mapper{MinWidthPercent: DefaultMinWidthPercent},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "B", rows[0].Resource.Key)
	assert.Empty(t, rows[0].Lanes, "January card is outside the window")

	require.Len(t, rows[1].Lanes, 2)
	bar := rows[1].Lanes[0].Bars[0]
	assert.Equal(t, "a1", bar.Card.ID)
	assert.Equal(t, domain.StatusActive, bar.Status)
	assert.True(t, bar.Overlapping)
	assert.True(t, bar.Geometry.Visible)

	assert.Empty(t, rows[2].Lanes)
}

func TestLayout_PreviewMarksBar(t *testing.T) {
	c := NewController(nil)
	c.SetScale(febWindow(), 280)
	src := card("a1", "A", "2026-02-01", "2026-02-07")
	require.NoError(t, c.BeginGesture(domain.GestureDrag, src, 0))
	_, err := c.UpdateGesture(70)
	require.NoError(t, err)

	rows := Layout(LayoutInput{
		Resources: []Resource{{Key: "A"}},
		Cards:     []*domain.PriceCard{src},
		Window:    febWindow(),
		Today:     d("2026-02-01"),
		Mapper:    Mapper{},
		Preview:   c.Preview,
	})
	bar := rows[0].Lanes[0].Bars[0]
	assert.True(t, bar.Previewing)
	assert.InDelta(t, 25, bar.Geometry.Left, eps)
	assert.Equal(t, d("2026-02-01"), src.StartDate)
}
