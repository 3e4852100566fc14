package timeline

import (
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
)

// Resource is a row of the timeline.
type Resource struct {
	Key   string
	Label string
}

// Bar is a card placed in a lane with its rendered position.
type Bar struct {
	Card        *domain.PriceCard
	Geometry    Geometry
	Status      domain.CardStatus
	Overlapping bool
	Previewing  bool
}

// Lane is a laid-out track.
type Lane struct {
	Index int
	Bars  []Bar
}

// Row holds every lane of one resource. A resource with no visible cards
// has zero lanes but is still listed.
type Row struct {
	Resource Resource
	Lanes    []Lane
}

// LayoutInput is everything needed to lay out one frame.
type LayoutInput struct {
	Resources []Resource
	Cards     []*domain.PriceCard
	Window    Window
	Today     time.Time
	Mapper    Mapper
	// Preview returns the in-flight offset for a card id, or nil.
	Preview func(cardID string) *Preview
}

// Layout runs the display pipeline: status, lanes, geometry and overlap
// flags for every resource in order.
func Layout(in LayoutInput) []Row {
	groups := GroupByResource(in.Cards)
	overlapping := FlagOverlaps(in.Cards)

	rows := make([]Row, 0, len(in.Resources))
	for _, res := range in.Resources {
		row := Row{Resource: res}
		for _, track := range AllocateTracks(groups[res.Key], in.Window.Start, in.Window.End) {
			lane := Lane{Index: track.Index, Bars: make([]Bar, 0, len(track.Cards))}
			for _, c := range track.Cards {
				var preview *Preview
				if in.Preview != nil {
					preview = in.Preview(c.ID)
				}
				lane.Bars = append(lane.Bars, Bar{
					Card:        c,
					Geometry:    in.Mapper.Map(c, in.Window, preview),
					Status:      ClassifyCard(c, in.Today),
					Overlapping: overlapping[c.ID],
					Previewing:  preview != nil && preview.Days != 0,
				})
			}
			row.Lanes = append(row.Lanes, lane)
		}
		rows = append(rows, row)
	}
	return rows
}
