package timeline

import (
	"sort"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
)

// Track is one lane of a resource row. Cards within a track never overlap
// and are ordered by start date.
type Track struct {
	Index int
	Cards []*domain.PriceCard
}

// Last returns the most recently placed card.
func (t Track) Last() *domain.PriceCard {
	return t.Cards[len(t.Cards)-1]
}

// AllocateTracks assigns the cards of one resource group that intersect
// [windowStart, windowEnd] to lanes. Cards are taken in start order and
// each goes into the first lane whose last card ends strictly before the
// card's start day; otherwise a new lane is opened. The lane count equals
// the largest number of cards sharing a single day.
func AllocateTracks(cards []*domain.PriceCard, windowStart, windowEnd time.Time) []Track {
	visible := make([]*domain.PriceCard, 0, len(cards))
	for _, c := range cards {
		if Overlaps(c.StartDate, c.EndDate, windowStart, windowEnd) {
			visible = append(visible, c)
		}
	}
	sortByStart(visible)

	var tracks []Track
	for _, c := range visible {
		start := StartOfDay(c.StartDate)
		placed := false
		for i := range tracks {
			if start.After(StartOfDay(tracks[i].Last().EndDate)) {
				tracks[i].Cards = append(tracks[i].Cards, c)
				placed = true
				break
			}
		}
		if !placed {
			tracks = append(tracks, Track{Index: len(tracks), Cards: []*domain.PriceCard{c}})
		}
	}
	return tracks
}

// sortByStart orders cards by start, then end, then ID so layouts are
// deterministic across renders.
func sortByStart(cards []*domain.PriceCard) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		if !a.EndDate.Equal(b.EndDate) {
			return a.EndDate.Before(b.EndDate)
		}
		return a.ID < b.ID
	})
}

// GroupByResource partitions cards by ResourceKey. Input order is kept
// within each group.
func GroupByResource(cards []*domain.PriceCard) map[string][]*domain.PriceCard {
	groups := make(map[string][]*domain.PriceCard)
	for _, c := range cards {
		key := c.ResourceKey()
		groups[key] = append(groups[key], c)
	}
	return groups
}
