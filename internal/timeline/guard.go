package timeline

import (
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
)

// FindConflicts returns the cards of resourceKey, other than excludeID,
// whose validity shares a day with [start, end].
func FindConflicts(cards []*domain.PriceCard, resourceKey string, start, end time.Time, excludeID string) []*domain.PriceCard {
	var out []*domain.PriceCard
	for _, c := range cards {
		if c.ResourceKey() != resourceKey || (excludeID != "" && c.ID == excludeID) {
			continue
		}
		if Overlaps(start, end, c.StartDate, c.EndDate) {
			out = append(out, c)
		}
	}
	return out
}

// CheckOverlap reports whether [start, end] collides with any other card
// of the same resource.
func CheckOverlap(cards []*domain.PriceCard, resourceKey string, start, end time.Time, excludeID string) bool {
	return len(FindConflicts(cards, resourceKey, start, end, excludeID)) > 0
}

// Guard returns a *domain.OverlapError when [start, end] collides with a
// sibling card, nil otherwise.
func Guard(cards []*domain.PriceCard, resourceKey string, start, end time.Time, excludeID string) error {
	conflicts := FindConflicts(cards, resourceKey, start, end, excludeID)
	if len(conflicts) == 0 {
		return nil
	}
	sortByStart(conflicts)
	return &domain.OverlapError{
		ProductID: resourceKey,
		Start:     StartOfDay(start),
		End:       StartOfDay(end),
		Conflicts: conflicts,
	}
}

// FlagOverlaps marks every card that overlaps a sibling of the same
// resource. It is advisory and used for warning chips.
func FlagOverlaps(cards []*domain.PriceCard) map[string]bool {
	flagged := make(map[string]bool)
	for _, group := range GroupByResource(cards) {
		sorted := make([]*domain.PriceCard, len(group))
		copy(sorted, group)
		sortByStart(sorted)
		for i := range sorted {
			end := StartOfDay(sorted[i].EndDate)
			for j := i + 1; j < len(sorted); j++ {
				if StartOfDay(sorted[j].StartDate).After(end) {
					break
				}
				flagged[sorted[i].ID] = true
				flagged[sorted[j].ID] = true
			}
		}
	}
	return flagged
}
