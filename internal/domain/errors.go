package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidRange is returned when a card would end before it starts.
	ErrInvalidRange = errors.New("start date is after end date")

	// ErrOverlapConflict marks a candidate range that shares at least one
	// day with another card of the same product.
	ErrOverlapConflict = errors.New("price validity overlaps an existing card")

	ErrNegativePrice = errors.New("unit price must not be negative")
)

// OverlapError reports which cards a candidate range collides with.
// errors.Is(err, ErrOverlapConflict) holds for every OverlapError.
type OverlapError struct {
	ProductID string
	Start     time.Time
	End       time.Time
	Conflicts []*PriceCard
}

func (e *OverlapError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s..%s @ %.2f",
			c.StartDate.Format(DateLayout), c.EndDate.Format(DateLayout), c.UnitPrice))
	}
	noun := "card"
	if len(e.Conflicts) != 1 {
		noun = "cards"
	}
	return fmt.Sprintf("%s: %s..%s conflicts with %d %s (%s)",
		ErrOverlapConflict.Error(),
		e.Start.Format(DateLayout), e.End.Format(DateLayout),
		len(e.Conflicts), noun, strings.Join(parts, ", "))
}

func (e *OverlapError) Unwrap() error { return ErrOverlapConflict }
