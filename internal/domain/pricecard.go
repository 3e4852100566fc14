package domain

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar-date format used for storage, flags and files.
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar day, expressed as UTC midnight.
// All card bounds are kept in this form so day arithmetic never crosses
// a DST transition.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// PriceCard is a unit price for one product, valid on every day from
// StartDate to EndDate inclusive.
type PriceCard struct {
	ID        string
	ProductID string
	StartDate time.Time
	EndDate   time.Time
	UnitPrice float64
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated by repository joins for display only.
	ProductCode string
	ProductName string
}

// ResourceKey is the grouping key for track allocation and overlap checks.
func (c *PriceCard) ResourceKey() string {
	return c.ProductID
}

// Normalize truncates both bounds to calendar days and fills a missing
// end date with the start date.
func (c *PriceCard) Normalize() {
	c.StartDate = DateOf(c.StartDate)
	if c.EndDate.IsZero() {
		c.EndDate = c.StartDate
	}
	c.EndDate = DateOf(c.EndDate)
}

// Validate checks the invariants every persisted card must hold.
func (c *PriceCard) Validate() error {
	if c.ProductID == "" {
		return fmt.Errorf("product is required")
	}
	if c.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if math.IsNaN(c.UnitPrice) || math.IsInf(c.UnitPrice, 0) {
		return fmt.Errorf("unit price %v is not a number", c.UnitPrice)
	}
	if c.UnitPrice < 0 {
		return fmt.Errorf("%w (got %.2f)", ErrNegativePrice, c.UnitPrice)
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			c.StartDate.Format(DateLayout), c.EndDate.Format(DateLayout))
	}
	return nil
}

// DurationDays is the inclusive number of days the card covers.
func (c *PriceCard) DurationDays() int {
	return int(DateOf(c.EndDate).Sub(DateOf(c.StartDate)).Hours()/24) + 1
}

// DisplayID returns the first 8 characters of the card ID.
func (c *PriceCard) DisplayID() string {
	if len(c.ID) >= 8 {
		return c.ID[:8]
	}
	return c.ID
}

// Clone returns a shallow copy safe to mutate.
func (c *PriceCard) Clone() *PriceCard {
	cp := *c
	return &cp
}
