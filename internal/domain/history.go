package domain

import "time"

// PriceHistory is one audit row describing a change to a price card.
// Old* fields are nil on CREATE, New* fields are nil on DELETE.
type PriceHistory struct {
	ID           string
	PriceID      string
	ProductID    string
	Action       HistoryAction
	OldUnitPrice *float64
	NewUnitPrice *float64
	OldStartDate *time.Time
	NewStartDate *time.Time
	OldEndDate   *time.Time
	NewEndDate   *time.Time
	ChangedBy    string
	ChangedAt    time.Time
}

// NewHistoryEntry builds an audit row from the card before and after a change.
// Pass nil for before on CREATE and nil for after on DELETE.
func NewHistoryEntry(id string, action HistoryAction, before, after *PriceCard, by string, at time.Time) *PriceHistory {
	h := &PriceHistory{
		ID:        id,
		Action:    action,
		ChangedBy: by,
		ChangedAt: at,
	}
	if before != nil {
		h.PriceID = before.ID
		h.ProductID = before.ProductID
		price, start, end := before.UnitPrice, before.StartDate, before.EndDate
		h.OldUnitPrice, h.OldStartDate, h.OldEndDate = &price, &start, &end
	}
	if after != nil {
		h.PriceID = after.ID
		h.ProductID = after.ProductID
		price, start, end := after.UnitPrice, after.StartDate, after.EndDate
		h.NewUnitPrice, h.NewStartDate, h.NewEndDate = &price, &start, &end
	}
	return h
}
