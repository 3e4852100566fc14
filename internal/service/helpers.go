package service

import (
	"fmt"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/google/uuid"
)

func clockOrNow(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

func newHistory(action domain.HistoryAction, before, after *domain.PriceCard, by string, at time.Time) *domain.PriceHistory {
	return domain.NewHistoryEntry(uuid.New().String(), action, before, after, by, at.UTC())
}

func sameBounds(a, b *domain.PriceCard) bool {
	return a.StartDate.Equal(b.StartDate) && a.EndDate.Equal(b.EndDate)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
