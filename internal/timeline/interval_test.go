package timeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/stretchr/testify/assert"
)

func d(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func card(id, product, start, end string) *domain.PriceCard {
	return &domain.PriceCard{ID: id, ProductID: product, StartDate: d(start), EndDate: d(end), UnitPrice: 100}
}

func TestOverlaps_TouchingBoundaryDay(t *testing.T) {
	assert.True(t, Overlaps(d("2026-01-01"), d("2026-01-10"), d("2026-01-10"), d("2026-01-15")))
}

func TestOverlaps_AdjacentDaysDoNotOverlap(t *testing.T) {
	assert.False(t, Overlaps(d("2026-01-01"), d("2026-01-09"), d("2026-01-10"), d("2026-01-15")))
}

func TestOverlaps_MonthAndYearBoundaries(t *testing.T) {
	assert.True(t, Overlaps(d("2025-12-01"), d("2025-12-31"), d("2025-12-31"), d("2026-01-31")))
	assert.False(t, Overlaps(d("2025-12-01"), d("2025-12-31"), d("2026-01-01"), d("2026-01-31")))
	assert.True(t, Overlaps(d("2028-02-29"), d("2028-02-29"), d("2028-02-01"), d("2028-02-29")))
}

func TestOverlaps_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, 1, 9, 23, 59, 0, 0, time.UTC)
	early := time.Date(2026, 1, 10, 0, 1, 0, 0, time.UTC)
	assert.False(t, Overlaps(d("2026-01-01"), late, early, d("2026-01-15")))
	assert.True(t, Overlaps(d("2026-01-01"), early, d("2026-01-10"), d("2026-01-15")))
}

func TestOverlaps_Containment(t *testing.T) {
	assert.True(t, Overlaps(d("2026-01-01"), d("2026-01-31"), d("2026-01-10"), d("2026-01-12")))
	assert.True(t, Overlaps(d("2026-01-10"), d("2026-01-12"), d("2026-01-01"), d("2026-01-31")))
}

func TestOverlaps_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := d("2026-01-01")
	for trial := 0; trial < 500; trial++ {
		a := AddDays(base, rng.Intn(60))
		b := AddDays(a, rng.Intn(20))
		c := AddDays(base, rng.Intn(60))
		e := AddDays(c, rng.Intn(20))
		assert.Equal(t, Overlaps(a, b, c, e), Overlaps(c, e, a, b), "trial %d", trial)
	}
}

func TestClassifyStatus_Boundaries(t *testing.T) {
	today := d("2026-01-10")
	assert.Equal(t, domain.StatusActive, ClassifyStatus(today, d("2026-01-10"), d("2026-01-20")))
	assert.Equal(t, domain.StatusUpcoming, ClassifyStatus(today, d("2026-01-11"), d("2026-01-20")))
	assert.Equal(t, domain.StatusExpired, ClassifyStatus(today, d("2026-01-01"), d("2026-01-09")))
	assert.Equal(t, domain.StatusActive, ClassifyStatus(today, d("2026-01-01"), d("2026-01-10")))
}

func TestClassifyStatus_IgnoresTimeOfDay(t *testing.T) {
	lateEvening := time.Date(2026, 1, 20, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, domain.StatusActive, ClassifyStatus(lateEvening, d("2026-01-10"), d("2026-01-20")))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 1, DaysBetween(d("2026-01-10"), d("2026-01-10")))
	assert.Equal(t, 15, DaysBetween(d("2026-01-01"), d("2026-01-15")))
	assert.Equal(t, 29, DaysBetween(d("2028-02-01"), d("2028-02-29")))
	assert.Equal(t, 0, DaysBetween(d("2026-01-10"), d("2026-01-09")))
}

func TestDaysLeft(t *testing.T) {
	c := card("c", "p", "2026-01-01", "2026-01-15")
	assert.Equal(t, 6, DaysLeft(c, d("2026-01-10")))
	assert.Equal(t, 1, DaysLeft(c, d("2026-01-15")))
	assert.Equal(t, 0, DaysLeft(c, d("2026-01-16")))
	assert.Equal(t, 0, DaysLeft(c, d("2025-12-31")))
}

func TestEndOfDay(t *testing.T) {
	e := EndOfDay(d("2026-01-10"))
	assert.True(t, SameDay(e, d("2026-01-10")))
	assert.True(t, e.Add(time.Nanosecond).Equal(d("2026-01-11")))
}
