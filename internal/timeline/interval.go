// Package timeline lays price cards out on a resource timeline: day-granular
// interval math, greedy lane allocation, zoomable calendar windows, bar
// geometry, the pointer gesture state machine and the overlap guard.
//
// Everything here is pure and synchronous. Callers re-run it on every
// render or pointer move; nothing is cached between calls.
package timeline

import (
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
)

const day = 24 * time.Hour

// Clock returns the current wall-clock time. Injected so "today" can be
// pinned in tests.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// StartOfDay returns midnight of t's calendar day (UTC-normalized).
func StartOfDay(t time.Time) time.Time {
	return domain.DateOf(t)
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return domain.DateOf(t).Add(day - time.Nanosecond)
}

// AddDays shifts a calendar day by n days.
func AddDays(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// Overlaps reports whether the closed day ranges [aStart, aEnd] and
// [bStart, bEnd] share at least one calendar day. Ranges that touch on a
// boundary day overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	s1, e1 := StartOfDay(aStart), EndOfDay(aEnd)
	s2, e2 := StartOfDay(bStart), EndOfDay(bEnd)
	return s1.Before(e2) && s2.Before(e1)
}

// ClassifyStatus places today relative to [start, end] at day granularity.
func ClassifyStatus(today, start, end time.Time) domain.CardStatus {
	t := StartOfDay(today)
	switch {
	case t.Before(StartOfDay(start)):
		return domain.StatusUpcoming
	case t.After(StartOfDay(end)):
		return domain.StatusExpired
	default:
		return domain.StatusActive
	}
}

// ClassifyCard is ClassifyStatus applied to a card's validity range.
func ClassifyCard(c *domain.PriceCard, today time.Time) domain.CardStatus {
	return ClassifyStatus(today, c.StartDate, c.EndDate)
}

// DaysBetween counts the days from a to b inclusive (b - a + 1).
// It is zero or negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a))/day) + 1
}

// DaysLeft returns how many days an active card still covers, counting
// today. Upcoming and expired cards return 0.
func DaysLeft(c *domain.PriceCard, today time.Time) int {
	if ClassifyCard(c, today) != domain.StatusActive {
		return 0
	}
	return DaysBetween(today, c.EndDate)
}
