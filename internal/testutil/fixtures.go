package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/google/uuid"
)

var testCodeCounter atomic.Int64

// Day parses a YYYY-MM-DD literal and panics on malformed input.
func Day(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Product options
type ProductOption func(*domain.Product)

func WithCode(code string) ProductOption {
	return func(p *domain.Product) {
		p.Code = domain.NormalizeCode(code)
	}
}

// NewTestProduct builds an unsaved product with a unique code.
func NewTestProduct(name string, opts ...ProductOption) *domain.Product {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Product{
		ID:        uuid.New().String(),
		Code:      fmt.Sprintf("TEST-%03d", testCodeCounter.Add(1)),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Price card options
type PriceCardOption func(*domain.PriceCard)

func WithRange(start, end string) PriceCardOption {
	return func(c *domain.PriceCard) {
		c.StartDate = Day(start)
		c.EndDate = Day(end)
	}
}

func WithUnitPrice(price float64) PriceCardOption {
	return func(c *domain.PriceCard) {
		c.UnitPrice = price
	}
}

func WithCreatedBy(by string) PriceCardOption {
	return func(c *domain.PriceCard) {
		c.CreatedBy = by
	}
}

// NewTestPriceCard builds an unsaved card for productID valid for the
// first week of January 2026 unless overridden.
func NewTestPriceCard(productID string, opts ...PriceCardOption) *domain.PriceCard {
	now := time.Now().UTC().Truncate(time.Second)
	c := &domain.PriceCard{
		ID:        uuid.New().String(),
		ProductID: productID,
		StartDate: Day("2026-01-01"),
		EndDate:   Day("2026-01-07"),
		UnitPrice: 42.5,
		CreatedBy: "test",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
