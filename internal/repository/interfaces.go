package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
)

// ErrNotFound is returned (wrapped) by lookups that match no row.
var ErrNotFound = errors.New("not found")

// PriceCardFilter narrows List. Zero fields match everything.
type PriceCardFilter struct {
	ProductID string
	// Search matches a substring of the product code or name,
	// case-insensitively.
	Search string
	// From and To keep only cards whose validity shares a day with
	// [From, To]. Either bound may be nil.
	From *time.Time
	To   *time.Time
}

type ProductRepo interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByCode(ctx context.Context, code string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type PriceCardRepo interface {
	Create(ctx context.Context, c *domain.PriceCard) error
	GetByID(ctx context.Context, id string) (*domain.PriceCard, error)
	ListByProduct(ctx context.Context, productID string) ([]*domain.PriceCard, error)
	List(ctx context.Context, f PriceCardFilter) ([]*domain.PriceCard, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
	Update(ctx context.Context, c *domain.PriceCard) error
	Delete(ctx context.Context, id string) error
}

type PriceHistoryRepo interface {
	Append(ctx context.Context, h *domain.PriceHistory) error
	ListByPrice(ctx context.Context, priceID string) ([]*domain.PriceHistory, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.PriceHistory, error)
}
