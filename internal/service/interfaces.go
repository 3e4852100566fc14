package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/scalehouse/internal/app"
	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/alexanderramin/scalehouse/internal/repository"
)

var (
	ErrDuplicateProduct = errors.New("product code already exists")
	ErrProductHasCards  = errors.New("product still has price cards")
)

type ProductService interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByCode(ctx context.Context, code string) (*domain.Product, error)
	// Resolve accepts a product code or ID.
	Resolve(ctx context.Context, ref string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Delete(ctx context.Context, id string, force bool) error
	// CurrentPrice returns the card active on day, or nil when none is.
	CurrentPrice(ctx context.Context, productID string, day time.Time) (*domain.PriceCard, error)
}

// CardListFilter extends the storage filter with a status computed
// against today. An empty Status matches every card.
type CardListFilter struct {
	repository.PriceCardFilter
	Status domain.CardStatus
}

// CardSummary is a card with the fields derived for list views.
type CardSummary struct {
	Card        *domain.PriceCard
	Status      domain.CardStatus
	DaysLeft    int
	Overlapping bool
}

type PriceCardService interface {
	app.RescheduleUseCase

	Create(ctx context.Context, c *domain.PriceCard) error
	GetByID(ctx context.Context, id string) (*domain.PriceCard, error)
	List(ctx context.Context, f CardListFilter) ([]CardSummary, error)
	Update(ctx context.Context, c *domain.PriceCard) error
	// Move shifts a card by whole days the same way a pointer gesture does.
	Move(ctx context.Context, id string, mode domain.GestureMode, days int) (*domain.PriceCard, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (*domain.PriceCard, error)
	History(ctx context.Context, id string) ([]*domain.PriceHistory, error)
	RecentHistory(ctx context.Context, limit int) ([]*domain.PriceHistory, error)
	CheckOverlap(ctx context.Context, productID string, start, end time.Time, excludeID string) ([]*domain.PriceCard, error)
}

type TimelineService interface {
	app.BoardUseCase
}

type ImportService interface {
	app.ImportScheduleUseCase
	app.ExportScheduleUseCase
}
