package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/scalehouse/internal/db"
	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/alexanderramin/scalehouse/internal/repository"
	"github.com/alexanderramin/scalehouse/internal/testutil"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

type fixture struct {
	db       *sql.DB
	products ProductService
	prices   PriceCardService
	board    TimelineService
	imports  ImportService
	cardRepo *repository.SQLitePriceCardRepo
	history  *repository.SQLitePriceHistoryRepo
	observer *recordingObserver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newFixtureWithUoW(t, database, testutil.NewTestUoW(database))
}

func newFixtureWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *fixture {
	t.Helper()
	productRepo := repository.NewSQLiteProductRepo(database)
	cardRepo := repository.NewSQLitePriceCardRepo(database)
	historyRepo := repository.NewSQLitePriceHistoryRepo(database)
	obs := &recordingObserver{}
	return &fixture{
		db:       database,
		products: NewProductService(productRepo, cardRepo, uow, fixedClock, "clerk", obs),
		prices:   NewPriceCardService(cardRepo, historyRepo, uow, fixedClock, "clerk", obs),
		board:    NewTimelineService(uow, fixedClock, obs),
		imports:  NewImportService(uow, fixedClock, "clerk", obs),
		cardRepo: cardRepo,
		history:  historyRepo,
		observer: obs,
	}
}

func (f *fixture) product(t *testing.T, code string) *domain.Product {
	t.Helper()
	p := &domain.Product{Code: code, Name: "Product " + code}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) card(t *testing.T, p *domain.Product, start, end string, price float64) *domain.PriceCard {
	t.Helper()
	c := &domain.PriceCard{
		ProductID: p.ID,
		StartDate: testutil.Day(start),
		EndDate:   testutil.Day(end),
		UnitPrice: price,
	}
	require.NoError(t, f.prices.Create(context.Background(), c))
	return c
}

func (f *fixture) historyOf(t *testing.T, cardID string) []*domain.PriceHistory {
	t.Helper()
	entries, err := f.history.ListByPrice(context.Background(), cardID)
	require.NoError(t, err)
	return entries
}
