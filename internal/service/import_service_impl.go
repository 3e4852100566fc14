package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/scalehouse/internal/app"
	"github.com/alexanderramin/scalehouse/internal/db"
	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/alexanderramin/scalehouse/internal/importer"
	"github.com/alexanderramin/scalehouse/internal/repository"
	"github.com/alexanderramin/scalehouse/internal/timeline"
)

type importService struct {
	uow       db.UnitOfWork
	now       func() time.Time
	changedBy string
	observer  UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, now func() time.Time, changedBy string, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:       uow,
		now:       clockOrNow(now),
		changedBy: changedBy,
		observer:  combineObservers(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*app.ImportResult, error) {
	schedule, err := importer.LoadSchedule(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchedule(ctx, schedule)
}

// ImportSchedule writes every card of the schedule or none. Each card is
// guarded against the stored cards and the cards imported before it.
func (s *importService) ImportSchedule(ctx context.Context, schedule *importer.Schedule) (result *app.ImportResult, err error) {
	fields := map[string]any{"products": len(schedule.Products)}
	defer observe(ctx, s.observer, "import-schedule", time.Now(), fields, &err)

	if errs := importer.ValidateSchedule(schedule); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	now := s.now().UTC()
	converted, err := importer.Convert(schedule, now, s.changedBy)
	if err != nil {
		return nil, fmt.Errorf("converting schedule: %w", err)
	}

	result = &app.ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		for _, p := range converted.Products {
			productID, err := s.ensureProduct(ctx, r, p, result)
			if err != nil {
				return err
			}

			existing, err := r.cards.ListByProduct(ctx, productID)
			if err != nil {
				return err
			}
			for _, c := range converted.CardsByCode[p.Code] {
				c.ProductID = productID
				if err := timeline.Guard(existing, productID, c.StartDate, c.EndDate, ""); err != nil {
					return fmt.Errorf("importing %s %s..%s: %w", p.Code,
						c.StartDate.Format(domain.DateLayout), c.EndDate.Format(domain.DateLayout), err)
				}
				if err := r.cards.Create(ctx, c); err != nil {
					return err
				}
				if err := r.history.Append(ctx, newHistory(domain.ActionCreate, nil, c, c.CreatedBy, now)); err != nil {
					return err
				}
				existing = append(existing, c)
				result.Cards = append(result.Cards, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["cards"] = len(result.Cards)
	return result, nil
}

func (s *importService) ensureProduct(ctx context.Context, r txRepos, p *domain.Product, result *app.ImportResult) (string, error) {
	existing, err := r.products.GetByCode(ctx, p.Code)
	if err == nil {
		result.ProductsReused++
		return existing.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if err := r.products.Create(ctx, p); err != nil {
		return "", fmt.Errorf("creating product %s: %w", p.Code, err)
	}
	result.ProductsCreated++
	return p.ID, nil
}

// Export returns the stored schedule, optionally limited to some product
// codes or IDs.
func (s *importService) Export(ctx context.Context, productScope []string) (*importer.Schedule, error) {
	var schedule *importer.Schedule
	err := s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		all, err := r.products.List(ctx)
		if err != nil {
			return err
		}
		products, err := scopeProducts(all, productScope, "")
		if err != nil {
			return err
		}
		var cards []*domain.PriceCard
		for _, p := range products {
			pc, err := r.cards.ListByProduct(ctx, p.ID)
			if err != nil {
				return err
			}
			cards = append(cards, pc...)
		}
		schedule = importer.FromDomain(products, cards)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}
