package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/scalehouse/internal/db"
	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/alexanderramin/scalehouse/internal/repository"
	"github.com/alexanderramin/scalehouse/internal/timeline"
	"github.com/google/uuid"
)

type productService struct {
	products  repository.ProductRepo
	cards     repository.PriceCardRepo
	uow       db.UnitOfWork
	now       func() time.Time
	changedBy string
	observer  UseCaseObserver
}

func NewProductService(
	products repository.ProductRepo,
	cards repository.PriceCardRepo,
	uow db.UnitOfWork,
	now func() time.Time,
	changedBy string,
	observers ...UseCaseObserver,
) ProductService {
	return &productService{
		products:  products,
		cards:     cards,
		uow:       uow,
		now:       clockOrNow(now),
		changedBy: changedBy,
		observer:  combineObservers(observers),
	}
}

func (s *productService) Create(ctx context.Context, p *domain.Product) (err error) {
	defer observe(ctx, s.observer, "create-product", time.Now(), map[string]any{"code": p.Code}, &err)

	p.Code = domain.NormalizeCode(p.Code)
	if err = p.ValidateCode(); err != nil {
		return err
	}
	p.Name = domain.CoalesceStr(p.Name, p.Code)
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := s.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProducts := repository.NewSQLiteProductRepo(tx)
		if _, err := txProducts.GetByCode(ctx, p.Code); err == nil {
			return fmt.Errorf("%w: %s", ErrDuplicateProduct, p.Code)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return txProducts.Create(ctx, p)
	})
}

func (s *productService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *productService) GetByCode(ctx context.Context, code string) (*domain.Product, error) {
	return s.products.GetByCode(ctx, code)
}

func (s *productService) Resolve(ctx context.Context, ref string) (*domain.Product, error) {
	p, err := s.products.GetByCode(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.products.GetByID(ctx, ref)
}

func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

// Delete removes a product. Without force it refuses while cards exist;
// with force every card gets a DELETE history row before the cascade.
func (s *productService) Delete(ctx context.Context, id string, force bool) (err error) {
	defer observe(ctx, s.observer, "delete-product", time.Now(), map[string]any{"product_id": id, "force": force}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProducts := repository.NewSQLiteProductRepo(tx)
		txCards := repository.NewSQLitePriceCardRepo(tx)
		txHistory := repository.NewSQLitePriceHistoryRepo(tx)

		p, err := txProducts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		cards, err := txCards.ListByProduct(ctx, id)
		if err != nil {
			return err
		}
		if len(cards) > 0 && !force {
			return fmt.Errorf("%w: %s has %d (use --force to delete them too)", ErrProductHasCards, p.Code, len(cards))
		}

		now := s.now()
		for _, c := range cards {
			if err := txHistory.Append(ctx, newHistory(domain.ActionDelete, c, nil, s.changedBy, now)); err != nil {
				return err
			}
		}
		return txProducts.Delete(ctx, id)
	})
}

func (s *productService) CurrentPrice(ctx context.Context, productID string, day time.Time) (*domain.PriceCard, error) {
	cards, err := s.cards.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	var current *domain.PriceCard
	for _, c := range cards {
		if timeline.ClassifyCard(c, day) != domain.StatusActive {
			continue
		}
		// Overlaps are rejected on write; if a legacy row slipped through,
		// the most recently started card wins.
		if current == nil || c.StartDate.After(current.StartDate) {
			current = c
		}
	}
	return current, nil
}
