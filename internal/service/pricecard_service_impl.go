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

type priceCardService struct {
	cards     repository.PriceCardRepo
	history   repository.PriceHistoryRepo
	uow       db.UnitOfWork
	now       func() time.Time
	changedBy string
	observer  UseCaseObserver
}

func NewPriceCardService(
	cards repository.PriceCardRepo,
	history repository.PriceHistoryRepo,
	uow db.UnitOfWork,
	now func() time.Time,
	changedBy string,
	observers ...UseCaseObserver,
) PriceCardService {
	return &priceCardService{
		cards:     cards,
		history:   history,
		uow:       uow,
		now:       clockOrNow(now),
		changedBy: changedBy,
		observer:  combineObservers(observers),
	}
}

// txRepos are the repositories bound to one transaction.
type txRepos struct {
	products *repository.SQLiteProductRepo
	cards    *repository.SQLitePriceCardRepo
	history  *repository.SQLitePriceHistoryRepo
}

func newTxRepos(tx db.DBTX) txRepos {
	return txRepos{
		products: repository.NewSQLiteProductRepo(tx),
		cards:    repository.NewSQLitePriceCardRepo(tx),
		history:  repository.NewSQLitePriceHistoryRepo(tx),
	}
}

// guard rejects c when it shares a day with another card of its product.
func (r txRepos) guard(ctx context.Context, c *domain.PriceCard, excludeID string) error {
	siblings, err := r.cards.ListByProduct(ctx, c.ProductID)
	if err != nil {
		return err
	}
	return timeline.Guard(siblings, c.ResourceKey(), c.StartDate, c.EndDate, excludeID)
}

// Create stores c as a new card. The caller's card only receives its ID
// and timestamps once the write has committed.
func (s *priceCardService) Create(ctx context.Context, c *domain.PriceCard) (err error) {
	fields := map[string]any{"product_id": c.ProductID}
	defer observe(ctx, s.observer, "create-price", time.Now(), fields, &err)

	card := c.Clone()
	card.Normalize()
	if err = card.Validate(); err != nil {
		return err
	}
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	now := s.now().UTC()
	card.CreatedBy = domain.CoalesceStr(card.CreatedBy, s.changedBy)
	card.CreatedAt = now
	card.UpdatedAt = now
	fields["card_id"] = card.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		if _, err := r.products.GetByID(ctx, card.ProductID); err != nil {
			return err
		}
		if err := r.guard(ctx, card, ""); err != nil {
			return err
		}
		if err := r.cards.Create(ctx, card); err != nil {
			return err
		}
		return r.history.Append(ctx, newHistory(domain.ActionCreate, nil, card, s.changedBy, now))
	})
	if err != nil {
		return err
	}
	*c = *card
	return nil
}

func (s *priceCardService) GetByID(ctx context.Context, id string) (*domain.PriceCard, error) {
	return s.cards.GetByID(ctx, id)
}

func (s *priceCardService) List(ctx context.Context, f CardListFilter) ([]CardSummary, error) {
	cards, err := s.cards.List(ctx, f.PriceCardFilter)
	if err != nil {
		return nil, err
	}
	// Overlap flags look at every card of the product, not only the
	// filtered page.
	all, err := s.cards.List(ctx, repository.PriceCardFilter{ProductID: f.ProductID})
	if err != nil {
		return nil, err
	}
	flags := timeline.FlagOverlaps(all)
	today := domain.DateOf(s.now())

	out := make([]CardSummary, 0, len(cards))
	for _, c := range cards {
		status := timeline.ClassifyCard(c, today)
		if f.Status != "" && status != f.Status {
			continue
		}
		out = append(out, CardSummary{
			Card:        c,
			Status:      status,
			DaysLeft:    timeline.DaysLeft(c, today),
			Overlapping: flags[c.ID],
		})
	}
	return out, nil
}

// Update replaces price and bounds of an existing card. Product and
// creation fields of the stored card are kept.
func (s *priceCardService) Update(ctx context.Context, c *domain.PriceCard) (err error) {
	defer observe(ctx, s.observer, "update-price", time.Now(), map[string]any{"card_id": c.ID}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		before, err := r.cards.GetByID(ctx, c.ID)
		if err != nil {
			return err
		}

		after := before.Clone()
		after.StartDate, after.EndDate, after.UnitPrice = c.StartDate, c.EndDate, c.UnitPrice
		after.Normalize()
		if err := after.Validate(); err != nil {
			return err
		}
		if sameBounds(before, after) && before.UnitPrice == after.UnitPrice {
			*c = *before
			return nil
		}
		if err := r.guard(ctx, after, after.ID); err != nil {
			return err
		}

		now := s.now().UTC()
		after.UpdatedAt = now
		if err := r.cards.Update(ctx, after); err != nil {
			return err
		}
		if err := r.history.Append(ctx, newHistory(domain.ActionUpdate, before, after, s.changedBy, now)); err != nil {
			return err
		}
		*c = *after
		return nil
	})
}

// Reschedule is the commit path of drag and resize gestures. Unchanged
// bounds are a no-op and write no history.
func (s *priceCardService) Reschedule(ctx context.Context, cardID string, start, end time.Time) (card *domain.PriceCard, err error) {
	fields := map[string]any{
		"card_id": cardID,
		"start":   start.Format(domain.DateLayout),
		"end":     end.Format(domain.DateLayout),
	}
	defer observe(ctx, s.observer, "reschedule-price", time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		before, err := r.cards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}

		after := before.Clone()
		after.StartDate, after.EndDate = start, end
		after.Normalize()
		if err := after.Validate(); err != nil {
			return err
		}
		if sameBounds(before, after) {
			card = before
			return nil
		}
		if err := r.guard(ctx, after, after.ID); err != nil {
			return err
		}

		now := s.now().UTC()
		after.UpdatedAt = now
		if err := r.cards.Update(ctx, after); err != nil {
			return err
		}
		if err := r.history.Append(ctx, newHistory(domain.ActionUpdate, before, after, s.changedBy, now)); err != nil {
			return err
		}
		card = after
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *priceCardService) Move(ctx context.Context, id string, mode domain.GestureMode, days int) (*domain.PriceCard, error) {
	if _, ok := domain.ParseGestureMode(string(mode)); !ok {
		return nil, fmt.Errorf("unknown move mode %q (use drag, resize-start or resize-end)", mode)
	}
	c, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	start, end := timeline.ApplyDelta(mode, c.StartDate, c.EndDate, days)
	return s.Reschedule(ctx, id, start, end)
}

func (s *priceCardService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-price", time.Now(), map[string]any{"card_id": id}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		before, err := r.cards.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.cards.Delete(ctx, id); err != nil {
			return err
		}
		return r.history.Append(ctx, newHistory(domain.ActionDelete, before, nil, s.changedBy, s.now()))
	})
}

// Duplicate copies a card onto the days right after it, keeping price and
// duration. The copy is guarded like any new card.
func (s *priceCardService) Duplicate(ctx context.Context, id string) (card *domain.PriceCard, err error) {
	fields := map[string]any{"source_id": id}
	defer observe(ctx, s.observer, "duplicate-price", time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		src, err := r.cards.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		cp := src.Clone()
		cp.ID = uuid.New().String()
		cp.StartDate = timeline.AddDays(src.EndDate, 1)
		cp.EndDate = timeline.AddDays(cp.StartDate, src.DurationDays()-1)
		cp.CreatedBy = s.changedBy
		cp.CreatedAt = now
		cp.UpdatedAt = now
		fields["card_id"] = cp.ID

		if err := r.guard(ctx, cp, ""); err != nil {
			return err
		}
		if err := r.cards.Create(ctx, cp); err != nil {
			return err
		}
		if err := r.history.Append(ctx, newHistory(domain.ActionCreate, nil, cp, s.changedBy, now)); err != nil {
			return err
		}
		card = cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// History returns the audit trail of a card, including cards that have
// since been deleted.
func (s *priceCardService) History(ctx context.Context, id string) ([]*domain.PriceHistory, error) {
	entries, err := s.history.ListByPrice(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		if _, err := s.cards.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (s *priceCardService) RecentHistory(ctx context.Context, limit int) ([]*domain.PriceHistory, error) {
	return s.history.ListRecent(ctx, limit)
}

func (s *priceCardService) CheckOverlap(ctx context.Context, productID string, start, end time.Time, excludeID string) ([]*domain.PriceCard, error) {
	cards, err := s.cards.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	err = timeline.Guard(cards, productID, domain.DateOf(start), domain.DateOf(end), excludeID)
	var oe *domain.OverlapError
	if errors.As(err, &oe) {
		return oe.Conflicts, nil
	}
	return nil, err
}
