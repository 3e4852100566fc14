package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/scalehouse/internal/app"
	"github.com/alexanderramin/scalehouse/internal/db"
	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/alexanderramin/scalehouse/internal/repository"
	"github.com/alexanderramin/scalehouse/internal/timeline"
)

type timelineService struct {
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

func NewTimelineService(uow db.UnitOfWork, now func() time.Time, observers ...UseCaseObserver) TimelineService {
	return &timelineService{
		uow:      uow,
		now:      clockOrNow(now),
		observer: combineObservers(observers),
	}
}

// Board runs the display pipeline for one window: fetch, classify, project,
// allocate tracks, map geometry and flag overlaps. Products and cards are
// read from the same snapshot.
func (s *timelineService) Board(ctx context.Context, req app.BoardRequest) (resp *app.BoardResponse, err error) {
	fields := map[string]any{"zoom": string(req.Zoom)}
	defer observe(ctx, s.observer, "board", time.Now(), fields, &err)

	zoom := req.Zoom
	if zoom == "" {
		zoom = domain.ZoomMonth
	}
	if _, ok := domain.ParseZoomLevel(string(zoom)); !ok {
		return nil, &app.BoardError{Code: app.BoardErrInvalidZoom, Message: fmt.Sprintf("unknown zoom %q", req.Zoom)}
	}
	if req.Status != "" && !domain.ValidCardStatuses[string(req.Status)] {
		return nil, &app.BoardError{Code: app.BoardErrInvalidStatus, Message: fmt.Sprintf("unknown status %q", req.Status)}
	}

	today := domain.DateOf(s.now())
	anchor := today
	if !req.Anchor.IsZero() {
		anchor = domain.DateOf(req.Anchor)
	}
	window := timeline.ProjectWindow(zoom, anchor, timeline.WindowOptions{
		WeekStart: req.WeekStart,
		Clock:     s.now,
	})
	fields["window_start"] = window.Start.Format(domain.DateLayout)

	var (
		products []*domain.Product
		cards    []*domain.PriceCard
	)
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProducts := repository.NewSQLiteProductRepo(tx)
		txCards := repository.NewSQLitePriceCardRepo(tx)

		all, err := txProducts.List(ctx)
		if err != nil {
			return err
		}
		products, err = scopeProducts(all, req.ProductScope, req.Search)
		if err != nil {
			return err
		}

		from, to := window.Start, window.End
		cards, err = txCards.List(ctx, repository.PriceCardFilter{From: &from, To: &to})
		return err
	})
	if err != nil {
		return nil, err
	}

	inScope := make(map[string]bool, len(products))
	resources := make([]timeline.Resource, 0, len(products))
	for _, p := range products {
		inScope[p.ID] = true
		resources = append(resources, timeline.Resource{Key: p.ID, Label: p.Code})
	}
	visible := cards[:0]
	for _, c := range cards {
		if !inScope[c.ProductID] {
			continue
		}
		if req.Status != "" && timeline.ClassifyCard(c, today) != req.Status {
			continue
		}
		visible = append(visible, c)
	}

	minWidth := req.MinWidthPercent
	if minWidth <= 0 {
		minWidth = timeline.DefaultMinWidthPercent
	}
	rows := timeline.Layout(timeline.LayoutInput{
		Resources: resources,
		Cards:     visible,
		Window:    window,
		Today:     today,
		Mapper:    timeline.Mapper{MinWidthPercent: minWidth},
	})
	fields["cards"] = len(visible)

	return &app.BoardResponse{
		Window:    window,
		Today:     today,
		Resources: resources,
		Cards:     visible,
		Rows:      rows,
		Warnings:  overlapWarnings(rows),
	}, nil
}

// scopeProducts keeps the products named in scope (by code or ID) that
// also match search. An unknown scope entry is an error.
func scopeProducts(all []*domain.Product, scope []string, search string) ([]*domain.Product, error) {
	selected := all
	if len(scope) > 0 {
		byRef := make(map[string]*domain.Product, len(all)*2)
		for _, p := range all {
			byRef[p.ID] = p
			byRef[p.Code] = p
		}
		seen := make(map[string]bool)
		selected = nil
		for _, ref := range scope {
			p, ok := byRef[ref]
			if !ok {
				p, ok = byRef[domain.NormalizeCode(ref)]
			}
			if !ok {
				return nil, &app.BoardError{Code: app.BoardErrUnknownProduct, Message: fmt.Sprintf("no product %q", ref)}
			}
			if !seen[p.ID] {
				seen[p.ID] = true
				selected = append(selected, p)
			}
		}
		sort.SliceStable(selected, func(i, j int) bool { return selected[i].Code < selected[j].Code })
	}

	needle := strings.ToUpper(strings.TrimSpace(search))
	if needle == "" {
		return selected, nil
	}
	var out []*domain.Product
	for _, p := range selected {
		if strings.Contains(strings.ToUpper(p.Code), needle) || strings.Contains(strings.ToUpper(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func overlapWarnings(rows []timeline.Row) []string {
	var warnings []string
	for _, row := range rows {
		n := 0
		for _, lane := range row.Lanes {
			for _, bar := range lane.Bars {
				if bar.Overlapping {
					n++
				}
			}
		}
		if n > 0 {
			warnings = append(warnings, fmt.Sprintf("%s: %d overlapping price cards", row.Resource.Label, n))
		}
	}
	return warnings
}
