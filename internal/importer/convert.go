package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/google/uuid"
)

// Converted is a validated schedule turned into unsaved domain objects.
// Cards reference their product through CardsByCode; the caller decides
// whether each product is created or reused.
type Converted struct {
	Products    []*domain.Product
	CardsByCode map[string][]*domain.PriceCard
}

// Convert transforms a validated Schedule into domain objects ready for
// persistence. Call ValidateSchedule first; Convert assumes the schedule
// is valid.
func Convert(s *Schedule, now time.Time, changedBy string) (*Converted, error) {
	now = now.UTC()
	out := &Converted{CardsByCode: make(map[string][]*domain.PriceCard)}
	by := domain.CoalesceStr(s.ChangedBy, changedBy)

	for _, p := range s.Products {
		code := domain.NormalizeCode(p.Code)
		product := &domain.Product{
			ID:        uuid.New().String(),
			Code:      code,
			Name:      domain.CoalesceStr(p.Name, code),
			CreatedAt: now,
			UpdatedAt: now,
		}
		out.Products = append(out.Products, product)

		for j, pr := range p.Prices {
			start, err := domain.ParseDate(pr.Start)
			if err != nil {
				return nil, fmt.Errorf("%s prices[%d]: %w", code, j, err)
			}
			end, err := parseOptionalDate(pr.End)
			if err != nil {
				return nil, fmt.Errorf("%s prices[%d]: %w", code, j, err)
			}
			card := &domain.PriceCard{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				StartDate: start,
				EndDate:   domain.DateFromPtrWithDefault(start, end),
				UnitPrice: domain.Float64FromPtrWithDefault(0, pr.UnitPrice),
				CreatedBy: by,
				CreatedAt: now,
				UpdatedAt: now,
			}
			out.CardsByCode[code] = append(out.CardsByCode[code], card)
		}
	}
	return out, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FromDomain builds an exportable schedule. Products keep the given order;
// each product's cards are sorted by start date.
func FromDomain(products []*domain.Product, cards []*domain.PriceCard) *Schedule {
	byProduct := make(map[string][]*domain.PriceCard)
	for _, c := range cards {
		byProduct[c.ProductID] = append(byProduct[c.ProductID], c)
	}

	s := &Schedule{Version: SchemaVersion, Products: make([]ProductImport, 0, len(products))}
	for _, p := range products {
		group := byProduct[p.ID]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].StartDate.Before(group[j].StartDate)
		})

		pi := ProductImport{Code: p.Code, Name: p.Name, Prices: make([]PriceImport, 0, len(group))}
		for _, c := range group {
			price := c.UnitPrice
			pr := PriceImport{Start: c.StartDate.Format(domain.DateLayout), UnitPrice: &price}
			if !c.EndDate.Equal(c.StartDate) {
				end := c.EndDate.Format(domain.DateLayout)
				pr.End = &end
			}
			pi.Prices = append(pi.Prices, pr)
		}
		s.Products = append(s.Products, pi)
	}
	return s
}
