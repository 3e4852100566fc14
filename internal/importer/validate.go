package importer

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/alexanderramin/scalehouse/internal/timeline"
)

// ValidateSchedule checks the schedule for errors before conversion.
// Returns a slice of all validation errors found, including overlaps
// between cards of the same product inside the file.
func ValidateSchedule(s *Schedule) []error {
	var errs []error

	if s.Version != SchemaVersion {
		errs = append(errs, fmt.Errorf("version: unsupported value %d (expected %d)", s.Version, SchemaVersion))
	}
	if len(s.Products) == 0 {
		errs = append(errs, fmt.Errorf("products: at least one product is required"))
	}

	codes := make(map[string]bool)
	for i := range s.Products {
		p := &s.Products[i]
		prefix := fmt.Sprintf("products[%d]", i)

		code := domain.NormalizeCode(p.Code)
		probe := domain.Product{Code: code}
		if err := probe.ValidateCode(); err != nil {
			errs = append(errs, fmt.Errorf("%s.code: %w", prefix, err))
		} else if codes[code] {
			errs = append(errs, fmt.Errorf("%s.code: duplicate product %q", prefix, code))
		}
		codes[code] = true

		errs = append(errs, validatePrices(prefix, p.Prices)...)
	}
	return errs
}

type parsedRange struct {
	index      int
	start, end time.Time
}

func validatePrices(prefix string, prices []PriceImport) []error {
	var errs []error
	var ranges []parsedRange

	for j, pr := range prices {
		field := fmt.Sprintf("%s.prices[%d]", prefix, j)

		start, startErr := parseRequiredDate(field+".start", pr.Start)
		if startErr != nil {
			errs = append(errs, startErr)
		}
		end := start
		if pr.End != nil {
			var endErr error
			end, endErr = parseRequiredDate(field+".end", *pr.End)
			if endErr != nil {
				errs = append(errs, endErr)
				continue
			}
		}

		switch {
		case pr.UnitPrice == nil:
			errs = append(errs, fmt.Errorf("%s.unit_price is required", field))
		case math.IsNaN(*pr.UnitPrice) || math.IsInf(*pr.UnitPrice, 0):
			errs = append(errs, fmt.Errorf("%s.unit_price: not a number", field))
		case *pr.UnitPrice < 0:
			errs = append(errs, fmt.Errorf("%s.unit_price: %w", field, domain.ErrNegativePrice))
		}

		if startErr != nil {
			continue
		}
		if end.Before(start) {
			errs = append(errs, fmt.Errorf("%s: %w: end %s is before start %s", field, domain.ErrInvalidRange, *pr.End, pr.Start))
			continue
		}
		for _, other := range ranges {
			if timeline.Overlaps(start, end, other.start, other.end) {
				errs = append(errs, fmt.Errorf("%s: %w with %s.prices[%d]", field, domain.ErrOverlapConflict, prefix, other.index))
			}
		}
		ranges = append(ranges, parsedRange{index: j, start: start, end: end})
	}
	return errs
}

func parseRequiredDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, s)
	}
	return t, nil
}
