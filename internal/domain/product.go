package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var productCodePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{1,23}$`)

// Product is a commodity the weighbridge buys, e.g. a rubber wood grade.
// It is the resource under which price cards must not overlap.
type Product struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeCode upper-cases and trims a user-supplied product code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCode checks that Code is 2-24 uppercase letters, digits or dashes
// (e.g. WOOD-A, EUC01).
func (p *Product) ValidateCode() error {
	if p.Code == "" {
		return fmt.Errorf("product code is required (use --code flag)")
	}
	if !productCodePattern.MatchString(p.Code) {
		return fmt.Errorf("product code %q must be 2-24 uppercase letters, digits or dashes (e.g. WOOD-A)", p.Code)
	}
	return nil
}
