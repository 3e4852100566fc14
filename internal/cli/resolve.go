package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/scalehouse/internal/service"
)

// resolveCardID accepts a full card UUID or a unique prefix of one, such
// as the 8-character ID printed by "price list".
func resolveCardID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", fmt.Errorf("price card ID is required")
	}

	cards, err := app.Prices.List(ctx, service.CardListFilter{})
	if err != nil {
		return "", err
	}

	var matches []string
	for _, s := range cards {
		if s.Card.ID == input {
			return s.Card.ID, nil
		}
		if strings.HasPrefix(s.Card.ID, input) {
			matches = append(matches, s.Card.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("price card not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("price card ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
