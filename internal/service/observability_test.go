package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogObserver_Levels(t *testing.T) {
	overlap := &domain.OverlapError{
		Start: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	tests := []struct {
		name  string
		err   error
		level string
		extra string
	}{
		{name: "success", level: "level=INFO"},
		{name: "overlap", err: overlap, level: "level=WARN", extra: "outcome=rejected"},
		{name: "reversed range", err: fmt.Errorf("%w: x", domain.ErrInvalidRange), level: "level=WARN", extra: "outcome=rejected"},
		{name: "broken", err: errors.New("disk full"), level: "level=ERROR", extra: `error="disk full"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			obs := NewLogUseCaseObserver(&buf)
			obs.ObserveUseCase(context.Background(), UseCaseEvent{
				Name:    "create-price",
				Success: tt.err == nil,
				Err:     tt.err,
			})
			out := buf.String()
			assert.Contains(t, out, "msg=service_use_case")
			assert.Contains(t, out, "use_case=create-price")
			assert.Contains(t, out, tt.level)
			if tt.extra != "" {
				assert.Contains(t, out, tt.extra)
			} else {
				assert.NotContains(t, out, "error=")
			}
		})
	}
}

func TestLogObserver_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	NewLogUseCaseObserver(&buf).ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "reschedule-price",
		Success: true,
		Fields:  map[string]any{"start": "2026-01-03", "card_id": "c1", "end": "2026-01-07"},
	})
	out := buf.String()
	card := strings.Index(out, "card_id=c1")
	end := strings.Index(out, "end=2026-01-07")
	start := strings.Index(out, "start=2026-01-03")
	require.True(t, card > 0 && end > 0 && start > 0, out)
	assert.Less(t, card, end)
	assert.Less(t, end, start)
}

func TestCombineObservers(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, combineObservers(nil))
	assert.IsType(t, NoopUseCaseObserver{}, combineObservers([]UseCaseObserver{nil}))

	a, b := &recordingObserver{}, &recordingObserver{}
	assert.Same(t, a, combineObservers([]UseCaseObserver{nil, a}))

	combined := combineObservers([]UseCaseObserver{a, nil, b})
	combined.ObserveUseCase(context.Background(), UseCaseEvent{Name: "board"})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestNilObserverConstructors(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
}
