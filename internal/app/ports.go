package app

import (
	"context"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/alexanderramin/scalehouse/internal/importer"
)

type BoardUseCase interface {
	Board(ctx context.Context, req BoardRequest) (*BoardResponse, error)
}

// RescheduleUseCase is the commit collaborator of the timeline gesture
// controller.
type RescheduleUseCase interface {
	Reschedule(ctx context.Context, cardID string, start, end time.Time) (*domain.PriceCard, error)
}

type ImportResult struct {
	ProductsCreated int
	ProductsReused  int
	Cards           []*domain.PriceCard
}

type ImportScheduleUseCase interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportSchedule(ctx context.Context, schedule *importer.Schedule) (*ImportResult, error)
}

type ExportScheduleUseCase interface {
	Export(ctx context.Context, productScope []string) (*importer.Schedule, error)
}
