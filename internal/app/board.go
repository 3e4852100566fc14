package app

import (
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/alexanderramin/scalehouse/internal/timeline"
)

type BoardRequest struct {
	Zoom domain.ZoomLevel
	// Anchor is any day inside the wanted window. Zero means today.
	Anchor time.Time
	// ProductScope limits rows to these product codes or IDs.
	ProductScope    []string
	Search          string
	Status          domain.CardStatus
	WeekStart       time.Weekday
	MinWidthPercent float64
}

func NewBoardRequest() BoardRequest {
	return BoardRequest{
		Zoom:            domain.ZoomMonth,
		WeekStart:       time.Sunday,
		MinWidthPercent: timeline.DefaultMinWidthPercent,
	}
}

// BoardResponse is one rendered frame of the price timeline. Cards and
// Resources are kept alongside Rows so that a caller holding a live
// gesture preview can re-run timeline.Layout without refetching.
type BoardResponse struct {
	Window    timeline.Window
	Today     time.Time
	Resources []timeline.Resource
	Cards     []*domain.PriceCard
	Rows      []timeline.Row
	Warnings  []string
}

type BoardErrorCode string

const (
	BoardErrInvalidZoom    BoardErrorCode = "INVALID_ZOOM"
	BoardErrUnknownProduct BoardErrorCode = "UNKNOWN_PRODUCT"
	BoardErrInvalidStatus  BoardErrorCode = "INVALID_STATUS"
)

type BoardError struct {
	Code    BoardErrorCode
	Message string
}

func (e *BoardError) Error() string {
	return string(e.Code) + ": " + e.Message
}
