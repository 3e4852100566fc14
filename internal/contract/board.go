package contract

import "github.com/alexanderramin/scalehouse/internal/app"

type BoardRequest = app.BoardRequest

func NewBoardRequest() BoardRequest {
	return app.NewBoardRequest()
}

type BoardResponse = app.BoardResponse

type BoardErrorCode = app.BoardErrorCode

const (
	BoardErrInvalidZoom    BoardErrorCode = app.BoardErrInvalidZoom
	BoardErrUnknownProduct BoardErrorCode = app.BoardErrUnknownProduct
	BoardErrInvalidStatus  BoardErrorCode = app.BoardErrInvalidStatus
)

type BoardError = app.BoardError

type ImportResult = app.ImportResult
