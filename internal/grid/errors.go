package grid

import "errors"

var (
	// ErrBoardFull is returned when a spawn is requested with no empty cell left.
	ErrBoardFull = errors.New("grid: board is full")

	// ErrUnknownType is returned when a tile name does not match any kind.
	ErrUnknownType = errors.New("grid: unknown tile type")

	// ErrOutOfRange is returned for a cell index outside the board.
	ErrOutOfRange = errors.New("grid: cell index out of range")

	// ErrUnknownDirection is returned when a direction name is not recognized.
	ErrUnknownDirection = errors.New("grid: unknown direction")
)
