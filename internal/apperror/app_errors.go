package apperror

import "errors"

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrInvalidCell    = errors.New("invalid cell index")
	ErrInvalidStep    = errors.New("invalid history step")
	ErrSessionMissing = errors.New("session not found")
	ErrCorruptedState = errors.New("corrupted game state")
)

// IsRejected reports whether err is a move or jump the game ignores.
func IsRejected(err error) bool {
	return errors.Is(err, ErrGameFinished) ||
		errors.Is(err, ErrCellOccupied) ||
		errors.Is(err, ErrInvalidCell) ||
		errors.Is(err, ErrInvalidStep)
}
