package apperror

import "errors"

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrOutOfBounds  = errors.New("cell is out of bounds")
	ErrGameFinished = errors.New("game is already finished")
)
