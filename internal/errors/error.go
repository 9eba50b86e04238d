package errors

import "errors"

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrInvalidNotation  = errors.New("invalid notation")
	ErrInvalidPath      = errors.New("invalid path")
	ErrEditConflict     = errors.New("game was edited concurrently, retries exhausted")
	ErrCreateGameFailed = errors.New("create game failed")
	ErrInternal         = errors.New("internal error")
)
