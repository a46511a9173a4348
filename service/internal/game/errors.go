// internal/game/errors.go
package game

import "errors"

// Errors returned by Match and Manager. Callers match them with errors.Is.
var (
	ErrMatchOver     = errors.New("match is over")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrUnknownPlayer = errors.New("player is not seated in this match")
	ErrMatchNotFound = errors.New("match not found")
)
