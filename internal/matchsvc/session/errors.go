package session

import (
	"errors"
	"fmt"
)

// Validation failures: surfaced synchronously, never partially applied.
var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameOver         = errors.New("game is over")
	ErrPeriodOpen       = errors.New("a period is already open")
	ErrNoOpenPeriod     = errors.New("no period is open")
	ErrNotInPlay        = errors.New("play is not in progress")
	ErrStoppageOpen     = errors.New("a stoppage is already open")
	ErrStoppageNotFound = errors.New("stoppage not found")
	ErrNoPlayers        = errors.New("substitution needs a player coming in, going out, or both")
	ErrSubNotFound      = errors.New("substitution not found")
	ErrSubConfirmed     = errors.New("substitution is already confirmed")
	ErrIncompleteSub    = errors.New("substitution is missing one side")
	ErrFieldFull        = errors.New("field is already at the player cap")
)

// PersistError wraps a backing-store failure after any optimistic local
// mutation has been rolled back.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

func persistErr(op string, err error) error {
	return &PersistError{Op: op, Err: err}
}
