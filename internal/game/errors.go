// internal/game/errors.go
//
// Errors returned by the game core. All are values; callers match them with
// errors.Is / errors.As.

package game

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFourUniqueChars: the guess is not exactly 4 pairwise-distinct characters.
	ErrNotFourUniqueChars = errors.New("guess must be 4 unique characters")
	// ErrWrongCharacterClass: the guess contains characters outside the mode's alphabet.
	ErrWrongCharacterClass = errors.New("guess contains characters outside the mode's alphabet")
	// ErrInvalidMode: a mode outside {numeric, word} was requested.
	ErrInvalidMode = errors.New("invalid mode selection")
	// ErrRoundNotActive: a guess was submitted while no round is in progress.
	ErrRoundNotActive = errors.New("no round in progress")
)

// InvalidGuessError reports a rejected guess. Err is ErrNotFourUniqueChars
// or ErrWrongCharacterClass.
type InvalidGuessError struct {
	Guess string
	Err   error
}

func (e *InvalidGuessError) Error() string {
	return fmt.Sprintf("invalid guess %q: %v", e.Guess, e.Err)
}

func (e *InvalidGuessError) Unwrap() error { return e.Err }
