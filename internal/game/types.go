// internal/game/types.go
//
// Core type definitions for the Bulls and Cows engine.
// Defines:
//   - Mode: secret alphabet + guess limit (numeric / word).
//   - Phase: where a session sits in its round lifecycle.
//   - ScoreResult, HistoryEntry: per-guess evaluation and its record.
//   - Outcome: what a single accepted guess produced (feedback, win, loss).

package game

import "strings"

// SecretLen is the number of characters in every secret and guess.
const SecretLen = 4

// Mode selects the secret's alphabet and the guess limit.
type Mode string

const (
	ModeNumeric Mode = "numeric"
	ModeWord    Mode = "word"
)

// ParseMode maps user input to a Mode. It accepts the short labels the
// menu shows ("1", "2") as well as the mode names.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric", "number", "digits", "1":
		return ModeNumeric, nil
	case "word", "words", "letters", "2":
		return ModeWord, nil
	}
	return "", ErrInvalidMode
}

// MaxGuesses returns the guess limit for the mode, or 0 for an unknown mode.
func (m Mode) MaxGuesses() int {
	switch m {
	case ModeNumeric:
		return 12
	case ModeWord:
		return 10
	}
	return 0
}

// Valid reports whether m is one of the built-in modes.
func (m Mode) Valid() bool { return m.MaxGuesses() > 0 }

// Label is a short human description of the expected input.
func (m Mode) Label() string {
	switch m {
	case ModeNumeric:
		return "digits"
	case ModeWord:
		return "letters"
	}
	return ""
}

// Phase is the coarse state of a session.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseInRound Phase = "in_round"
	PhaseWon     Phase = "won"
	PhaseLost    Phase = "lost"
)

// ScoreResult is the evaluation of one guess. Bulls+Cows never exceeds SecretLen.
type ScoreResult struct {
	Bulls int `json:"bulls"`
	Cows  int `json:"cows"`
}

// HistoryEntry records one accepted guess. Entries are append-only.
type HistoryEntry struct {
	Ordinal int    `json:"ordinal"` // 1-based turn the guess was made on
	Guess   string `json:"guess"`   // uppercased for display
	Bulls   int    `json:"bulls"`
	Cows    int    `json:"cows"`
}

// OutcomeKind discriminates Outcome.
type OutcomeKind string

const (
	OutcomeFeedback OutcomeKind = "feedback"
	OutcomeWon      OutcomeKind = "won"
	OutcomeLost     OutcomeKind = "lost"
)

// Outcome is the result of an accepted guess. Which fields are set depends on Kind:
//   - feedback: Bulls, Cows, Remaining
//   - won:      Bulls, Cows, TurnsTaken
//   - lost:     Bulls, Cows, Secret
type Outcome struct {
	Kind       OutcomeKind `json:"kind"`
	Bulls      int         `json:"bulls"`
	Cows       int         `json:"cows"`
	Remaining  int         `json:"remaining,omitempty"`
	TurnsTaken int         `json:"turnsTaken,omitempty"`
	Secret     string      `json:"secret,omitempty"`
}

// Terminal reports whether the outcome ended the round.
func (o Outcome) Terminal() bool { return o.Kind == OutcomeWon || o.Kind == OutcomeLost }
