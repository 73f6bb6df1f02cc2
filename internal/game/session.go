// internal/game/session.go
//
// Round/session state machine for a single player.
// Responsibilities:
//   - Start rounds in a chosen mode (secret + guess limit from a SecretGenerator).
//   - Validate, score and record guesses.
//   - Track transitions: idle → in_round → won/lost, and back to idle on reset.
//
// Notes:
//   - A Session is owned by one player. Its methods serialize on an internal
//     mutex so overlapping transport requests cannot interleave.
//   - Rejected guesses never touch turn or history.

package game

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session holds the state of one player's game.
type Session struct {
	ID        string    // Unique session identifier (UUID).
	CreatedAt time.Time // When the session was created.

	mu         sync.Mutex
	gen        SecretGenerator
	phase      Phase
	mode       Mode
	secret     string // lowercase, never exposed except on loss
	maxGuesses int
	turn       int // 1-based ordinal of the next guess
	history    []HistoryEntry
	outcome    *Outcome // set once the round ends
	lastActive time.Time
}

// NewSession returns an idle session drawing secrets from gen.
func NewSession(gen SecretGenerator) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		gen:        gen,
		phase:      PhaseIdle,
		lastActive: now,
	}
}

// StartRound begins a new round in mode, discarding any previous round.
// It is valid from every phase. On error the session is left unchanged.
func (s *Session) StartRound(mode Mode) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !mode.Valid() {
		return s.view(), ErrInvalidMode
	}
	secret, maxGuesses, err := s.gen.Generate(mode)
	if err != nil {
		return s.view(), err
	}
	secret = normalize(secret)
	if !fourUnique(secret) {
		return s.view(), fmt.Errorf("game: generated secret: %w", ErrNotFourUniqueChars)
	}

	s.mode = mode
	s.secret = secret
	s.maxGuesses = maxGuesses
	s.turn = 1
	s.history = []HistoryEntry{}
	s.outcome = nil
	s.phase = PhaseInRound
	s.touch()
	return s.view(), nil
}

// SubmitGuess validates and scores a guess for the current round.
//
// Steps:
//   - Normalize (trim, lowercase).
//   - Reject guesses that are not 4 distinct characters, then guesses outside
//     the mode's alphabet. Rejections return *InvalidGuessError.
//   - Score, append the history entry, then check win and loss.
//
// Returns ErrRoundNotActive unless the session is in a round.
func (s *Session) SubmitGuess(text string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseInRound {
		return Outcome{}, ErrRoundNotActive
	}
	guess := normalize(text)
	if err := validateGuess(s.mode, guess); err != nil {
		return Outcome{}, err
	}
	s.touch()

	res := Score(guess, s.secret)
	s.history = append(s.history, HistoryEntry{
		Ordinal: s.turn,
		Guess:   strings.ToUpper(guess),
		Bulls:   res.Bulls,
		Cows:    res.Cows,
	})

	if guess == s.secret {
		s.phase = PhaseWon
		s.outcome = &Outcome{Kind: OutcomeWon, Bulls: res.Bulls, Cows: res.Cows, TurnsTaken: s.turn}
		return *s.outcome, nil
	}

	s.turn++
	if s.turn > s.maxGuesses {
		s.phase = PhaseLost
		s.outcome = &Outcome{Kind: OutcomeLost, Bulls: res.Bulls, Cows: res.Cows, Secret: s.secret}
		return *s.outcome, nil
	}
	return Outcome{
		Kind:      OutcomeFeedback,
		Bulls:     res.Bulls,
		Cows:      res.Cows,
		Remaining: s.maxGuesses - s.turn + 1,
	}, nil
}

// Reset discards all round data and returns the session to idle.
func (s *Session) Reset() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = PhaseIdle
	s.mode = ""
	s.secret = ""
	s.maxGuesses = 0
	s.turn = 0
	s.history = nil
	s.outcome = nil
	s.touch()
	return s.view()
}

// State returns a read-only snapshot of the session.
func (s *Session) State() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// LastActive reports when the session last changed.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touch() { s.lastActive = time.Now().UTC() }
