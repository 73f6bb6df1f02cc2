// internal/game/secret.go
//
// Secret generation for new rounds.
//   - Numeric: 4 distinct digits drawn without replacement from 0–9.
//   - Word:    uniform pick from a dictionary of 4-letter unique-letter words.
//
// The random source is injected so tests can seed it. One Generator may be
// shared by every session in the process; the source is mutex-guarded.

package game

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/rand"
)

// SecretGenerator produces the secret and guess limit for a new round.
type SecretGenerator interface {
	Generate(mode Mode) (secret string, maxGuesses int, err error)
}

// Generator is the default SecretGenerator.
type Generator struct {
	mu   sync.Mutex // guards rng
	rng  *rand.Rand
	dict []string
}

var errEmptyDictionary = errors.New("game: word dictionary is empty")

// NewGenerator builds a Generator over src and dict. Every dictionary entry
// must be 4 distinct lowercase letters; otherwise a Word round could be
// unwinnable under guess validation.
func NewGenerator(src rand.Source, dict []string) (*Generator, error) {
	if len(dict) == 0 {
		return nil, errEmptyDictionary
	}
	words := make([]string, 0, len(dict))
	for _, w := range dict {
		w = normalize(w)
		if !ValidWord(w) {
			return nil, fmt.Errorf("game: dictionary entry %q: %w", w, ErrNotFourUniqueChars)
		}
		words = append(words, w)
	}
	return &Generator{rng: rand.New(src), dict: words}, nil
}

// NewSeededGenerator is NewGenerator with a fresh source seeded by seed.
func NewSeededGenerator(seed uint64, dict []string) (*Generator, error) {
	return NewGenerator(rand.NewSource(seed), dict)
}

// Generate returns a new secret and the guess limit for mode.
func (g *Generator) Generate(mode Mode) (string, int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch mode {
	case ModeNumeric:
		var b strings.Builder
		for _, d := range g.rng.Perm(10)[:SecretLen] {
			b.WriteByte(byte('0' + d))
		}
		return b.String(), mode.MaxGuesses(), nil
	case ModeWord:
		return g.dict[g.rng.Intn(len(g.dict))], mode.MaxGuesses(), nil
	}
	return "", 0, ErrInvalidMode
}
