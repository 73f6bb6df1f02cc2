// internal/words/words.go
//
// Provides the Word-mode dictionary.
//
// Responsibilities:
//   - Load the dictionary from a configured file or fall back to the embedded list.
//   - Keep only usable secrets: exactly 4 letters a–z, all pairwise distinct.
//   - Supply lookups (List, Contains) and load statistics (Stats).
//
// Initialization behavior (Init):
//   1. If path is non-empty (WORDS_FILE / -words), load one word per line from it.
//   2. Otherwise use assets/words.txt.
//
// Constraints:
//   • Entries are trimmed and lowercased; duplicates are dropped.
//   • Entries with repeated letters are rejected: a secret like "book" could never
//     be guessed because guesses must have 4 distinct characters.
//   • Initialization runs once (sync.Once).

package words

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bullscows/assets"
	"github.com/robalobadob/bullscows/internal/game"
)

// ErrEmpty is returned when no usable word survives loading.
var ErrEmpty = errors.New("words: dictionary is empty")

var (
	initOnce   sync.Once
	list       []string            // usable words, in file order
	set        map[string]struct{} // same words, for lookups
	rejected   int                 // lines dropped during load
	initialErr error
)

// Init loads the dictionary exactly once. Later calls return the first result.
func Init(path string) error {
	initOnce.Do(func() {
		var raw []string
		if path != "" {
			raw, initialErr = readWordFile(path)
		} else {
			raw, initialErr = assets.WordList()
		}
		if initialErr != nil {
			return
		}
		list, rejected = filter(raw)
		set = toSet(list)
		if len(list) == 0 {
			initialErr = ErrEmpty
			return
		}
		if rejected > 0 {
			log.Warn().Int("rejected", rejected).Str("path", path).Msg("dropped unusable dictionary entries")
		}
	})
	return initialErr
}

// readWordFile loads one entry per line, skipping blanks and '#' comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ParseLines(f)
}

// filter normalizes raw entries and keeps the valid, unique ones.
func filter(raw []string) (kept []string, dropped int) {
	seen := make(map[string]struct{}, len(raw))
	for _, w := range raw {
		w = strings.ToLower(strings.TrimSpace(w))
		if !game.ValidWord(w) {
			dropped++
			continue
		}
		if _, dup := seen[w]; dup {
			dropped++
			continue
		}
		seen[w] = struct{}{}
		kept = append(kept, w)
	}
	return kept, dropped
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// List returns a copy of the loaded dictionary.
func List() []string {
	return append([]string(nil), list...)
}

// Contains reports whether w is in the dictionary (case-insensitive).
func Contains(w string) bool {
	_, ok := set[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// Stats returns counts of loaded and rejected entries.
func Stats() (loaded int, dropped int) {
	return len(list), rejected
}
