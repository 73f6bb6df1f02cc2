// internal/game/validate.go
//
// Guess normalization and validation: exactly 4 pairwise-distinct characters,
// then the mode's alphabet (digits or a–z).

package game

import "strings"

// normalize trims surrounding whitespace and folds to lowercase.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// validateGuess checks a normalized guess against the mode's rules.
// Length/uniqueness is checked before the alphabet.
func validateGuess(mode Mode, guess string) error {
	if !fourUnique(guess) {
		return &InvalidGuessError{Guess: guess, Err: ErrNotFourUniqueChars}
	}
	ok := isLetters(guess)
	if mode == ModeNumeric {
		ok = isDigits(guess)
	}
	if !ok {
		return &InvalidGuessError{Guess: guess, Err: ErrWrongCharacterClass}
	}
	return nil
}

// fourUnique reports whether s is exactly SecretLen pairwise-distinct runes.
func fourUnique(s string) bool {
	rs := []rune(s)
	if len(rs) != SecretLen {
		return false
	}
	seen := make(map[rune]struct{}, len(rs))
	for _, r := range rs {
		if _, dup := seen[r]; dup {
			return false
		}
		seen[r] = struct{}{}
	}
	return true
}

// isDigits reports whether s consists only of ASCII digits.
func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isLetters reports whether s consists only of lowercase a–z.
func isLetters(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// ValidWord reports whether w (already lowercase) can serve as a Word-mode secret.
func ValidWord(w string) bool { return fourUnique(w) && isLetters(w) }
