// internal/game/score.go
//
// Bulls/Cows scoring.

package game

// Score evaluates guess against secret using the two-pass algorithm.
//
// Pass 1:
//   - Each position where the characters are equal is a Bull; both positions
//     are consumed so they cannot also count as a Cow.
//
// Pass 2:
//   - Walk the unconsumed guess characters in order. If the character is still
//     present among the unconsumed secret characters it is a Cow, and exactly
//     one matching secret occurrence is consumed.
//
// Callers guarantee both inputs have the same length; Score does not validate.
// Repeated characters are handled even though valid secrets never contain them.
func Score(guess, secret string) ScoreResult {
	g := []rune(guess)
	s := []rune(secret)
	n := len(g)
	if len(s) < n {
		n = len(s)
	}

	var res ScoreResult
	usedG := make([]bool, len(g))
	usedS := make([]bool, len(s))

	// First pass: exact matches.
	for i := 0; i < n; i++ {
		if g[i] == s[i] {
			res.Bulls++
			usedG[i], usedS[i] = true, true
		}
	}

	// Second pass: remaining guess characters against the remaining secret.
	for i, r := range g {
		if usedG[i] {
			continue
		}
		for j, c := range s {
			if !usedS[j] && c == r {
				res.Cows++
				usedS[j] = true
				break
			}
		}
	}
	return res
}
