// internal/game/view.go
//
// Read-only View of a Session, plus the presentation extras derived from it:
// last guess's bulls, health percentage and tier, guesses used.

package game

// View is a read-only snapshot of a Session for presentation layers.
type View struct {
	Mode       Mode           `json:"mode,omitempty"`
	Phase      Phase          `json:"phase"`
	Turn       int            `json:"turn"`
	MaxGuesses int            `json:"maxGuesses"`
	Remaining  int            `json:"remaining"`
	Active     bool           `json:"active"`
	History    []HistoryEntry `json:"history"`
	Outcome    *Outcome       `json:"outcome,omitempty"` // set when won or lost
	LastBulls  int            `json:"lastBulls"`
	Health     Health         `json:"health"`
	Progress   Progress       `json:"progress"`
}

// Health expresses the last guess's bulls as a percentage of a full match.
type Health struct {
	Percent int    `json:"percent"`
	Tier    string `json:"tier"` // "full" | "half" | "low"
}

// Progress counts guesses used against the round's limit.
type Progress struct {
	Used int `json:"used"`
	Max  int `json:"max"`
}

// Health tiers.
const (
	TierFull = "full"
	TierHalf = "half"
	TierLow  = "low"
)

// HealthFor maps a bulls count to its Health.
func HealthFor(bulls int) Health {
	pct := bulls * 100 / SecretLen
	switch {
	case pct >= 100:
		return Health{Percent: 100, Tier: TierFull}
	case pct >= 50:
		return Health{Percent: pct, Tier: TierHalf}
	}
	return Health{Percent: max(pct, 0), Tier: TierLow}
}

// view builds the snapshot; callers hold s.mu.
func (s *Session) view() View {
	v := View{
		Mode:       s.mode,
		Phase:      s.phase,
		Turn:       s.turn,
		MaxGuesses: s.maxGuesses,
		Active:     s.phase == PhaseInRound,
		History:    append([]HistoryEntry{}, s.history...),
		Progress:   Progress{Used: len(s.history), Max: s.maxGuesses},
	}
	if v.Active {
		v.Remaining = s.maxGuesses - s.turn + 1
	}
	if n := len(s.history); n > 0 {
		v.LastBulls = s.history[n-1].Bulls
	}
	v.Health = HealthFor(v.LastBulls)
	if s.outcome != nil {
		o := *s.outcome
		v.Outcome = &o
	}
	return v
}
