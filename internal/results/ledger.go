// internal/results/ledger.go
//
// Finished-round ledger.
// Responsibilities:
//   - Record every won or lost round (best effort, callers log failures).
//   - Leaderboard per mode: wins by fewest turns, then earliest finish.
//   - Summary per mode: played, won, best turns.

package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robalobadob/bullscows/internal/game"
)

// timeLayout is fixed-width so finished_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Result is one finished round.
type Result struct {
	SessionID  string    `json:"sessionId"`
	Mode       game.Mode `json:"mode"`
	Won        bool      `json:"won"`
	Turns      int       `json:"turns"`
	MaxGuesses int       `json:"maxGuesses"`
	FinishedAt time.Time `json:"finishedAt"`
}

// FromView builds a Result from a terminal session view. ok is false while the
// round is still running or the session is idle.
func FromView(sessionID string, v game.View) (r Result, ok bool) {
	if v.Outcome == nil {
		return Result{}, false
	}
	r = Result{
		SessionID:  sessionID,
		Mode:       v.Mode,
		Won:        v.Outcome.Kind == game.OutcomeWon,
		Turns:      len(v.History),
		MaxGuesses: v.MaxGuesses,
		FinishedAt: time.Now().UTC(),
	}
	return r, true
}

// Recorder accepts finished rounds.
type Recorder interface {
	Record(ctx context.Context, r Result) error
}

// Ledger stores finished rounds in SQLite.
type Ledger struct{ db *sql.DB }

// NewLedger wraps a database opened with Open.
func NewLedger(db *sql.DB) *Ledger { return &Ledger{db: db} }

// Record inserts one finished round.
func (l *Ledger) Record(ctx context.Context, r Result) error {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now().UTC()
	}
	won := 0
	if r.Won {
		won = 1
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO rounds(session_id, mode, won, turns, max_guesses, finished_at)
		 VALUES(?,?,?,?,?,?)`,
		r.SessionID, string(r.Mode), won, r.Turns, r.MaxGuesses, r.FinishedAt.UTC().Format(timeLayout),
	)
	return err
}

// LBRow is one leaderboard line.
type LBRow struct {
	SessionID  string    `json:"sessionId"`
	Turns      int       `json:"turns"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Leaderboard returns the best wins for mode: fewest turns first, then earliest.
// Default limit is 20.
func (l *Ledger) Leaderboard(ctx context.Context, mode game.Mode, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT session_id, turns, finished_at
		 FROM rounds
		 WHERE mode=? AND won=1
		 ORDER BY turns ASC, finished_at ASC, id ASC
		 LIMIT ?`, string(mode), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		var finished string
		if err := rows.Scan(&r.SessionID, &r.Turns, &finished); err != nil {
			return nil, err
		}
		if r.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
			return nil, fmt.Errorf("finished_at for %s: %w", r.SessionID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ModeSummary aggregates every finished round of one mode.
type ModeSummary struct {
	Mode      game.Mode `json:"mode"`
	Played    int       `json:"played"`
	Won       int       `json:"won"`
	BestTurns int       `json:"bestTurns,omitempty"` // 0 when nothing was won
}

// Summary returns per-mode totals, ordered by mode name.
func (l *Ledger) Summary(ctx context.Context) ([]ModeSummary, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT mode, COUNT(1), COALESCE(SUM(won), 0), MIN(CASE WHEN won=1 THEN turns END)
		 FROM rounds
		 GROUP BY mode
		 ORDER BY mode`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ModeSummary
	for rows.Next() {
		var s ModeSummary
		var mode string
		var best sql.NullInt64
		if err := rows.Scan(&mode, &s.Played, &s.Won, &best); err != nil {
			return nil, err
		}
		s.Mode = game.Mode(mode)
		if best.Valid {
			s.BestTurns = int(best.Int64)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
