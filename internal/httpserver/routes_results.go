// internal/httpserver/routes_results.go
//
// Results endpoints under /results, backed by the in-memory ledger:
//   - GET /results/leaderboard?mode=numeric&limit=20 → best wins for a mode
//   - GET /results/summary                           → per-mode played/won/best

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bullscows/internal/game"
	"github.com/robalobadob/bullscows/internal/results"
)

// mountResults registers all /results routes.
func (s *Server) mountResults(r chi.Router) {
	r.Route("/results", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/summary", s.handleSummary)
	})
}

// lbRes is returned by /results/leaderboard.
type lbRes struct {
	Mode game.Mode       `json:"mode"`
	Top  []results.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for ?mode= (default numeric).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode := game.ModeNumeric
	if q := r.URL.Query().Get("mode"); q != "" {
		m, err := game.ParseMode(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_mode", err.Error())
			return
		}
		mode = m
	}
	limit := 20
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be 1–100")
			return
		}
		limit = n
	}

	rows, err := s.ledger.Leaderboard(r.Context(), mode, limit)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Mode: mode, Top: rows})
}

// handleSummary returns per-mode totals.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.ledger.Summary(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("summary")
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	if sum == nil {
		sum = []results.ModeSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"modes": sum})
}
