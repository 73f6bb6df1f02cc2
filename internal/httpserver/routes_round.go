// internal/httpserver/routes_round.go
//
// Session and round endpoints:
//   - POST /session       → create an idle session, return its token
//   - GET  /round         → current state of the caller's session
//   - POST /round         → start a round ({"mode": "numeric"|"word"}); creates a session if needed
//   - POST /round/guess   → submit a guess ({"guess": "1234"})
//   - POST /round/reset   → back to idle
//
// Rejected guesses return 400 with a specific code and leave the round untouched.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bullscows/internal/game"
	"github.com/robalobadob/bullscows/internal/results"
	"github.com/robalobadob/bullscows/internal/token"
)

// ctxSessionKey is the context key for the caller's *game.Session.
type ctxSessionKey struct{}

// withSession resolves the caller's session from its token, if any.
// It never rejects; handlers decide whether a session is required.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := token.FromRequest(r); tok != "" {
			if sid, err := s.tokens.Parse(tok); err == nil {
				if sess, err := s.store.Get(r.Context(), sid); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), ctxSessionKey{}, sess))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFrom(r *http.Request) *game.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*game.Session)
	return sess
}

// stateRes is returned by every endpoint that reports session state.
// Token is set only when the request created the session.
type stateRes struct {
	Token   string        `json:"token,omitempty"`
	Outcome *game.Outcome `json:"outcome,omitempty"`
	State   game.View     `json:"state"`
}

// newSession creates, stores and issues a token for a fresh idle session.
func (s *Server) newSession(w http.ResponseWriter, r *http.Request) (*game.Session, string, error) {
	if s.idle > 0 {
		if n := s.store.Sweep(r.Context(), s.idle); n > 0 {
			log.Debug().Int("swept", n).Msg("evicted idle sessions")
		}
	}
	sess := game.NewSession(s.gen)
	if err := s.store.Save(r.Context(), sess); err != nil {
		return nil, "", err
	}
	tok, exp, err := s.tokens.Sign(sess.ID)
	if err != nil {
		_ = s.store.Delete(r.Context(), sess.ID)
		return nil, "", err
	}
	s.tokens.SetCookie(w, tok, exp)
	return sess, tok, nil
}

// handleNewSession always creates a new session, abandoning any previous one.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess, tok, err := s.newSession(w, r)
	if err != nil {
		log.Error().Err(err).Msg("create session")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	writeJSON(w, http.StatusCreated, stateRes{Token: tok, State: sess.State()})
}

// handleState reports the caller's current state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		writeError(w, http.StatusNotFound, "no_session", "start a round or create a session first")
		return
	}
	writeJSON(w, http.StatusOK, stateRes{State: sess.State()})
}

// startReq is the payload for POST /round.
type startReq struct {
	Mode string `json:"mode"`
}

// handleStartRound starts a new round in the requested mode.
func (s *Server) handleStartRound(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_mode", err.Error())
		return
	}

	var tok string
	sess := sessionFrom(r)
	if sess == nil {
		if sess, tok, err = s.newSession(w, r); err != nil {
			log.Error().Err(err).Msg("create session")
			writeError(w, http.StatusInternalServerError, "save_failed", "")
			return
		}
	}

	v, err := sess.StartRound(mode)
	if err != nil {
		log.Error().Err(err).Str("session", sess.ID).Msg("start round")
		writeError(w, http.StatusInternalServerError, "start_failed", err.Error())
		return
	}
	log.Info().Str("session", sess.ID).Str("mode", string(mode)).Msg("round started")
	status := http.StatusOK
	if tok != "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, stateRes{Token: tok, State: v})
}

// guessReq is the payload for POST /round/guess.
type guessReq struct {
	Guess string `json:"guess"`
}

// handleGuess validates and applies a guess, recording the round if it ended.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		writeError(w, http.StatusNotFound, "no_session", "start a round first")
		return
	}
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}

	out, err := sess.SubmitGuess(req.Guess)
	switch {
	case errors.Is(err, game.ErrNotFourUniqueChars):
		writeError(w, http.StatusBadRequest, "not_four_unique", "enter exactly 4 different characters")
		return
	case errors.Is(err, game.ErrWrongCharacterClass):
		writeError(w, http.StatusBadRequest, "wrong_character_class", "use only "+sess.State().Mode.Label())
		return
	case errors.Is(err, game.ErrRoundNotActive):
		writeError(w, http.StatusConflict, "round_not_active", err.Error())
		return
	case err != nil:
		log.Error().Err(err).Str("session", sess.ID).Msg("submit guess")
		writeError(w, http.StatusInternalServerError, "guess_failed", "")
		return
	}

	v := sess.State()
	if out.Terminal() {
		s.recordFinished(r.Context(), sess.ID, v)
	}
	writeJSON(w, http.StatusOK, stateRes{Outcome: &out, State: v})
}

// handleReset returns the caller's session to idle.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		writeError(w, http.StatusNotFound, "no_session", "")
		return
	}
	writeJSON(w, http.StatusOK, stateRes{State: sess.Reset()})
}

// recordFinished logs a finished round and writes it to the ledger (best effort).
func (s *Server) recordFinished(ctx context.Context, sessionID string, v game.View) {
	res, ok := results.FromView(sessionID, v)
	if !ok {
		return
	}
	log.Info().
		Str("session", sessionID).
		Str("mode", string(res.Mode)).
		Bool("won", res.Won).
		Int("turns", res.Turns).
		Msg("round finished")
	if s.ledger == nil {
		return
	}
	if err := s.ledger.Record(ctx, res); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("record result")
	}
}
