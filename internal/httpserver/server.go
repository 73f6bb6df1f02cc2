// internal/httpserver/server.go
//
// HTTP server wiring for the Bulls and Cows backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words[?word=...]".
//   - Session + round endpoints: POST /session, GET|POST /round, POST /round/guess, POST /round/reset.
//   - Results endpoints: mounted under /results.
//
// Notes:
//   - Each player owns one game.Session, found through a signed token carried in
//     the Authorization header or the session cookie.
//   - Finished rounds are written to the results ledger on a best-effort basis.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bullscows/internal/game"
	"github.com/robalobadob/bullscows/internal/results"
	"github.com/robalobadob/bullscows/internal/store"
	"github.com/robalobadob/bullscows/internal/token"
	"github.com/robalobadob/bullscows/internal/words"
)

// Options carries the Server's collaborators.
type Options struct {
	Store        store.Store
	Generator    game.SecretGenerator
	Tokens       *token.Issuer
	Ledger       *results.Ledger // nil disables /results and recording
	ClientOrigin string
	SessionIdle  time.Duration // sessions idle longer than this are swept; 0 disables
}

// Server bundles router, session store, token issuer and results ledger.
type Server struct {
	r      *chi.Mux
	store  store.Store
	gen    game.SecretGenerator
	tokens *token.Issuer
	ledger *results.Ledger
	idle   time.Duration
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		store:  opts.Store,
		gen:    opts.Generator,
		tokens: opts.Tokens,
		ledger: opts.Ledger,
		idle:   opts.SessionIdle,
	}
	origin := opts.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(origin))                    // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "bullscows",
			"endpoints": []string{"/health", "POST /session", "GET /round", "POST /round",
				"POST /round/guess", "POST /round/reset", "/results/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		loaded, rejected := words.Stats()
		res := map[string]any{"loaded": loaded, "rejected": rejected}
		if q := r.URL.Query().Get("word"); q != "" {
			res["contains"] = words.Contains(q)
		}
		writeJSON(w, http.StatusOK, res)
	})

	// --- game ---
	s.r.Group(func(r chi.Router) {
		r.Use(s.withSession)
		r.Post("/session", s.handleNewSession)
		r.Get("/round", s.handleState)
		r.Post("/round", s.handleStartRound)
		r.Post("/round/guess", s.handleGuess)
		r.Post("/round/reset", s.handleReset)
	})

	if s.ledger != nil {
		s.mountResults(s.r)
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return s
}

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one structured log line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- helpers -----------------------------------

// errorBody is the shape of every error response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}
