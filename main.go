// main.go
//
// Entry point for the Bulls and Cows server.
// Startup:
//   - Load configuration (.env, environment, flags) and set the log level.
//   - Load the word-mode dictionary (file or embedded list).
//   - Build the secret generator, the in-memory results ledger and the token issuer.
//   - Either play in the terminal (-play) or serve HTTP until SIGINT/SIGTERM.

package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bullscows/internal/config"
	"github.com/robalobadob/bullscows/internal/console"
	"github.com/robalobadob/bullscows/internal/game"
	"github.com/robalobadob/bullscows/internal/httpserver"
	"github.com/robalobadob/bullscows/internal/results"
	"github.com/robalobadob/bullscows/internal/store"
	"github.com/robalobadob/bullscows/internal/token"
	"github.com/robalobadob/bullscows/internal/words"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.Play {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	if err := words.Init(cfg.WordsFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	gen, err := game.NewSeededGenerator(seed, words.List())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build secret generator")
	}

	db, err := results.Open("bullscows")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open results ledger")
	}
	defer db.Close()
	ledger := results.NewLedger(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Play {
		sess := game.NewSession(gen)
		if err := console.Run(ctx, os.Stdin, os.Stdout, sess, ledger); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("game ended")
		}
		return
	}

	tokens, err := token.NewIssuer(cfg.SessionSecret, cfg.TokenTTL, cfg.Production)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build token issuer")
	}
	if cfg.SessionSecret == "" {
		log.Warn().Msg("SESSION_SECRET not set, tokens will not survive a restart")
	}

	srv := httpserver.New(httpserver.Options{
		Store:        store.NewMemoryStore(),
		Generator:    gen,
		Tokens:       tokens,
		Ledger:       ledger,
		ClientOrigin: cfg.ClientOrigin,
		SessionIdle:  cfg.SessionIdle,
	})

	port := strconv.Itoa(cfg.Port)
	log.Info().
		Str("port", port).
		Int("words", len(words.List())).
		Uint64("seed", seed).
		Msg("starting bullscows server")
	if err := srv.Start(ctx, ":"+port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}
