// internal/config/config.go
//
// Process configuration.
// Order of precedence: command-line flags, then environment (optionally loaded
// from a .env file), then defaults.
//
// Environment variables:
//   PORT, LOG_LEVEL, CLIENT_ORIGIN, SESSION_SECRET, TOKEN_TTL_HOURS,
//   SESSION_IDLE_MINUTES, WORDS_FILE, BULLSCOWS_SEED, APP_ENV

package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting.
type Config struct {
	Port          int
	LogLevel      string
	ClientOrigin  string
	SessionSecret string
	TokenTTL      time.Duration
	SessionIdle   time.Duration
	WordsFile     string
	Seed          uint64 // 0: seed from the clock
	Play          bool   // run the terminal game instead of the HTTP server
	Production    bool   // APP_ENV=production: secure cookies
}

// Load reads .env (if present) and then parses args.
func Load(args []string) (Config, error) {
	_ = godotenv.Load()
	return Parse(args)
}

// Parse builds a Config from args with environment fallbacks.
func Parse(args []string) (Config, error) {
	var cfg Config
	var seed int64

	fs := flag.NewFlagSet("bullscows", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "p", 0, "HTTP port")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.WordsFile, "words", "", "Word-mode dictionary file (one word per line)")
	fs.Int64Var(&seed, "seed", 0, "Random seed for secrets (0 = time based)")
	fs.BoolVar(&cfg.Play, "play", false, "Play in the terminal instead of serving HTTP")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if v := os.Getenv("PORT"); v != "" {
			port, err := strconv.Atoi(v)
			if err != nil || port <= 0 || port > 65535 {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 5175
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	}
	if cfg.WordsFile == "" {
		cfg.WordsFile = os.Getenv("WORDS_FILE")
	}
	if seed == 0 {
		if v := os.Getenv("BULLSCOWS_SEED"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid BULLSCOWS_SEED env variable")
			}
			seed = n
		}
	}
	if seed < 0 {
		return Config{}, errors.New("seed must not be negative")
	}
	cfg.Seed = uint64(seed)

	cfg.ClientOrigin = getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	cfg.Production = os.Getenv("APP_ENV") == "production"

	ttl, err := envInt("TOKEN_TTL_HOURS", 24)
	if err != nil {
		return Config{}, err
	}
	cfg.TokenTTL = time.Duration(ttl) * time.Hour

	idle, err := envInt("SESSION_IDLE_MINUTES", 60)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionIdle = time.Duration(idle) * time.Minute

	return cfg, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses a positive integer env variable, falling back to def when unset.
func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", k)
	}
	return n, nil
}
