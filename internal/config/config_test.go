package config

import (
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "CLIENT_ORIGIN", "SESSION_SECRET", "TOKEN_TTL_HOURS",
		"SESSION_IDLE_MINUTES", "WORDS_FILE", "BULLSCOWS_SEED", "APP_ENV"} {
		t.Setenv(k, "")
	}

	cfg, err := Parse([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 5175 {
		t.Errorf("expected port 5175, got %d", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %q", cfg.LogLevel)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.SessionIdle != time.Hour {
		t.Errorf("unexpected durations: ttl %v idle %v", cfg.TokenTTL, cfg.SessionIdle)
	}
	if cfg.Seed != 0 || cfg.Play || cfg.Production {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestParse_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BULLSCOWS_SEED", "77")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("APP_ENV", "production")
	t.Setenv("WORDS_FILE", "/tmp/words.txt")

	cfg, err := Parse([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9000 || cfg.LogLevel != "debug" || cfg.Seed != 77 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.TokenTTL != 2*time.Hour || !cfg.Production || cfg.WordsFile != "/tmp/words.txt" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestParse_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BULLSCOWS_SEED", "5")

	cfg, err := Parse([]string{"-p", "8080", "-seed", "12", "-play", "-words", "list.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.Seed != 12 || !cfg.Play || cfg.WordsFile != "list.txt" {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestParse_InvalidValues(t *testing.T) {
	cases := []struct {
		key, val string
	}{
		{"PORT", "not-a-port"},
		{"PORT", "70000"},
		{"BULLSCOWS_SEED", "x"},
		{"TOKEN_TTL_HOURS", "-1"},
		{"SESSION_IDLE_MINUTES", "soon"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.val, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			if _, err := Parse([]string{}); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.val)
			}
		})
	}
}

func TestParse_UnknownFlag(t *testing.T) {
	if _, err := Parse([]string{"-nope"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
