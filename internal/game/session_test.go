package game

import (
	"errors"
	"testing"
)

// fixedGen always hands out the same secret.
type fixedGen struct{ secret string }

func (f fixedGen) Generate(mode Mode) (string, int, error) {
	if !mode.Valid() {
		return "", 0, ErrInvalidMode
	}
	return f.secret, mode.MaxGuesses(), nil
}

func newRound(t *testing.T, mode Mode, secret string) *Session {
	t.Helper()
	s := NewSession(fixedGen{secret: secret})
	v, err := s.StartRound(mode)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if v.Phase != PhaseInRound || !v.Active || v.Turn != 1 || len(v.History) != 0 {
		t.Fatalf("unexpected fresh round view: %+v", v)
	}
	return s
}

func TestSession_StartsIdle(t *testing.T) {
	s := NewSession(fixedGen{secret: "1234"})
	v := s.State()
	if v.Phase != PhaseIdle || v.Active || v.Mode != "" {
		t.Fatalf("expected idle session, got %+v", v)
	}
	if _, err := s.SubmitGuess("1234"); !errors.Is(err, ErrRoundNotActive) {
		t.Fatalf("expected ErrRoundNotActive, got %v", err)
	}
}

func TestSession_FeedbackAndHistory(t *testing.T) {
	s := newRound(t, ModeNumeric, "1234")

	out, err := s.SubmitGuess(" 1243 ")
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != OutcomeFeedback || out.Bulls != 2 || out.Cows != 2 || out.Remaining != 11 {
		t.Fatalf("unexpected outcome %+v", out)
	}

	v := s.State()
	if v.Turn != 2 || len(v.History) != 1 {
		t.Fatalf("turn=%d history=%d, want 2 and 1", v.Turn, len(v.History))
	}
	want := HistoryEntry{Ordinal: 1, Guess: "1243", Bulls: 2, Cows: 2}
	if v.History[0] != want {
		t.Fatalf("history[0] = %+v, want %+v", v.History[0], want)
	}
	if v.LastBulls != 2 || v.Health.Percent != 50 || v.Health.Tier != TierHalf {
		t.Fatalf("unexpected health %+v (last bulls %d)", v.Health, v.LastBulls)
	}
	if v.Progress != (Progress{Used: 1, Max: 12}) {
		t.Fatalf("unexpected progress %+v", v.Progress)
	}
}

func TestSession_WordGuessUppercasedAndCaseInsensitive(t *testing.T) {
	s := newRound(t, ModeWord, "love")

	out, err := s.SubmitGuess("PoLe")
	if err != nil {
		t.Fatal(err)
	}
	if out.Bulls != 2 || out.Cows != 1 {
		t.Fatalf("pole vs love = %d,%d; want 2,1", out.Bulls, out.Cows)
	}
	if got := s.State().History[0].Guess; got != "POLE" {
		t.Fatalf("history guess = %q, want POLE", got)
	}

	out, err = s.SubmitGuess("LOVE")
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != OutcomeWon || out.TurnsTaken != 2 {
		t.Fatalf("expected win on turn 2, got %+v", out)
	}
}

func TestSession_Win(t *testing.T) {
	s := newRound(t, ModeNumeric, "1234")
	if _, err := s.SubmitGuess("5678"); err != nil {
		t.Fatal(err)
	}
	out, err := s.SubmitGuess("1234")
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != OutcomeWon || out.TurnsTaken != 2 || out.Bulls != 4 {
		t.Fatalf("unexpected outcome %+v", out)
	}

	v := s.State()
	if v.Phase != PhaseWon || v.Active {
		t.Fatalf("expected inactive won session, got %+v", v)
	}
	if v.Turn != 2 {
		t.Fatalf("turn advanced past the winning guess: %d", v.Turn)
	}
	if v.Outcome == nil || v.Outcome.Kind != OutcomeWon || v.Outcome.Secret != "" {
		t.Fatalf("unexpected terminal outcome %+v", v.Outcome)
	}
	if v.Health.Tier != TierFull {
		t.Fatalf("expected full health after win, got %+v", v.Health)
	}
	if _, err := s.SubmitGuess("1234"); !errors.Is(err, ErrRoundNotActive) {
		t.Fatalf("guess after win: expected ErrRoundNotActive, got %v", err)
	}
}

func TestSession_LossAfterTwelveNumericGuesses(t *testing.T) {
	s := newRound(t, ModeNumeric, "1234")
	wrong := []string{"5678", "5679", "5670", "5689", "5680", "5690",
		"5789", "5780", "5790", "5890", "6789", "6780"}

	for i, g := range wrong {
		out, err := s.SubmitGuess(g)
		if err != nil {
			t.Fatalf("guess %d: %v", i+1, err)
		}
		if i < len(wrong)-1 {
			if out.Kind != OutcomeFeedback || out.Remaining != 12-(i+1) {
				t.Fatalf("guess %d: unexpected outcome %+v", i+1, out)
			}
			continue
		}
		if out.Kind != OutcomeLost || out.Secret != "1234" {
			t.Fatalf("12th guess: expected loss exposing secret, got %+v", out)
		}
	}

	v := s.State()
	if v.Phase != PhaseLost || v.Active || len(v.History) != 12 {
		t.Fatalf("unexpected lost view %+v", v)
	}
	if v.Outcome == nil || v.Outcome.Secret != "1234" {
		t.Fatalf("lost view should carry the secret, got %+v", v.Outcome)
	}
}

func TestSession_WordModeLosesAfterTen(t *testing.T) {
	s := newRound(t, ModeWord, "love")
	for i := 0; i < 9; i++ {
		if out, err := s.SubmitGuess("fish"); err != nil || out.Kind != OutcomeFeedback {
			t.Fatalf("guess %d: %+v, %v", i+1, out, err)
		}
	}
	out, err := s.SubmitGuess("fish")
	if err != nil || out.Kind != OutcomeLost || out.Secret != "love" {
		t.Fatalf("10th guess: %+v, %v", out, err)
	}
}

func TestSession_RejectedGuessesLeaveStateUnchanged(t *testing.T) {
	cases := []struct {
		mode  Mode
		guess string
		want  error
	}{
		{ModeWord, "aabb", ErrNotFourUniqueChars},
		{ModeNumeric, "1123", ErrNotFourUniqueChars},
		{ModeNumeric, "123", ErrNotFourUniqueChars},
		{ModeNumeric, "12345", ErrNotFourUniqueChars},
		{ModeNumeric, "", ErrNotFourUniqueChars},
		{ModeNumeric, "12a4", ErrWrongCharacterClass},
		{ModeWord, "lov3", ErrWrongCharacterClass},
		{ModeWord, "lo-e", ErrWrongCharacterClass},
	}
	for _, tc := range cases {
		t.Run(string(tc.mode)+"/"+tc.guess, func(t *testing.T) {
			secret := "1234"
			if tc.mode == ModeWord {
				secret = "love"
			}
			s := newRound(t, tc.mode, secret)
			before := s.State()

			_, err := s.SubmitGuess(tc.guess)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var ig *InvalidGuessError
			if !errors.As(err, &ig) {
				t.Fatalf("expected *InvalidGuessError, got %T", err)
			}

			after := s.State()
			if after.Turn != before.Turn || len(after.History) != len(before.History) || !after.Active {
				t.Fatalf("state changed by rejected guess: before %+v after %+v", before, after)
			}
		})
	}
}

func TestSession_TurnMovesOnlyOnAcceptedGuesses(t *testing.T) {
	s := newRound(t, ModeNumeric, "1234")
	inputs := []string{"5678", "aabb", "1243", "12a4", "9876"}
	wantTurn := []int{2, 2, 3, 3, 4}
	for i, in := range inputs {
		_, _ = s.SubmitGuess(in)
		v := s.State()
		if v.Turn != wantTurn[i] {
			t.Fatalf("after %q: turn %d, want %d", in, v.Turn, wantTurn[i])
		}
		if len(v.History) != v.Turn-1 {
			t.Fatalf("after %q: history %d, turn %d", in, len(v.History), v.Turn)
		}
		for j, h := range v.History {
			if h.Ordinal != j+1 {
				t.Fatalf("history[%d].Ordinal = %d", j, h.Ordinal)
			}
		}
	}
}

func TestSession_ResetAndRestart(t *testing.T) {
	s := newRound(t, ModeNumeric, "1234")
	_, _ = s.SubmitGuess("5678")

	v := s.Reset()
	if v.Phase != PhaseIdle || v.Active || v.Mode != "" || len(v.History) != 0 || v.Outcome != nil {
		t.Fatalf("unexpected view after reset: %+v", v)
	}
	if _, err := s.SubmitGuess("1234"); !errors.Is(err, ErrRoundNotActive) {
		t.Fatalf("guess after reset: expected ErrRoundNotActive, got %v", err)
	}

	v, err := s.StartRound(ModeWord)
	if err != nil {
		t.Fatal(err)
	}
	if v.Mode != ModeWord || v.MaxGuesses != 10 || v.Remaining != 10 || v.Turn != 1 {
		t.Fatalf("unexpected restarted view: %+v", v)
	}
}

func TestSession_StartRoundInvalidMode(t *testing.T) {
	s := newRound(t, ModeNumeric, "1234")
	_, _ = s.SubmitGuess("5678")

	if _, err := s.StartRound(Mode("expert")); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
	if v := s.State(); v.Turn != 2 || !v.Active {
		t.Fatalf("invalid mode must not disturb the running round: %+v", v)
	}
}

func TestSession_RejectsBrokenGeneratorSecret(t *testing.T) {
	s := NewSession(fixedGen{secret: "1123"})
	if _, err := s.StartRound(ModeNumeric); !errors.Is(err, ErrNotFourUniqueChars) {
		t.Fatalf("expected ErrNotFourUniqueChars, got %v", err)
	}
	if s.State().Phase != PhaseIdle {
		t.Fatal("session should remain idle")
	}
}

func TestSession_SeededGeneratorRoundIsWinnable(t *testing.T) {
	gen, err := NewSeededGenerator(2024, testDict)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSession(gen)
	if _, err := s.StartRound(ModeNumeric); err != nil {
		t.Fatal(err)
	}
	// Guessing the secret must win on turn 1.
	out, err := s.SubmitGuess(s.secret)
	if err != nil || out.Kind != OutcomeWon || out.TurnsTaken != 1 {
		t.Fatalf("got %+v, %v", out, err)
	}
}

func TestHealthFor(t *testing.T) {
	cases := []struct {
		bulls int
		want  Health
	}{
		{-1, Health{0, TierLow}},
		{0, Health{0, TierLow}},
		{1, Health{25, TierLow}},
		{2, Health{50, TierHalf}},
		{3, Health{75, TierHalf}},
		{4, Health{100, TierFull}},
	}
	for _, tc := range cases {
		if got := HealthFor(tc.bulls); got != tc.want {
			t.Errorf("HealthFor(%d) = %+v, want %+v", tc.bulls, got, tc.want)
		}
	}
}
