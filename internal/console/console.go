// internal/console/console.go
//
// Terminal front end for a single player (the -play flag).
// Responsibilities:
//   - Mode menu, guess prompt and per-guess feedback.
//   - Health bar (bulls of the last guess) and a progress bar of guesses used.
//   - Win / loss banners and a session summary on quit.
//
// All game rules live in internal/game; this package only reads lines,
// forwards them to the Session and renders the View it gets back.

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/TwiN/go-color"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/bullscows/internal/game"
	"github.com/robalobadob/bullscows/internal/results"
)

const healthWidth = 20

// cmdPrefix marks in-round commands. It is never a digit or a letter, so no
// command can shadow a valid guess.
const cmdPrefix = ":"

// Console drives one Session from line-oriented input.
type Console struct {
	in   *bufio.Scanner
	out  io.Writer
	sess *game.Session
	rec  results.Recorder // optional

	played int
	won    int
}

// New returns a Console reading from in and writing to out.
func New(in io.Reader, out io.Writer, sess *game.Session, rec results.Recorder) *Console {
	return &Console{in: bufio.NewScanner(in), out: out, sess: sess, rec: rec}
}

// Run plays rounds until the player quits, input ends or ctx is cancelled.
func Run(ctx context.Context, in io.Reader, out io.Writer, sess *game.Session, rec results.Recorder) error {
	return New(in, out, sess, rec).Run(ctx)
}

// errQuit ends Run without an error.
var errQuit = errors.New("quit")

// Run is the menu loop.
func (c *Console) Run(ctx context.Context) error {
	c.printf("%s\n", color.Ize(color.Bold, "Bulls and Cows"))
	c.printf("Guess the 4-character secret. A bull is a right character in the right place,\n")
	c.printf("a cow is a right character in the wrong place.\n")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		mode, err := c.chooseMode()
		if err == nil {
			err = c.playRound(ctx, mode)
		}
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			c.summary()
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// chooseMode shows the menu until a valid mode is picked.
func (c *Console) chooseMode() (game.Mode, error) {
	for {
		c.printf("\nChoose a mode:\n")
		c.printf("  [1] numbers  4 different digits, %d guesses\n", game.ModeNumeric.MaxGuesses())
		c.printf("  [2] words    4 different letters, %d guesses\n", game.ModeWord.MaxGuesses())
		c.printf("  [q] quit\n> ")

		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		if isQuit(line) {
			return "", errQuit
		}
		mode, err := game.ParseMode(line)
		if err != nil {
			c.printf("%s\n", color.Ize(color.Red, "Pick 1 or 2."))
			continue
		}
		return mode, nil
	}
}

// playRound runs one round to its end, or until the player leaves it.
func (c *Console) playRound(ctx context.Context, mode game.Mode) error {
	v, err := c.sess.StartRound(mode)
	if err != nil {
		return fmt.Errorf("start round: %w", err)
	}
	c.printf("\nNew %s round. You have %s.\n", mode, english.Plural(v.MaxGuesses, "guess", "guesses"))
	c.printf("Commands: :history, :menu, :quit\n")

	for v.Active {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printf("\n%s guess (%d left): ", humanize.Ordinal(v.Turn), v.Remaining)
		line, err := c.readLine()
		if err != nil {
			return err
		}

		if cmd, ok := strings.CutPrefix(line, cmdPrefix); ok {
			switch strings.ToLower(strings.TrimSpace(cmd)) {
			case "quit", "q", "exit":
				c.sess.Reset()
				return errQuit
			case "menu":
				c.sess.Reset()
				return nil
			case "history":
				c.history(v)
			case "help":
				c.printf("Enter 4 different %s, or one of: :history, :menu, :quit\n", mode.Label())
			default:
				c.printf("%s\n", color.Ize(color.Red, "Unknown command "+line+", try :help."))
			}
			continue
		}

		out, err := c.sess.SubmitGuess(line)
		switch {
		case errors.Is(err, game.ErrNotFourUniqueChars):
			c.printf("%s\n", color.Ize(color.Red, "Enter exactly 4 different characters."))
			continue
		case errors.Is(err, game.ErrWrongCharacterClass):
			c.printf("%s\n", color.Ize(color.Red, "Use only "+mode.Label()+"."))
			continue
		case err != nil:
			return fmt.Errorf("submit guess: %w", err)
		}

		v = c.sess.State()
		c.feedback(out, v)
		if out.Terminal() {
			c.finish(ctx, out, v)
		}
	}
	return nil
}

// feedback prints the score line, health bar and progress bar.
func (c *Console) feedback(out game.Outcome, v game.View) {
	last := v.History[len(v.History)-1]
	c.printf("%s  %s, %s\n", last.Guess,
		english.Plural(out.Bulls, "bull", "bulls"),
		english.Plural(out.Cows, "cow", "cows"))
	c.printf("health   %s\n", healthBar(v.Health))
	c.progress(v.Progress)
}

// finish prints the round banner and records the result.
func (c *Console) finish(ctx context.Context, out game.Outcome, v game.View) {
	c.played++
	switch out.Kind {
	case game.OutcomeWon:
		c.won++
		c.printf("\n%s\n", color.Ize(color.Green, fmt.Sprintf("You got it in %s!",
			english.Plural(out.TurnsTaken, "guess", "guesses"))))
	case game.OutcomeLost:
		c.printf("\n%s\n", color.Ize(color.Red, fmt.Sprintf("Out of guesses. The secret was %s.",
			strings.ToUpper(out.Secret))))
	}

	if c.rec == nil {
		return
	}
	res, ok := results.FromView(c.sess.ID, v)
	if !ok {
		return
	}
	if err := c.rec.Record(ctx, res); err != nil {
		log.Warn().Err(err).Msg("record result")
	}
}

// history prints the round's guesses as a table.
func (c *Console) history(v game.View) {
	if len(v.History) == 0 {
		c.printf("No guesses yet.\n")
		return
	}
	c.printf("  #  guess  bulls  cows\n")
	for _, h := range v.History {
		c.printf("%3d  %-5s  %5d  %4d\n", h.Ordinal, h.Guess, h.Bulls, h.Cows)
	}
}

// progress renders the guesses-used bar once.
func (c *Console) progress(p game.Progress) {
	bar := progressbar.NewOptions(p.Max,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("guesses"),
		progressbar.OptionSetWidth(healthWidth),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetRenderBlankState(true),
	)
	_ = bar.Set(p.Used)
	c.printf("\n")
}

// summary prints totals for the whole session.
func (c *Console) summary() {
	if c.played == 0 {
		c.printf("\nBye!\n")
		return
	}
	c.printf("\nPlayed %s, won %d. Session started %s.\n",
		english.Plural(c.played, "round", "rounds"), c.won,
		humanize.Time(c.sess.CreatedAt))
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func isQuit(s string) bool {
	switch strings.ToLower(s) {
	case "q", "quit", "exit":
		return true
	}
	return false
}

// healthBar draws h as a coloured bar followed by its percentage.
func healthBar(h game.Health) string {
	filled := h.Percent * healthWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", healthWidth-filled)
	tint := color.Red
	switch h.Tier {
	case game.TierFull:
		tint = color.Green
	case game.TierHalf:
		tint = color.Yellow
	}
	return color.Ize(tint, bar) + fmt.Sprintf(" %3d%%", h.Percent)
}
