package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/parallelpoker/internal/config"
	"github.com/lox/parallelpoker/internal/randutil"
	"github.com/lox/parallelpoker/internal/runid"
	"github.com/lox/parallelpoker/poker"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestEngine(t *testing.T, mutate func(*config.Config)) *Engine {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(t, cfg.Validate())
	return NewEngine(cfg,
		WithRand(randutil.New(1)),
		WithLogger(quietLogger()),
		WithIDs(runid.NewGenerator(quartz.NewMock(t), randutil.New(2))),
	)
}

// started returns a fresh run in preDraw.
func started(t *testing.T, e *Engine) State {
	t.Helper()
	out := e.StartRun(e.NewState())
	require.True(t, out.Changed())
	return out.Next
}

// playing returns a state in the playing phase holding exactly the given
// dealt cards, with the rest of the deck as the round deck.
func playing(t *testing.T, e *Engine, dealt string, credits int) State {
	t.Helper()
	s := started(t, e)
	cards := poker.MustParseCards(dealt)
	s.Phase = PhasePlaying
	s.Credits = credits
	s.DealtCards = cards
	s.Held = make([]bool, len(cards))
	s.RoundDeck = poker.RemoveCards(s.DeckMods.Deck(), cards)
	s.DealCount = 1
	return s
}

func mustApply(t *testing.T, out Outcome) State {
	t.Helper()
	require.True(t, out.Changed(), "unexpected no-op: %s", out.Reason)
	return out.Next
}

func hold(t *testing.T, e *Engine, s State, idx ...int) State {
	t.Helper()
	for _, i := range idx {
		s = mustApply(t, e.ToggleHold(s, i))
	}
	return s
}
