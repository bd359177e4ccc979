package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lox/parallelpoker/internal/game"
	"github.com/lox/parallelpoker/internal/shop"
	"github.com/lox/parallelpoker/poker"
)

// processAction runs one line of input and reports whether to keep going.
func (m *Model) processAction(input string) bool {
	parts := strings.Fields(strings.ToLower(input))
	if len(parts) == 0 {
		return m.handleContinue()
	}
	action, args := parts[0], parts[1:]
	m.logger.Debug("Processing action", "action", action, "args", args)

	switch action {
	case "quit", "q", "exit":
		return false
	case "start", "new":
		m.handleStart()
	case "bet", "b":
		m.handleBet(args)
	case "hands", "h":
		m.handleHands(args)
	case "deal", "d":
		m.handleDeal()
	case "hold":
		m.handleHold(args)
	case "devil", "dd":
		m.handleDevilsDeal()
	case "draw":
		m.handleDraw()
	case "next", "n":
		m.handleNext()
	case "buy":
		m.handleBuy(args)
	case "leave", "l":
		m.handleLeave()
	case "end":
		m.apply((*game.Engine).EndRun, func(game.State) {
			m.AddLogEntry(WarningStyle.Render("Run abandoned."))
		})
	case "menu":
		m.apply((*game.Engine).ReturnToMenu, func(game.State) {
			m.AddLogEntry("Back at the menu.")
		})
	case "status", "st":
		m.handleStatus()
	case "conditions", "c":
		m.handleConditions()
	case "history":
		m.handleHistory()
	case "shop":
		m.addLines(shopLines(m.session.Engine(), m.session.State()))
	case "cheat":
		m.handleCheat(args)
	case "help", "?":
		m.handleHelp()
	default:
		m.AddLogEntry(fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.", action))
	}
	return true
}

// apply runs action against the session, logging a rejection or calling
// onApplied with the new state.
func (m *Model) apply(action game.Action, onApplied func(game.State)) bool {
	out := m.session.Do(action)
	if !out.Changed() {
		m.AddLogEntry(ErrorStyle.Render("Error: " + out.Reason))
		return false
	}
	if onApplied != nil {
		onApplied(out.Next)
	}
	return true
}

// handleContinue does whatever Enter means in the current phase.
func (m *Model) handleContinue() bool {
	switch m.session.State().Phase {
	case game.PhaseMenu, game.PhaseGameOver:
		m.handleStart()
	case game.PhasePreDraw:
		m.handleDeal()
	case game.PhasePlaying:
		m.handleDraw()
	case game.PhaseAnimation, game.PhaseResults:
		m.handleNext()
	case game.PhaseShop:
		m.handleLeave()
	}
	return true
}

func (m *Model) handleStart() {
	m.apply((*game.Engine).StartRun, func(s game.State) {
		m.ClearLog()
		m.AddBoldLogEntry(fmt.Sprintf("Run %s", s.RunID))
		m.AddLogEntry(fmt.Sprintf("Starting with %d credits, %d hands at %d per hand.",
			s.Credits, s.SelectedHandCount, s.BetAmount))
	})
}

func (m *Model) handleBet(args []string) {
	n, ok := m.intArg(args, "bet <amount>")
	if !ok {
		return
	}
	m.apply(func(e *game.Engine, s game.State) game.Outcome { return e.SetBet(s, n) }, func(s game.State) {
		m.AddLogEntry(fmt.Sprintf("Bet %d per hand, deal costs %d.", s.BetAmount, s.DealCost()))
	})
}

func (m *Model) handleHands(args []string) {
	n, ok := m.intArg(args, "hands <count>")
	if !ok {
		return
	}
	m.apply(func(e *game.Engine, s game.State) game.Outcome { return e.SetHandCount(s, n) }, func(s game.State) {
		m.AddLogEntry(fmt.Sprintf("Playing %d of %d hands, deal costs %d.", s.SelectedHandCount, s.HandCount, s.DealCost()))
	})
}

func (m *Model) handleDeal() {
	m.apply((*game.Engine).Deal, func(s game.State) {
		m.AddLogEntry("")
		m.AddLogEntry(HeaderStyle.Render(fmt.Sprintf(" ROUND %d ", s.Round)) +
			fmt.Sprintf(" %d hands at %d", s.SelectedHandCount, s.BetAmount))
		m.AddLogEntry("Dealt: " + formatDealt(s))
		if s.DevilsDeal.Offer != nil {
			m.AddLogEntry(describeOffer(s))
		}
	})
}

// handleHold toggles the hold on each 1-based position given.
func (m *Model) handleHold(args []string) {
	if len(args) == 0 {
		m.AddLogEntry(ErrorStyle.Render("Usage: hold <positions>, e.g. hold 1 3 5"))
		return
	}
	for _, arg := range args {
		for _, ch := range strings.Split(arg, ",") {
			pos, err := strconv.Atoi(ch)
			if err != nil {
				m.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("Error: %q is not a position", ch)))
				return
			}
			if !m.apply(func(e *game.Engine, s game.State) game.Outcome { return e.ToggleHold(s, pos-1) }, nil) {
				return
			}
		}
	}
	m.AddLogEntry("Holding: " + formatDealt(m.session.State()))
}

func (m *Model) handleDevilsDeal() {
	m.apply((*game.Engine).ToggleDevilsDealHold, func(s game.State) {
		m.AddLogEntry(describeOffer(s))
	})
}

func (m *Model) handleDraw() {
	m.apply((*game.Engine).Draw, func(s game.State) {
		if s.Phase == game.PhasePlaying {
			m.AddLogEntry(fmt.Sprintf("Draw %d of %d: %s", s.DrawsUsed, s.MaxDraws, formatDealt(s)))
			return
		}
		m.AddLogEntry("Final hand: " + formatCards(s.DealtCards))
	})
}

// handleNext reveals the results after a draw, then settles the round.
func (m *Model) handleNext() {
	switch m.session.State().Phase {
	case game.PhaseAnimation:
		m.apply((*game.Engine).FinishAnimation, func(s game.State) {
			m.addLines(batchLines(s.LastBatch))
		})
	case game.PhaseResults:
		m.settle()
	default:
		m.AddLogEntry(ErrorStyle.Render("Error: no round to settle"))
	}
}

func (m *Model) settle() {
	prev := m.session.State()
	payout := 0
	if prev.LastBatch != nil {
		payout = prev.LastBatch.TotalPayout
	}
	m.apply(func(e *game.Engine, s game.State) game.Outcome { return e.SettleRound(s, payout) }, func(s game.State) {
		m.AddLogEntry(fmt.Sprintf("Round %d paid %d. Credits %d.", prev.Round, s.LastRound.Payout, s.Credits))
		if s.MinimumBet != prev.MinimumBet {
			m.AddLogEntry(WarningStyle.Render(fmt.Sprintf("Minimum bet is now %d.", s.MinimumBet)))
		}
		if s.IsEndlessMode && !prev.IsEndlessMode {
			m.AddLogEntry(WarningStyle.Render("Endless mode! Win too much and the run is over."))
		}
		switch s.Phase {
		case game.PhaseGameOver:
			m.AddLogEntry("")
			if s.Failure != nil {
				m.AddLogEntry(ErrorStyle.Render("GAME OVER: " + game.DescribeFailure(*s.Failure)))
			} else {
				m.AddLogEntry(ErrorStyle.Render("GAME OVER: out of credits."))
			}
			m.AddLogEntry(fmt.Sprintf("Survived %d rounds, earned %d, peak streak %d.",
				s.Round-1, s.TotalEarnings, s.PeakStreak))
		case game.PhaseShop:
			m.addLines(shopLines(m.session.Engine(), s))
		}
	})
}

// handleBuy buys by slot number or item id. remove-card takes a card.
func (m *Model) handleBuy(args []string) {
	if len(args) == 0 {
		m.AddLogEntry(ErrorStyle.Render("Usage: buy <slot> [card]"))
		return
	}
	s := m.session.State()
	id := shop.ItemID(args[0])
	if slot, err := strconv.Atoi(args[0]); err == nil {
		if slot < 1 || slot > len(s.ShopOptions) {
			m.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("Error: no item in slot %d", slot)))
			return
		}
		id = s.ShopOptions[slot-1]
	}
	target := ""
	if len(args) > 1 {
		c, err := poker.ParseCard(args[1])
		if err != nil {
			m.AddLogEntry(ErrorStyle.Render("Error: " + err.Error()))
			return
		}
		target = c.ID
	}

	m.apply(func(e *game.Engine, s game.State) game.Outcome { return e.Purchase(s, id, target) }, func(next game.State) {
		m.AddLogEntry(SuccessStyle.Render(fmt.Sprintf("Bought %s. Credits %d.", id, next.Credits)))
		m.addLines(shopLines(m.session.Engine(), next))
	})
}

func (m *Model) handleLeave() {
	m.apply((*game.Engine).LeaveShop, func(s game.State) {
		m.AddLogEntry(fmt.Sprintf("Left the shop. Round %d, minimum bet %d.", s.Round, s.MinimumBet))
	})
}

func (m *Model) handleStatus() {
	s := m.session.State()
	e := m.session.Engine()
	m.AddLogEntry(fmt.Sprintf("Phase %s • round %d • credits %d • bet %d (min %d) • hands %d/%d",
		s.Phase, s.Round, s.Credits, s.BetAmount, s.MinimumBet, s.SelectedHandCount, s.HandCount))
	m.AddLogEntry(fmt.Sprintf("Deck %d cards • wild %d • dead %d • removed %d • draws %d • extra cards %d",
		len(s.DeckMods.Deck()), len(s.DeckMods.ActiveWildCards()), len(s.DeckMods.ActiveDeadCards()),
		len(s.DeckMods.RemovedCards), s.MaxDraws, s.ExtraCards))
	m.AddLogEntry(fmt.Sprintf("Devil's Deal %.0f%% chance at %.0f%% cost • streak %d (peak %d)",
		e.DevilsDealChance(s), e.DevilsDealCostPercent(s), s.StreakCounter, s.PeakStreak))
}

func (m *Model) handleConditions() {
	s := m.session.State()
	if !s.IsEndlessMode {
		m.AddLogEntry(InfoStyle.Render(fmt.Sprintf("Endless mode starts after round %d.",
			m.session.Engine().Config().Endless.StartRound)))
	}
	m.addLines(conditionLines(m.session.Engine(), s))
}

func (m *Model) handleHistory() {
	if m.history == nil {
		m.AddLogEntry(InfoStyle.Render("History is not being recorded."))
		return
	}
	entries := m.history.Last(historyLines)
	if len(entries) == 0 {
		m.AddLogEntry(InfoStyle.Render("No rounds settled yet."))
		return
	}
	for _, e := range entries {
		m.AddLogEntry(fmt.Sprintf("Round %3d  bet %-4d hands %-3d won %-3d paid %-6d net %+d  best %s",
			e.Round, e.Bet, e.Hands, e.Wins, e.Payout, e.Net(), e.BestRank))
	}
	t := m.history.Totals()
	m.AddLogEntry(InfoStyle.Render(fmt.Sprintf("%d rounds, net %+d over %s", t.Rounds, t.Net, t.Duration.Round(time.Second))))
}

func (m *Model) handleCheat(args []string) {
	if !m.cheats {
		m.AddLogEntry(ErrorStyle.Render("Error: cheats are disabled"))
		return
	}
	if len(args) == 0 {
		m.AddLogEntry(ErrorStyle.Render("Usage: cheat credits <n> | cheat devil | cheat endless"))
		return
	}
	switch args[0] {
	case "credits":
		n, ok := m.intArg(args[1:], "cheat credits <n>")
		if !ok {
			return
		}
		m.apply(func(e *game.Engine, s game.State) game.Outcome { return e.CheatAddCredits(s, n) }, func(s game.State) {
			m.AddLogEntry(WarningStyle.Render(fmt.Sprintf("Credits %d.", s.Credits)))
		})
	case "devil":
		m.apply((*game.Engine).CheatForceDevilsDeal, func(s game.State) {
			m.AddLogEntry(describeOffer(s))
		})
	case "endless":
		m.apply((*game.Engine).CheatSkipToEndless, func(s game.State) {
			m.AddLogEntry(WarningStyle.Render(fmt.Sprintf("Skipped to round %d in endless mode.", s.Round)))
		})
	default:
		m.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("Error: unknown cheat %q", args[0])))
	}
}

func (m *Model) handleHelp() {
	m.AddLogEntry("Available commands:")
	m.AddLogEntry("Round:")
	m.AddLogEntry("  bet <n>        - Set the bet per hand")
	m.AddLogEntry("  hands <n>      - Set how many parallel hands to play")
	m.AddLogEntry("  deal           - Deal the cards")
	m.AddLogEntry("  hold <pos...>  - Toggle holds, e.g. hold 1 3")
	m.AddLogEntry("  devil          - Take or decline the Devil's Deal")
	m.AddLogEntry("  draw           - Draw")
	m.AddLogEntry("  next           - Reveal results, then collect")
	m.AddLogEntry("Shop:")
	m.AddLogEntry("  buy <slot> [card] - Buy an item; remove-card needs a card such as Ah")
	m.AddLogEntry("  leave          - Leave the shop")
	m.AddLogEntry("Information:")
	m.AddLogEntry("  status         - Show run details")
	m.AddLogEntry("  conditions     - Show endless-mode limits")
	m.AddLogEntry("  history        - Show recent rounds")
	m.AddLogEntry("Utility:")
	m.AddLogEntry("  start | end | menu | help | quit")
	m.AddLogEntry("Enter on its own does the obvious next step.")
}

func (m *Model) intArg(args []string, usage string) (int, bool) {
	if len(args) != 1 {
		m.AddLogEntry(ErrorStyle.Render("Usage: " + usage))
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		m.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("Error: %q is not a number", args[0])))
		return 0, false
	}
	return n, true
}
