package tui

import (
	"fmt"
	"strings"

	"github.com/lox/parallelpoker/internal/game"
	"github.com/lox/parallelpoker/internal/parallel"
	"github.com/lox/parallelpoker/internal/shop"
	"github.com/lox/parallelpoker/poker"
)

// maxListedHands is how many individual parallel hands the log shows.
const maxListedHands = 10

func formatCard(c poker.Card) string {
	switch {
	case c.Dead:
		return DeadCardStyle.Render(c.String())
	case c.Wild:
		return WildCardStyle.Render(c.String())
	case c.Suit.IsRed():
		return RedCardStyle.Render(c.String())
	default:
		return BlackCardStyle.Render(c.String())
	}
}

// formatCards formats cards with colors
func formatCards(cards []poker.Card) string {
	if len(cards) == 0 {
		return ""
	}
	formatted := make([]string, len(cards))
	for i, c := range cards {
		formatted[i] = formatCard(c)
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// formatDealt shows the dealt cards with their positions, marking held ones.
func formatDealt(s game.State) string {
	parts := make([]string, len(s.DealtCards))
	for i, c := range s.DealtCards {
		label := fmt.Sprintf("%d:%s", i+1, formatCard(c))
		if i < len(s.Held) && s.Held[i] {
			label = HeldStyle.Render("*") + label
		}
		parts[i] = label
	}
	return strings.Join(parts, "  ")
}

func describeOffer(s game.State) string {
	offer := s.DevilsDeal.Offer
	if offer == nil {
		return ""
	}
	status := "declined"
	if s.DevilsDeal.Held {
		status = "held"
	}
	return DevilStyle.Render(fmt.Sprintf("Devil's Deal: %s pays %dx for %d credits (%s)",
		offer.Card.String(), offer.Multiplier, offer.Cost, status))
}

// batchLines summarizes a scored draw: the first hands in scoring order, then
// a per-rank tally.
func batchLines(b *parallel.Batch) []string {
	if b == nil {
		return nil
	}
	lines := []string{HeaderStyle.Render(fmt.Sprintf(" %d hands • %d won • %.1f%% • paid %d ",
		b.Hands(), b.Wins, b.WinPercent(), b.TotalPayout))}

	for i, r := range b.Results {
		if i == maxListedHands {
			lines = append(lines, InfoStyle.Render(fmt.Sprintf("  … %d more", len(b.Results)-maxListedHands)))
			break
		}
		line := fmt.Sprintf("  %3d %s %-16s", i+1, formatCards(r.Hand.Cards[:]), r.Rank.String())
		if r.Won() {
			line += SuccessStyle.Render(fmt.Sprintf(" +%d (streak %d, x%.2f)", r.Payout, r.Streak, r.StreakMultiplier))
		}
		lines = append(lines, line)
	}

	for _, rank := range poker.HandRanks() {
		sum := b.ByRank[rank]
		if sum.Count == 0 || rank == poker.HighCard {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %-16s x%-4d %d", rank.String(), sum.Count, sum.Payout))
	}
	if b.PeakStreak > 1 {
		lines = append(lines, WarningStyle.Render(fmt.Sprintf("  Peak streak %d", b.PeakStreak)))
	}
	return lines
}

// shopLines lists the items on offer with their slot numbers and prices.
func shopLines(e *game.Engine, s game.State) []string {
	if len(s.ShopOptions) == 0 {
		return []string{InfoStyle.Render("Nothing left on offer. Enter to leave the shop.")}
	}
	cfg := e.Config().Shop
	lines := []string{HeaderStyle.Render(" SHOP ")}
	for i, id := range s.ShopOptions {
		it, ok := cfg.Item(id)
		if !ok {
			continue
		}
		cost, _ := e.ItemCost(s, id)
		name := rarityStyle(it.Rarity).Render(it.Name)
		lines = append(lines, fmt.Sprintf("  %d. %s (%s) %d credits - %s",
			i+1, name, shop.RarityName(it.Rarity), cost, it.Description))
	}
	return lines
}

// conditionLines shows how close the run is to each endless failure.
func conditionLines(e *game.Engine, s game.State) []string {
	var lines []string
	for _, c := range e.EndlessConditions(s) {
		if !c.Enabled {
			continue
		}
		style := InfoStyle
		if c.Violated() {
			style = ErrorStyle
		} else if c.Threshold > 0 && c.Value >= 0.8*c.Threshold {
			style = WarningStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s: %.1f / %.1f", c.Condition, c.Value, c.Threshold)))
	}
	return lines
}

// phaseHint describes what Enter does in each phase.
func phaseHint(p game.Phase) string {
	switch p {
	case game.PhaseMenu:
		return "Enter to start a run"
	case game.PhasePreDraw:
		return "Enter to deal • bet <n> • hands <n>"
	case game.PhasePlaying:
		return "hold <positions> • devil • Enter to draw"
	case game.PhaseAnimation:
		return "Enter to reveal results"
	case game.PhaseResults:
		return "Enter to collect"
	case game.PhaseShop:
		return "buy <slot> [card] • Enter to leave"
	case game.PhaseGameOver:
		return "Enter for a new run • menu"
	default:
		return ""
	}
}
