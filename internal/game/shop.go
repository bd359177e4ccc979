package game

import (
	"fmt"

	"github.com/lox/parallelpoker/internal/devilsdeal"
	"github.com/lox/parallelpoker/internal/shop"
	"github.com/lox/parallelpoker/poker"
)

// rollShop draws the shop's offers from the items still available.
func (e *Engine) rollShop(s State) []shop.ItemID {
	var pool []shop.Item
	for _, it := range e.cfg.Shop.Items {
		if e.available(s, it) == "" {
			pool = append(pool, it)
		}
	}
	options := shop.SelectByRarity(e.rng, e.cfg.Shop.Rarity, pool)
	e.logger.Debug("Shop opened", "round", s.Round, "options", options)
	return options
}

// available returns why an item cannot be bought right now, or "".
func (e *Engine) available(s State, it shop.Item) string {
	if it.SoldOut(s.Purchases[it.ID]) {
		return "sold out"
	}
	switch it.ID {
	case shop.ExtraCard:
		if len(s.DeckMods.Deck()) < handSize+s.ExtraCards+1 {
			return "the deck is too small to deal another card"
		}
	case shop.RemoveDeadCard:
		if len(s.DeckMods.ActiveDeadCards()) == 0 {
			return "no dead cards to remove"
		}
	case shop.DevilsDealChance:
		if devilsdeal.Chance(e.cfg.DevilsDeal, s.DevilsDeal.ChancePurchases) >= e.cfg.DevilsDeal.MaxChance {
			return "Devil's Deal chance is already at its maximum"
		}
	case shop.DevilsDealDiscount:
		floor := max(e.cfg.DevilsDeal.MinCostPercent, 1)
		if devilsdeal.CostPercent(e.cfg.DevilsDeal, s.DevilsDeal.DiscountPurchases) <= floor {
			return "Devil's Deal cost is already at its minimum"
		}
	}
	return ""
}

// ItemCost returns the price of the next purchase of id.
func (e *Engine) ItemCost(s State, id shop.ItemID) (int, bool) {
	it, ok := e.cfg.Shop.Item(id)
	if !ok {
		return 0, false
	}
	return shop.Cost(it, s.Purchases[id]), true
}

// LeaveShop closes the shop and returns to the deal screen.
func (e *Engine) LeaveShop(s State) Outcome {
	if s.Phase != PhaseShop {
		return NoOp("the shop is not open")
	}
	next := s.Clone()
	next.ShopOptions = nil
	next.Phase = PhasePreDraw
	return Applied(next)
}

// Purchase buys one of the items on offer. target names the card for
// remove-card and is ignored otherwise. The bought slot leaves the shop.
func (e *Engine) Purchase(s State, id shop.ItemID, target string) Outcome {
	if s.Phase != PhaseShop {
		return NoOp("the shop is not open")
	}
	slot := -1
	for i, opt := range s.ShopOptions {
		if opt == id {
			slot = i
			break
		}
	}
	if slot < 0 {
		return NoOp(fmt.Sprintf("%s is not on offer", id))
	}
	it, ok := e.cfg.Shop.Item(id)
	if !ok {
		return NoOp(fmt.Sprintf("unknown item %s", id))
	}
	if reason := e.available(s, it); reason != "" {
		return NoOp(reason)
	}
	cost := shop.Cost(it, s.Purchases[id])
	if s.Credits < cost {
		return NoOp(fmt.Sprintf("%s costs %d, have %d", it.Name, cost, s.Credits))
	}

	next := s.Clone()
	if reason := e.grant(&next, it, target); reason != "" {
		return NoOp(reason)
	}
	next.Credits -= cost
	next.Purchases[id]++
	next.ShopOptions = append(next.ShopOptions[:slot:slot], next.ShopOptions[slot+1:]...)

	e.logger.Debug("Bought item", "item", id, "cost", cost, "purchases", next.Purchases[id])
	return Applied(next)
}

func (e *Engine) grant(s *State, it shop.Item, target string) string {
	if s.Purchases == nil {
		s.Purchases = map[shop.ItemID]int{}
	}
	switch it.ID {
	case shop.HandCount:
		if s.SelectedHandCount == s.HandCount {
			s.SelectedHandCount += it.Amount
		}
		s.HandCount += it.Amount
	case shop.ExtraDraw:
		s.MaxDraws += it.Amount
	case shop.ExtraCard:
		s.ExtraCards += it.Amount
	case shop.WildCard:
		for i := 0; i < max(it.Amount, 1); i++ {
			s.DeckMods.WildCards = append(s.DeckMods.WildCards, poker.NewWildCard(e.ids.WildCardID(), e.rng))
			s.WildCardCount++
		}
	case shop.RemoveCard:
		if target == "" {
			return "choose a card to remove"
		}
		if s.DeckMods.IsRemoved(target) {
			return fmt.Sprintf("%s is already removed", target)
		}
		deck := s.DeckMods.Deck()
		card, ok := findCard(deck, target)
		if !ok {
			return fmt.Sprintf("%s is not in the deck", target)
		}
		if len(deck)-1 < handSize+s.ExtraCards {
			return "the deck is too small to remove more cards"
		}
		s.DeckMods.RemovedCards = append(s.DeckMods.RemovedCards, card)
		if card.Wild {
			s.WildCardCount--
		}
	case shop.RemoveDeadCard:
		active := s.DeckMods.ActiveDeadCards()
		card := active[0]
		if target != "" {
			c, ok := findCard(active, target)
			if !ok {
				return fmt.Sprintf("%s is not a dead card in the deck", target)
			}
			card = c
		}
		s.DeckMods.RemovedCards = append(s.DeckMods.RemovedCards, card)
		s.DeckMods.DeadCardRemovalCount++
	case shop.DevilsDealChance:
		s.DevilsDeal.ChancePurchases++
	case shop.DevilsDealDiscount:
		s.DevilsDeal.DiscountPurchases++
	case shop.DeadCard:
		s.DeckMods.DeadCards = append(s.DeckMods.DeadCards, poker.NewDeadCard(e.ids.DeadCardID(), e.rng))
		s.Credits += it.Amount
	default:
		return fmt.Sprintf("unknown item %s", it.ID)
	}
	return ""
}

func findCard(cards []poker.Card, id string) (poker.Card, bool) {
	for _, c := range cards {
		if c.ID == id {
			return c, true
		}
	}
	return poker.Card{}, false
}

// BuyHandCount buys more parallel hands.
func (e *Engine) BuyHandCount(s State) Outcome { return e.Purchase(s, shop.HandCount, "") }

// BuyExtraDraw buys an extra draw step.
func (e *Engine) BuyExtraDraw(s State) Outcome { return e.Purchase(s, shop.ExtraDraw, "") }

// BuyExtraCard buys an extra dealt card.
func (e *Engine) BuyExtraCard(s State) Outcome { return e.Purchase(s, shop.ExtraCard, "") }

// BuyWildCard adds a wild card to the deck.
func (e *Engine) BuyWildCard(s State) Outcome { return e.Purchase(s, shop.WildCard, "") }

// BuyRemoveCard removes the card with id cardID from future decks.
func (e *Engine) BuyRemoveCard(s State, cardID string) Outcome {
	return e.Purchase(s, shop.RemoveCard, cardID)
}

// BuyRemoveDeadCard removes the oldest active dead card.
func (e *Engine) BuyRemoveDeadCard(s State) Outcome { return e.Purchase(s, shop.RemoveDeadCard, "") }

// BuyDevilsDealChance raises the Devil's Deal trigger chance.
func (e *Engine) BuyDevilsDealChance(s State) Outcome {
	return e.Purchase(s, shop.DevilsDealChance, "")
}

// BuyDevilsDealDiscount lowers the Devil's Deal cost percentage.
func (e *Engine) BuyDevilsDealDiscount(s State) Outcome {
	return e.Purchase(s, shop.DevilsDealDiscount, "")
}

// BuyDeadCard takes credits in exchange for a dead card in the deck.
func (e *Engine) BuyDeadCard(s State) Outcome { return e.Purchase(s, shop.DeadCard, "") }
