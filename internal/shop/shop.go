// Package shop holds the upgrade catalog, its escalating prices and the
// rarity-weighted selection of the items offered between rounds.
package shop

import (
	"errors"
	"fmt"
	"math"
)

// ItemID identifies a shop item.
type ItemID string

const (
	HandCount          ItemID = "hand-count"
	ExtraDraw          ItemID = "extra-draw"
	ExtraCard          ItemID = "extra-card"
	WildCard           ItemID = "wild-card"
	RemoveCard         ItemID = "remove-card"
	RemoveDeadCard     ItemID = "remove-dead-card"
	DevilsDealChance   ItemID = "devils-deal-chance"
	DevilsDealDiscount ItemID = "devils-deal-discount"
	DeadCard           ItemID = "dead-card"
)

// ItemIDs lists every item in catalog order.
var ItemIDs = []ItemID{
	HandCount, ExtraDraw, ExtraCard, WildCard, RemoveCard,
	RemoveDeadCard, DevilsDealChance, DevilsDealDiscount, DeadCard,
}

// Rarity tiers, starting at 1.
const (
	Common    = 1
	Uncommon  = 2
	Rare      = 3
	Legendary = 4
)

// RarityName returns a display name for a rarity tier.
func RarityName(r int) string {
	switch r {
	case Common:
		return "common"
	case Uncommon:
		return "uncommon"
	case Rare:
		return "rare"
	case Legendary:
		return "legendary"
	default:
		return fmt.Sprintf("tier %d", r)
	}
}

// Item is one catalog entry. Amount is the size of the grant: extra hands
// for hand-count, credits paid out for dead-card, 1 for everything else.
// MaxPurchases of 0 means unlimited.
type Item struct {
	ID              ItemID
	Name            string
	Description     string
	Rarity          int
	BaseCost        int
	IncreasePercent float64
	MaxPurchases    int
	Amount          int
}

// Cost returns the price of the next purchase given n prior purchases:
// floor(BaseCost * (1 + IncreasePercent/100)^n).
func Cost(item Item, purchases int) int {
	if purchases < 0 {
		purchases = 0
	}
	return int(math.Floor(float64(item.BaseCost) * math.Pow(1+item.IncreasePercent/100, float64(purchases))))
}

// SoldOut reports whether the item has hit its purchase limit.
func (i Item) SoldOut(purchases int) bool {
	return i.MaxPurchases > 0 && purchases >= i.MaxPurchases
}

// Config controls when the shop opens and what it offers. Each row of Rarity
// is one slot's weights over tiers 1..len(row).
type Config struct {
	Frequency int
	Rarity    [][]float64
	Items     []Item
}

// Slots returns the number of items offered per visit.
func (c Config) Slots() int {
	return len(c.Rarity)
}

// Item looks up an item by id.
func (c Config) Item(id ItemID) (Item, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	out := Config{Frequency: c.Frequency}
	if c.Rarity != nil {
		out.Rarity = make([][]float64, len(c.Rarity))
		for i, row := range c.Rarity {
			out.Rarity[i] = append([]float64(nil), row...)
		}
	}
	if c.Items != nil {
		out.Items = append([]Item(nil), c.Items...)
	}
	return out
}

// Validate checks the slot table and the catalog.
func (c Config) Validate() error {
	var errs []error
	if c.Frequency < 1 {
		errs = append(errs, fmt.Errorf("shop frequency must be at least 1, got %d", c.Frequency))
	}
	if len(c.Rarity) == 0 {
		errs = append(errs, errors.New("shop needs at least one slot"))
	}
	for i, row := range c.Rarity {
		total := 0.0
		for _, w := range row {
			if w < 0 {
				errs = append(errs, fmt.Errorf("slot %d: negative rarity weight %v", i, w))
			}
			total += w
		}
		if total <= 0 {
			errs = append(errs, fmt.Errorf("slot %d: rarity weights must sum to a positive value", i))
		}
	}
	if len(c.Items) == 0 {
		errs = append(errs, errors.New("shop catalog is empty"))
	}
	seen := map[ItemID]bool{}
	for _, it := range c.Items {
		if seen[it.ID] {
			errs = append(errs, fmt.Errorf("item %s listed twice", it.ID))
		}
		seen[it.ID] = true
		if !knownItem(it.ID) {
			errs = append(errs, fmt.Errorf("unknown item %q", it.ID))
		}
		if it.Rarity < 1 {
			errs = append(errs, fmt.Errorf("item %s: rarity must be at least 1", it.ID))
		}
		if it.BaseCost < 0 || it.IncreasePercent < 0 || it.MaxPurchases < 0 {
			errs = append(errs, fmt.Errorf("item %s: cost settings must not be negative", it.ID))
		}
	}
	return errors.Join(errs...)
}

func knownItem(id ItemID) bool {
	for _, known := range ItemIDs {
		if id == known {
			return true
		}
	}
	return false
}

// DefaultConfig returns the standard shop: every third round, three slots.
func DefaultConfig() Config {
	return Config{
		Frequency: 3,
		Rarity: [][]float64{
			{60, 25, 10, 5},
			{40, 35, 15, 10},
			{20, 30, 30, 20},
		},
		Items: DefaultCatalog(),
	}
}

// DefaultCatalog returns the standard items.
func DefaultCatalog() []Item {
	return []Item{
		{ID: HandCount, Name: "More Hands", Description: "Play five more parallel hands", Rarity: Common, BaseCost: 50, IncreasePercent: 50, Amount: 5},
		{ID: ExtraDraw, Name: "Second Draw", Description: "Draw twice before the hands split", Rarity: Legendary, BaseCost: 500, MaxPurchases: 1, Amount: 1},
		{ID: ExtraCard, Name: "Extra Card", Description: "Deal one more card to choose from", Rarity: Uncommon, BaseCost: 200, IncreasePercent: 100, MaxPurchases: 3, Amount: 1},
		{ID: WildCard, Name: "Wild Card", Description: "Add a wild card to your deck", Rarity: Rare, BaseCost: 300, IncreasePercent: 50, Amount: 1},
		{ID: RemoveCard, Name: "Trim Deck", Description: "Remove a card of your choice from your deck", Rarity: Common, BaseCost: 40, IncreasePercent: 25, Amount: 1},
		{ID: RemoveDeadCard, Name: "Exorcism", Description: "Remove a dead card from your deck", Rarity: Uncommon, BaseCost: 60, IncreasePercent: 25, Amount: 1},
		{ID: DevilsDealChance, Name: "Devil's Favour", Description: "Devil's Deal appears more often", Rarity: Uncommon, BaseCost: 100, IncreasePercent: 50, Amount: 1},
		{ID: DevilsDealDiscount, Name: "Devil's Discount", Description: "Devil's Deal costs less", Rarity: Uncommon, BaseCost: 150, IncreasePercent: 50, Amount: 1},
		{ID: DeadCard, Name: "Blood Money", Description: "Take credits now, add a dead card to your deck", Rarity: Common, BaseCost: 0, Amount: 100},
	}
}

// Rand is the random source the selector needs. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// SelectByRarity fills one entry per row of slots. Each slot rolls a tier
// from its weights and picks uniformly among unselected items of exactly that
// tier, falling back to any unselected item and, once the pool is exhausted,
// to repeats. An empty pool yields nil.
func SelectByRarity(rng Rand, slots [][]float64, pool []Item) []ItemID {
	if len(pool) == 0 {
		return nil
	}
	out := make([]ItemID, 0, len(slots))
	taken := make(map[ItemID]bool, len(slots))
	for _, weights := range slots {
		tier := rollTier(rng, weights)

		var matches, open []Item
		for _, it := range pool {
			if taken[it.ID] {
				continue
			}
			open = append(open, it)
			if it.Rarity == tier {
				matches = append(matches, it)
			}
		}

		var pick Item
		switch {
		case len(matches) > 0:
			pick = matches[rng.IntN(len(matches))]
		case len(open) > 0:
			pick = open[rng.IntN(len(open))]
		default:
			pick = pool[rng.IntN(len(pool))]
		}
		taken[pick.ID] = true
		out = append(out, pick.ID)
	}
	return out
}

// rollTier picks a tier in 1..len(weights) proportionally to weights, or 0
// when no weight is positive.
func rollTier(rng Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	roll := rng.Float64() * total
	last := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i + 1
		roll -= w
		if roll < 0 {
			return i + 1
		}
	}
	return last
}
