package config

import (
	"errors"
	"fmt"

	"github.com/lox/parallelpoker/internal/shop"
	"github.com/lox/parallelpoker/poker"
)

// Overlay is a partial config. Nil fields leave the underlying value alone.
type Overlay struct {
	Name             *string            `hcl:"name,optional" toml:"name,omitempty" yaml:"name,omitempty"`
	DecorrelateDeals *bool              `hcl:"decorrelate_deals,optional" toml:"decorrelate_deals,omitempty" yaml:"decorrelate_deals,omitempty"`
	Rewards          map[string]int     `hcl:"rewards,optional" toml:"rewards,omitempty" yaml:"rewards,omitempty"`
	Economy          *EconomyOverlay    `hcl:"economy,block" toml:"economy,omitempty" yaml:"economy,omitempty"`
	Streak           *StreakOverlay     `hcl:"streak,block" toml:"streak,omitempty" yaml:"streak,omitempty"`
	DevilsDeal       *DevilsDealOverlay `hcl:"devils_deal,block" toml:"devils_deal,omitempty" yaml:"devils_deal,omitempty"`
	Endless          *EndlessOverlay    `hcl:"endless,block" toml:"endless,omitempty" yaml:"endless,omitempty"`
	Shop             *ShopOverlay       `hcl:"shop,block" toml:"shop,omitempty" yaml:"shop,omitempty"`
}

type EconomyOverlay struct {
	StartingCredits            *int     `hcl:"starting_credits,optional" toml:"starting_credits,omitempty" yaml:"starting_credits,omitempty"`
	StartingBet                *int     `hcl:"starting_bet,optional" toml:"starting_bet,omitempty" yaml:"starting_bet,omitempty"`
	StartingHandCount          *int     `hcl:"starting_hand_count,optional" toml:"starting_hand_count,omitempty" yaml:"starting_hand_count,omitempty"`
	MinimumBet                 *int     `hcl:"minimum_bet,optional" toml:"minimum_bet,omitempty" yaml:"minimum_bet,omitempty"`
	MinimumBetIncreasePercent  *float64 `hcl:"minimum_bet_increase_percent,optional" toml:"minimum_bet_increase_percent,omitempty" yaml:"minimum_bet_increase_percent,omitempty"`
	MinimumBetIncreaseInterval *int     `hcl:"minimum_bet_increase_interval,optional" toml:"minimum_bet_increase_interval,omitempty" yaml:"minimum_bet_increase_interval,omitempty"`
	BaseDraws                  *int     `hcl:"base_draws,optional" toml:"base_draws,omitempty" yaml:"base_draws,omitempty"`
}

type StreakOverlay struct {
	BaseThreshold       *float64 `hcl:"base_threshold,optional" toml:"base_threshold,omitempty" yaml:"base_threshold,omitempty"`
	ThresholdIncrement  *float64 `hcl:"threshold_increment,optional" toml:"threshold_increment,omitempty" yaml:"threshold_increment,omitempty"`
	ExponentialGrowth   *float64 `hcl:"exponential_growth,optional" toml:"exponential_growth,omitempty" yaml:"exponential_growth,omitempty"`
	BaseMultiplier      *float64 `hcl:"base_multiplier,optional" toml:"base_multiplier,omitempty" yaml:"base_multiplier,omitempty"`
	MultiplierIncrement *float64 `hcl:"multiplier_increment,optional" toml:"multiplier_increment,omitempty" yaml:"multiplier_increment,omitempty"`
}

type DevilsDealOverlay struct {
	BaseChance      *float64 `hcl:"base_chance,optional" toml:"base_chance,omitempty" yaml:"base_chance,omitempty"`
	ChanceIncrease  *float64 `hcl:"chance_increase,optional" toml:"chance_increase,omitempty" yaml:"chance_increase,omitempty"`
	MaxChance       *float64 `hcl:"max_chance,optional" toml:"max_chance,omitempty" yaml:"max_chance,omitempty"`
	BaseCostPercent *float64 `hcl:"base_cost_percent,optional" toml:"base_cost_percent,omitempty" yaml:"base_cost_percent,omitempty"`
	CostReduction   *float64 `hcl:"cost_reduction,optional" toml:"cost_reduction,omitempty" yaml:"cost_reduction,omitempty"`
	MinCostPercent  *float64 `hcl:"min_cost_percent,optional" toml:"min_cost_percent,omitempty" yaml:"min_cost_percent,omitempty"`
	Candidates      *int     `hcl:"candidates,optional" toml:"candidates,omitempty" yaml:"candidates,omitempty"`
}

type EndlessOverlay struct {
	StartRound      *int                  `hcl:"start_round,optional" toml:"start_round,omitempty" yaml:"start_round,omitempty"`
	BetLimit        *ConditionOverlay     `hcl:"bet_limit,block" toml:"bet_limit,omitempty" yaml:"bet_limit,omitempty"`
	AverageEarnings *ConditionOverlay     `hcl:"average_earnings,block" toml:"average_earnings,omitempty" yaml:"average_earnings,omitempty"`
	WinningHands    *ConditionOverlay     `hcl:"winning_hands,block" toml:"winning_hands,omitempty" yaml:"winning_hands,omitempty"`
	WinPercentage   *WinPercentageOverlay `hcl:"win_percentage,block" toml:"win_percentage,omitempty" yaml:"win_percentage,omitempty"`
}

// ConditionOverlay toggles a failure condition and sets its threshold. For
// bet_limit the threshold is the multiplier of the frozen minimum bet.
type ConditionOverlay struct {
	Enabled   *bool    `hcl:"enabled,optional" toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Threshold *float64 `hcl:"threshold,optional" toml:"threshold,omitempty" yaml:"threshold,omitempty"`
}

type WinPercentageOverlay struct {
	Enabled          *bool    `hcl:"enabled,optional" toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Base             *float64 `hcl:"base,optional" toml:"base,omitempty" yaml:"base,omitempty"`
	IncreasePerRound *float64 `hcl:"increase_per_round,optional" toml:"increase_per_round,omitempty" yaml:"increase_per_round,omitempty"`
	Cap              *float64 `hcl:"cap,optional" toml:"cap,omitempty" yaml:"cap,omitempty"`
}

type ShopOverlay struct {
	Frequency *int          `hcl:"frequency,optional" toml:"frequency,omitempty" yaml:"frequency,omitempty"`
	Slots     [][]float64   `hcl:"slots,optional" toml:"slots,omitempty" yaml:"slots,omitempty"`
	Items     []ItemOverlay `hcl:"item,block" toml:"item,omitempty" yaml:"items,omitempty"`
}

// ItemOverlay adjusts one catalog item. Setting Enabled to false takes the
// item out of the shop.
type ItemOverlay struct {
	ID              string   `hcl:"id,label" toml:"id" yaml:"id"`
	Enabled         *bool    `hcl:"enabled,optional" toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Rarity          *int     `hcl:"rarity,optional" toml:"rarity,omitempty" yaml:"rarity,omitempty"`
	BaseCost        *int     `hcl:"base_cost,optional" toml:"base_cost,omitempty" yaml:"base_cost,omitempty"`
	IncreasePercent *float64 `hcl:"increase_percent,optional" toml:"increase_percent,omitempty" yaml:"increase_percent,omitempty"`
	MaxPurchases    *int     `hcl:"max_purchases,optional" toml:"max_purchases,omitempty" yaml:"max_purchases,omitempty"`
	Amount          *int     `hcl:"amount,optional" toml:"amount,omitempty" yaml:"amount,omitempty"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Apply returns a copy of cfg with the overlay's fields applied. Unknown
// hand ranks or shop items are errors.
func (o Overlay) Apply(cfg Config) (Config, error) {
	out := cfg.Clone()
	var errs []error

	set(&out.Name, o.Name)
	set(&out.DecorrelateDeals, o.DecorrelateDeals)

	for key, m := range o.Rewards {
		rank, err := poker.ParseHandRank(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("rewards: %w", err))
			continue
		}
		if out.Rewards == nil {
			out.Rewards = poker.RewardTable{}
		}
		out.Rewards[rank] = m
	}

	if e := o.Economy; e != nil {
		set(&out.Economy.StartingCredits, e.StartingCredits)
		set(&out.Economy.StartingBet, e.StartingBet)
		set(&out.Economy.StartingHandCount, e.StartingHandCount)
		set(&out.Economy.MinimumBet, e.MinimumBet)
		set(&out.Economy.MinimumBetIncreasePercent, e.MinimumBetIncreasePercent)
		set(&out.Economy.MinimumBetIncreaseInterval, e.MinimumBetIncreaseInterval)
		set(&out.Economy.BaseDraws, e.BaseDraws)
	}

	if s := o.Streak; s != nil {
		set(&out.Streak.BaseThreshold, s.BaseThreshold)
		set(&out.Streak.ThresholdIncrement, s.ThresholdIncrement)
		set(&out.Streak.ExponentialGrowth, s.ExponentialGrowth)
		set(&out.Streak.BaseMultiplier, s.BaseMultiplier)
		set(&out.Streak.MultiplierIncrement, s.MultiplierIncrement)
	}

	if d := o.DevilsDeal; d != nil {
		set(&out.DevilsDeal.BaseChance, d.BaseChance)
		set(&out.DevilsDeal.ChanceIncrease, d.ChanceIncrease)
		set(&out.DevilsDeal.MaxChance, d.MaxChance)
		set(&out.DevilsDeal.BaseCostPercent, d.BaseCostPercent)
		set(&out.DevilsDeal.CostReduction, d.CostReduction)
		set(&out.DevilsDeal.MinCostPercent, d.MinCostPercent)
		set(&out.DevilsDeal.Candidates, d.Candidates)
	}

	if en := o.Endless; en != nil {
		set(&out.Endless.StartRound, en.StartRound)
		if c := en.BetLimit; c != nil {
			set(&out.Endless.BetLimit.Enabled, c.Enabled)
			set(&out.Endless.BetLimit.Multiplier, c.Threshold)
		}
		if c := en.AverageEarnings; c != nil {
			set(&out.Endless.AverageEarnings.Enabled, c.Enabled)
			set(&out.Endless.AverageEarnings.Value, c.Threshold)
		}
		if c := en.WinningHands; c != nil {
			set(&out.Endless.WinningHands.Enabled, c.Enabled)
			set(&out.Endless.WinningHands.Value, c.Threshold)
		}
		if w := en.WinPercentage; w != nil {
			set(&out.Endless.WinPercentage.Enabled, w.Enabled)
			set(&out.Endless.WinPercentage.Base, w.Base)
			set(&out.Endless.WinPercentage.IncreasePerRound, w.IncreasePerRound)
			set(&out.Endless.WinPercentage.Cap, w.Cap)
		}
	}

	if s := o.Shop; s != nil {
		set(&out.Shop.Frequency, s.Frequency)
		if s.Slots != nil {
			out.Shop.Rarity = make([][]float64, len(s.Slots))
			for i, row := range s.Slots {
				out.Shop.Rarity[i] = append([]float64(nil), row...)
			}
		}
		for _, io := range s.Items {
			if err := applyItem(&out.Shop, io); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return out, nil
}

func applyItem(cfg *shop.Config, o ItemOverlay) error {
	id := shop.ItemID(o.ID)
	idx := -1
	for i, it := range cfg.Items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Re-enable an item an earlier layer removed.
		def, ok := shop.DefaultConfig().Item(id)
		if !ok {
			return fmt.Errorf("shop: unknown item %q", o.ID)
		}
		if o.Enabled != nil && !*o.Enabled {
			return nil
		}
		cfg.Items = append(cfg.Items, def)
		idx = len(cfg.Items) - 1
	}
	if o.Enabled != nil && !*o.Enabled {
		cfg.Items = append(cfg.Items[:idx:idx], cfg.Items[idx+1:]...)
		return nil
	}
	it := &cfg.Items[idx]
	set(&it.Rarity, o.Rarity)
	set(&it.BaseCost, o.BaseCost)
	set(&it.IncreasePercent, o.IncreasePercent)
	set(&it.MaxPurchases, o.MaxPurchases)
	set(&it.Amount, o.Amount)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

// FromConfig returns an overlay with every field of cfg set, suitable for
// writing a complete config file.
func FromConfig(cfg Config) Overlay {
	rewards := make(map[string]int, len(cfg.Rewards))
	for rank, m := range cfg.Rewards {
		rewards[rank.Key()] = m
	}
	items := make([]ItemOverlay, len(cfg.Shop.Items))
	for i, it := range cfg.Shop.Items {
		items[i] = ItemOverlay{
			ID:              string(it.ID),
			Enabled:         ptr(true),
			Rarity:          ptr(it.Rarity),
			BaseCost:        ptr(it.BaseCost),
			IncreasePercent: ptr(it.IncreasePercent),
			MaxPurchases:    ptr(it.MaxPurchases),
			Amount:          ptr(it.Amount),
		}
	}

	e, s, d, en := cfg.Economy, cfg.Streak, cfg.DevilsDeal, cfg.Endless
	return Overlay{
		Name:             ptr(cfg.Name),
		DecorrelateDeals: ptr(cfg.DecorrelateDeals),
		Rewards:          rewards,
		Economy: &EconomyOverlay{
			StartingCredits:            ptr(e.StartingCredits),
			StartingBet:                ptr(e.StartingBet),
			StartingHandCount:          ptr(e.StartingHandCount),
			MinimumBet:                 ptr(e.MinimumBet),
			MinimumBetIncreasePercent:  ptr(e.MinimumBetIncreasePercent),
			MinimumBetIncreaseInterval: ptr(e.MinimumBetIncreaseInterval),
			BaseDraws:                  ptr(e.BaseDraws),
		},
		Streak: &StreakOverlay{
			BaseThreshold:       ptr(s.BaseThreshold),
			ThresholdIncrement:  ptr(s.ThresholdIncrement),
			ExponentialGrowth:   ptr(s.ExponentialGrowth),
			BaseMultiplier:      ptr(s.BaseMultiplier),
			MultiplierIncrement: ptr(s.MultiplierIncrement),
		},
		DevilsDeal: &DevilsDealOverlay{
			BaseChance:      ptr(d.BaseChance),
			ChanceIncrease:  ptr(d.ChanceIncrease),
			MaxChance:       ptr(d.MaxChance),
			BaseCostPercent: ptr(d.BaseCostPercent),
			CostReduction:   ptr(d.CostReduction),
			MinCostPercent:  ptr(d.MinCostPercent),
			Candidates:      ptr(d.Candidates),
		},
		Endless: &EndlessOverlay{
			StartRound:      ptr(en.StartRound),
			BetLimit:        &ConditionOverlay{Enabled: ptr(en.BetLimit.Enabled), Threshold: ptr(en.BetLimit.Multiplier)},
			AverageEarnings: &ConditionOverlay{Enabled: ptr(en.AverageEarnings.Enabled), Threshold: ptr(en.AverageEarnings.Value)},
			WinningHands:    &ConditionOverlay{Enabled: ptr(en.WinningHands.Enabled), Threshold: ptr(en.WinningHands.Value)},
			WinPercentage: &WinPercentageOverlay{
				Enabled:          ptr(en.WinPercentage.Enabled),
				Base:             ptr(en.WinPercentage.Base),
				IncreasePerRound: ptr(en.WinPercentage.IncreasePerRound),
				Cap:              ptr(en.WinPercentage.Cap),
			},
		},
		Shop: &ShopOverlay{
			Frequency: ptr(cfg.Shop.Frequency),
			Slots:     cfg.Shop.Clone().Rarity,
			Items:     items,
		},
	}
}
