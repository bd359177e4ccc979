package config

import (
	"fmt"
	"sort"
	"strings"
)

var modes = map[string]func() Overlay{
	"standard": func() Overlay {
		return Overlay{Name: ptr("standard")}
	},
	"hardcore": func() Overlay {
		return Overlay{
			Name: ptr("hardcore"),
			Economy: &EconomyOverlay{
				StartingCredits:            ptr(50),
				MinimumBetIncreasePercent:  ptr(50.0),
				MinimumBetIncreaseInterval: ptr(3),
			},
			DevilsDeal: &DevilsDealOverlay{
				BaseChance:      ptr(5.0),
				BaseCostPercent: ptr(150.0),
			},
			Endless: &EndlessOverlay{
				StartRound:    ptr(20),
				WinPercentage: &WinPercentageOverlay{Base: ptr(50.0), IncreasePerRound: ptr(2.0)},
			},
			Shop: &ShopOverlay{Frequency: ptr(4)},
		}
	},
	"zen": func() Overlay {
		off := ptr(false)
		return Overlay{
			Name: ptr("zen"),
			Economy: &EconomyOverlay{
				StartingCredits:           ptr(500),
				MinimumBetIncreasePercent: ptr(0.0),
			},
			Endless: &EndlessOverlay{
				BetLimit:        &ConditionOverlay{Enabled: off},
				AverageEarnings: &ConditionOverlay{Enabled: off},
				WinningHands:    &ConditionOverlay{Enabled: off},
				WinPercentage:   &WinPercentageOverlay{Enabled: off},
			},
			Shop: &ShopOverlay{
				Frequency: ptr(2),
				Items:     []ItemOverlay{{ID: "dead-card", Enabled: off}},
			},
		}
	},
}

// ModeNames lists the built-in modes in sorted order.
func ModeNames() []string {
	names := make([]string, 0, len(modes))
	for name := range modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Mode returns the overlay for a built-in mode.
func Mode(name string) (Overlay, error) {
	fn, ok := modes[name]
	if !ok {
		return Overlay{}, fmt.Errorf("unknown mode %q (available: %s)", name, strings.Join(ModeNames(), ", "))
	}
	return fn(), nil
}

// ForMode builds the config for a built-in mode on top of the defaults.
func ForMode(name string) (Config, error) {
	return NewBuilder(Default()).Mode(name).Build()
}
