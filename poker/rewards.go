package poker

// RewardTable maps a hand rank to its integer payout multiplier. Ranks missing
// from the table pay nothing.
type RewardTable map[HandRank]int

// Reward is the result of looking a hand rank up in a reward table.
type Reward struct {
	Rank       HandRank
	Multiplier int
}

// Won reports whether the reward pays anything.
func (r Reward) Won() bool {
	return r.Multiplier > 0
}

// DefaultRewardTable is a jacks-or-better pay table extended with five of a kind.
func DefaultRewardTable() RewardTable {
	return RewardTable{
		RoyalFlush:    250,
		StraightFlush: 50,
		FiveOfAKind:   40,
		FourOfAKind:   25,
		FullHouse:     9,
		Flush:         6,
		Straight:      4,
		ThreeOfAKind:  3,
		TwoPair:       2,
		JacksOrBetter: 1,
		HighCard:      0,
	}
}

// Multiplier returns the multiplier for rank, defaulting to 0.
func (t RewardTable) Multiplier(rank HandRank) int {
	return t[rank]
}

// Clone returns an independent copy of the table.
func (t RewardTable) Clone() RewardTable {
	out := make(RewardTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// ApplyRewards looks rank up in table.
func ApplyRewards(rank HandRank, table RewardTable) Reward {
	return Reward{Rank: rank, Multiplier: table.Multiplier(rank)}
}
