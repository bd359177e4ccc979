package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/parallelpoker/poker"
)

// FailureCredits marks a run that ended because no hand was affordable.
const FailureCredits = "credits"

// FailureRoundLimit marks a run stopped by the simulator's round cap.
const FailureRoundLimit = "round-limit"

// RunResult represents the outcome of a single autoplayed run
type RunResult struct {
	Seed           int64  // RNG seed for this run (for replay)
	Rounds         int    // Rounds completed
	ReachedEndless bool   // Did the run get past the endless start round?
	EndlessRounds  int    // Endless rounds survived
	Failure        string // Condition that ended the run
	FinalCredits   int
	TotalEarnings  int
	Hands          int // Parallel hands played
	Wins           int // Paying parallel hands
	PeakStreak     int
	BestRank       poker.HandRank
	Purchases      int
}

// Statistics accumulates run results
type Statistics struct {
	Runs       int
	SumRounds  float64
	SumRounds2 float64   // Sum of squares for variance calculation
	Values     []float64 // Rounds per run for median/percentile calculation

	EndlessRuns   int
	EndlessRounds int
	Failures      map[string]int

	Hands         int
	Wins          int
	TotalEarnings int
	Purchases     int

	MaxRounds  int
	PeakStreak int
	BestRanks  [poker.NumHandRanks]int // Runs by best hand seen
}

// Add incorporates a new run result into the statistics
func (s *Statistics) Add(result RunResult) {
	rounds := float64(result.Rounds)
	s.Runs++
	s.SumRounds += rounds
	s.SumRounds2 += rounds * rounds
	s.Values = append(s.Values, rounds)

	if result.ReachedEndless {
		s.EndlessRuns++
		s.EndlessRounds += result.EndlessRounds
	}
	if s.Failures == nil {
		s.Failures = make(map[string]int)
	}
	s.Failures[result.Failure]++

	s.Hands += result.Hands
	s.Wins += result.Wins
	s.TotalEarnings += result.TotalEarnings
	s.Purchases += result.Purchases

	if result.Rounds > s.MaxRounds {
		s.MaxRounds = result.Rounds
	}
	if result.PeakStreak > s.PeakStreak {
		s.PeakStreak = result.PeakStreak
	}
	if int(result.BestRank) < len(s.BestRanks) {
		s.BestRanks[result.BestRank]++
	}
}

// Mean returns the mean number of rounds completed per run
func (s *Statistics) Mean() float64 {
	if s.Runs == 0 {
		return 0
	}
	return s.SumRounds / float64(s.Runs)
}

// Variance returns the sample variance of rounds completed
func (s *Statistics) Variance() float64 {
	if s.Runs < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumRounds2 - float64(s.Runs)*mean*mean) / float64(s.Runs-1)
}

// StdDev returns the sample standard deviation of rounds completed
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Runs == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Runs))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median rounds completed
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// EndlessRate returns the share of runs that reached endless mode, in percent
func (s *Statistics) EndlessRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.EndlessRuns) * 100 / float64(s.Runs)
}

// WinRate returns the share of paying parallel hands, in percent
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) * 100 / float64(s.Hands)
}

// EarningsPerRound returns the mean payout per completed round
func (s *Statistics) EarningsPerRound() float64 {
	if s.SumRounds == 0 {
		return 0
	}
	return float64(s.TotalEarnings) / s.SumRounds
}

// Validate checks that the accumulated counters agree with each other
func (s *Statistics) Validate() error {
	if s.Runs <= 0 {
		return fmt.Errorf("invalid run count: %d", s.Runs)
	}

	if len(s.Values) != s.Runs {
		return fmt.Errorf("values array length (%d) does not match run count (%d)",
			len(s.Values), s.Runs)
	}

	failures := 0
	for _, n := range s.Failures {
		failures += n
	}
	if failures != s.Runs {
		return fmt.Errorf("failure histogram total (%d) does not match run count (%d)", failures, s.Runs)
	}

	if s.Wins > s.Hands {
		return fmt.Errorf("wins (%d) exceed hands played (%d)", s.Wins, s.Hands)
	}

	if s.EndlessRuns > s.Runs {
		return fmt.Errorf("endless runs (%d) exceed run count (%d)", s.EndlessRuns, s.Runs)
	}

	best := 0
	for _, n := range s.BestRanks {
		best += n
	}
	if best != s.Runs {
		return fmt.Errorf("best-rank histogram total (%d) does not match run count (%d)", best, s.Runs)
	}

	return nil
}
