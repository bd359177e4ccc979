// Package report turns simulator statistics into a document that can be
// printed or saved as JSON, YAML or TOML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lox/parallelpoker/internal/statistics"
	"github.com/lox/parallelpoker/poker"
)

// Format is a report file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a format from a file extension. Unknown extensions
// get JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Meta describes how a simulation was run.
type Meta struct {
	Mode     string `json:"mode" yaml:"mode" toml:"mode"`
	Strategy string `json:"strategy" yaml:"strategy" toml:"strategy"`
	Buy      string `json:"buy" yaml:"buy" toml:"buy"`
	Runs     int    `json:"runs" yaml:"runs" toml:"runs"`
	Workers  int    `json:"workers" yaml:"workers" toml:"workers"`
	Seed     int64  `json:"seed" yaml:"seed" toml:"seed"`
}

// Rounds summarizes how long runs lasted.
type Rounds struct {
	Mean     float64 `json:"mean" yaml:"mean" toml:"mean"`
	Median   float64 `json:"median" yaml:"median" toml:"median"`
	StdDev   float64 `json:"stddev" yaml:"stddev" toml:"stddev"`
	StdError float64 `json:"stderr" yaml:"stderr" toml:"stderr"`
	CI95Low  float64 `json:"ci95_low" yaml:"ci95_low" toml:"ci95_low"`
	CI95High float64 `json:"ci95_high" yaml:"ci95_high" toml:"ci95_high"`
	P5       float64 `json:"p5" yaml:"p5" toml:"p5"`
	P95      float64 `json:"p95" yaml:"p95" toml:"p95"`
	Max      int     `json:"max" yaml:"max" toml:"max"`
}

// Report is the saved result of a simulation.
type Report struct {
	Meta             `yaml:",inline"`
	GeneratedAt      time.Time      `json:"generated_at" yaml:"generated_at" toml:"generated_at"`
	ElapsedSeconds   float64        `json:"elapsed_seconds" yaml:"elapsed_seconds" toml:"elapsed_seconds"`
	Rounds           Rounds         `json:"rounds" yaml:"rounds" toml:"rounds"`
	EndlessRate      float64        `json:"endless_rate" yaml:"endless_rate" toml:"endless_rate"`
	EndlessRounds    int            `json:"endless_rounds" yaml:"endless_rounds" toml:"endless_rounds"`
	Hands            int            `json:"hands" yaml:"hands" toml:"hands"`
	WinRate          float64        `json:"win_rate" yaml:"win_rate" toml:"win_rate"`
	EarningsPerRound float64        `json:"earnings_per_round" yaml:"earnings_per_round" toml:"earnings_per_round"`
	PeakStreak       int            `json:"peak_streak" yaml:"peak_streak" toml:"peak_streak"`
	Purchases        int            `json:"purchases" yaml:"purchases" toml:"purchases"`
	Failures         map[string]int `json:"failures" yaml:"failures" toml:"failures"`
	BestHands        map[string]int `json:"best_hands" yaml:"best_hands" toml:"best_hands"`
}

// New builds a report from accumulated statistics.
func New(meta Meta, stats *statistics.Statistics, generatedAt time.Time, elapsed time.Duration) Report {
	low, high := stats.ConfidenceInterval95()
	r := Report{
		Meta:           meta,
		GeneratedAt:    generatedAt.UTC(),
		ElapsedSeconds: elapsed.Seconds(),
		Rounds: Rounds{
			Mean:     stats.Mean(),
			Median:   stats.Median(),
			StdDev:   stats.StdDev(),
			StdError: stats.StdError(),
			CI95Low:  low,
			CI95High: high,
			P5:       stats.Percentile(0.05),
			P95:      stats.Percentile(0.95),
			Max:      stats.MaxRounds,
		},
		EndlessRate:      stats.EndlessRate(),
		EndlessRounds:    stats.EndlessRounds,
		Hands:            stats.Hands,
		WinRate:          stats.WinRate(),
		EarningsPerRound: stats.EarningsPerRound(),
		PeakStreak:       stats.PeakStreak,
		Purchases:        stats.Purchases,
		Failures:         map[string]int{},
		BestHands:        map[string]int{},
	}
	for name, n := range stats.Failures {
		r.Failures[name] = n
	}
	for rank, n := range stats.BestRanks {
		if n > 0 {
			r.BestHands[poker.HandRank(rank).Key()] = n
		}
	}
	return r
}

// Encode writes r to w in format.
func (r Report) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// Write saves r to path atomically, in the format its extension names.
func Write(path string, r Report) error {
	format := FormatFromPath(path)
	err := writeAtomic(path, 0o644, func(w io.Writer) error {
		return r.Encode(w, format)
	})
	if err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// PrintSummary writes a human readable summary of r.
func (r Report) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "\n=== %s mode, %s holds, %s buys ===\n", r.Mode, r.Strategy, r.Buy)
	fmt.Fprintf(w, "Runs: %d (seed %d, %d workers, %.2fs)\n", r.Runs, r.Seed, r.Workers, r.ElapsedSeconds)

	fmt.Fprintf(w, "\n=== ROUNDS SURVIVED ===\n")
	fmt.Fprintf(w, "Mean: %.2f rounds\n", r.Rounds.Mean)
	fmt.Fprintf(w, "Median: %.2f rounds\n", r.Rounds.Median)
	fmt.Fprintf(w, "Std Dev: %.2f\n", r.Rounds.StdDev)
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f]\n", r.Rounds.CI95Low, r.Rounds.CI95High)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P95=%.1f, max=%d\n", r.Rounds.P5, r.Rounds.P95, r.Rounds.Max)

	fmt.Fprintf(w, "\n=== PLAY ===\n")
	fmt.Fprintf(w, "Parallel hands: %d (%.1f%% paid)\n", r.Hands, r.WinRate)
	fmt.Fprintf(w, "Earnings: %.1f credits/round\n", r.EarningsPerRound)
	fmt.Fprintf(w, "Peak streak: %d\n", r.PeakStreak)
	fmt.Fprintf(w, "Shop purchases: %d\n", r.Purchases)
	fmt.Fprintf(w, "Reached endless: %.1f%% (%d endless rounds)\n", r.EndlessRate, r.EndlessRounds)

	fmt.Fprintf(w, "\n=== HOW RUNS ENDED ===\n")
	for _, name := range sortedKeys(r.Failures) {
		fmt.Fprintf(w, "%-18s %d\n", name, r.Failures[name])
	}

	fmt.Fprintf(w, "\n=== BEST HAND PER RUN ===\n")
	for _, rank := range poker.HandRanks() {
		if n := r.BestHands[rank.Key()]; n > 0 {
			fmt.Fprintf(w, "%-18s %d\n", rank.String(), n)
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
