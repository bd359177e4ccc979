// Package history keeps a timestamped record of settled rounds.
package history

import (
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/parallelpoker/poker"
)

// Entry is one settled round.
type Entry struct {
	RunID      string
	Round      int
	At         time.Time
	Bet        int
	Hands      int
	Wins       int
	Payout     int
	Cost       int
	Credits    int
	BestRank   poker.HandRank
	PeakStreak int
	Endless    bool
}

// Net returns payout minus what the round cost.
func (e Entry) Net() int {
	return e.Payout - e.Cost
}

// Totals aggregates recorded rounds.
type Totals struct {
	Rounds   int
	Hands    int
	Wins     int
	Payout   int
	Net      int
	Duration time.Duration
}

// Recorder stores entries in memory. It is safe for concurrent use. A
// positive limit keeps only the most recent entries.
type Recorder struct {
	clock quartz.Clock
	limit int

	mu      sync.Mutex
	entries []Entry
	totals  Totals
	start   time.Time
}

// NewRecorder creates a recorder. A nil clock means the real clock.
func NewRecorder(clock quartz.Clock, limit int) *Recorder {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Recorder{clock: clock, limit: limit}
}

// Record stamps e with the current time and stores it.
func (r *Recorder) Record(e Entry) Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.At = r.clock.Now()
	if r.totals.Rounds == 0 {
		r.start = e.At
	}
	r.totals.Rounds++
	r.totals.Hands += e.Hands
	r.totals.Wins += e.Wins
	r.totals.Payout += e.Payout
	r.totals.Net += e.Net()
	r.totals.Duration = e.At.Sub(r.start)

	r.entries = append(r.entries, e)
	if r.limit > 0 && len(r.entries) > r.limit {
		r.entries = append(r.entries[:0:0], r.entries[len(r.entries)-r.limit:]...)
	}
	return e
}

// Entries returns a copy of the stored entries, oldest first.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Last returns up to n of the most recent entries, oldest first.
func (r *Recorder) Last(n int) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > len(r.entries) {
		n = len(r.entries)
	}
	if n <= 0 {
		return nil
	}
	return append([]Entry(nil), r.entries[len(r.entries)-n:]...)
}

// Totals returns aggregates over every recorded round, including any the
// limit has dropped.
func (r *Recorder) Totals() Totals {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totals
}

// Reset clears the recorder for a new run.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.totals = Totals{}
	r.start = time.Time{}
}
