package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// progressDots is the width of the progress line, sized for an 80-column
// terminal.
const progressDots = 40

// progressPrinter shows clean progress without overlapping animations
type progressPrinter struct {
	mu          sync.Mutex
	w           io.Writer
	clock       quartz.Clock
	start       time.Time
	total       int
	dotsPrinted int
	finished    bool
}

func newProgressPrinter(w io.Writer, clock quartz.Clock, total int) *progressPrinter {
	return &progressPrinter{w: w, clock: clock, start: clock.Now(), total: max(total, 1)}
}

// Update records that done of total runs have finished. Reports may arrive
// out of order from concurrent workers.
func (p *progressPrinter) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total > 0 {
		p.total = total
	}
	if p.finished {
		return
	}

	target := min(done, p.total) * progressDots / p.total
	for ; p.dotsPrinted < target; p.dotsPrinted++ {
		_, _ = fmt.Fprint(p.w, ".")
	}

	if done >= p.total {
		p.finished = true
		elapsed := p.clock.Since(p.start)
		rate := 0.0
		if elapsed > 0 {
			rate = float64(p.total) / elapsed.Seconds()
		}
		_, _ = fmt.Fprintf(p.w, " ✓ %d runs in %.1fs (%.0f/sec)\n", p.total, elapsed.Seconds(), rate)
	}
}
