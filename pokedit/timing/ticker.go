package timing

import "time"

// DefaultTickPeriod is the simulation tick cadence (roughly 60Hz).
const DefaultTickPeriod = 16 * time.Millisecond

// Ticker drives the simulation's periodic ticks and measures the wall-clock
// time each tick actually covers. A zero or negative period disables ticking
// entirely: C returns a nil channel that never fires, which lets scripted
// runs process input without a timer.
type Ticker struct {
	ticker *time.Ticker
	last   time.Time
}

func NewTicker(period time.Duration) *Ticker {
	t := &Ticker{last: time.Now()}
	if period > 0 {
		t.ticker = time.NewTicker(period)
	}
	return t
}

// C returns the tick channel, or nil when ticking is disabled.
func (t *Ticker) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}

// Mark records a tick at now and returns the elapsed time since the previous
// mark. Measuring instead of assuming the period keeps simulated time
// tracking wall-clock time when the scheduler falls behind.
func (t *Ticker) Mark(now time.Time) time.Duration {
	elapsed := now.Sub(t.last)
	t.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed
}

// Stop halts the ticker. No new ticks are scheduled after Stop returns.
func (t *Ticker) Stop() {
	if t.ticker != nil {
		t.ticker.Stop()
	}
}
