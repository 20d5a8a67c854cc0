package diagnostics

import "sync/atomic"

// Counters is the run-scoped roulette diagnostics. It is only observed,
// simulation results never depend on it. All methods are safe for concurrent use.
type Counters struct {
	events      atomic.Int64 // completed roulette decisions, deterministic promotions included
	survived    atomic.Int64 // won roulette
	killed      atomic.Int64 // lost roulette
	promoted    atomic.Int64 // weightSurvive below weight, no draw
	invalid     atomic.Int64 // rejected with InvalidWeightError
	exhausted   atomic.Int64 // rejected because the stream ran out
	splits      atomic.Int64 // split operations
	secondaries atomic.Int64 // particles created by splitting
}

func NewCounters() *Counters {
	return &Counters{
		events:      atomic.Int64{},
		survived:    atomic.Int64{},
		killed:      atomic.Int64{},
		promoted:    atomic.Int64{},
		invalid:     atomic.Int64{},
		exhausted:   atomic.Int64{},
		splits:      atomic.Int64{},
		secondaries: atomic.Int64{},
	}
}

// RecordEvent counts one roulette decision point.
func (c *Counters) RecordEvent() { c.events.Add(1) }

func (c *Counters) RecordSurvived() { c.survived.Add(1) }

func (c *Counters) RecordKilled() { c.killed.Add(1) }

func (c *Counters) RecordPromoted() { c.promoted.Add(1) }

func (c *Counters) RecordInvalid() { c.invalid.Add(1) }

func (c *Counters) RecordExhausted() { c.exhausted.Add(1) }

func (c *Counters) RecordSplit(secondaries int) {
	c.splits.Add(1)
	c.secondaries.Add(int64(secondaries))
}

// Merge adds a per-worker accumulation.
func (c *Counters) Merge(l *Local) {
	c.events.Add(l.Events)
	c.survived.Add(l.Survived)
	c.killed.Add(l.Killed)
	c.promoted.Add(l.Promoted)
	c.invalid.Add(l.Invalid)
	c.exhausted.Add(l.Exhausted)
	c.splits.Add(l.Splits)
	c.secondaries.Add(l.Secondaries)
}

// Reset zeroes every counter. Call it between runs only.
func (c *Counters) Reset() {
	c.events.Store(0)
	c.survived.Store(0)
	c.killed.Store(0)
	c.promoted.Store(0)
	c.invalid.Store(0)
	c.exhausted.Store(0)
	c.splits.Store(0)
	c.secondaries.Store(0)
}

func (c *Counters) Events() int64 {
	return c.events.Load()
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Events:      c.events.Load(),
		Survived:    c.survived.Load(),
		Killed:      c.killed.Load(),
		Promoted:    c.promoted.Load(),
		Invalid:     c.invalid.Load(),
		Exhausted:   c.exhausted.Load(),
		Splits:      c.splits.Load(),
		Secondaries: c.secondaries.Load(),
	}
}

// Snapshot holds cumulative counter values. Fields are read independently,
// so a snapshot taken during a run is not an atomic cut across counters.
type Snapshot struct {
	Events      int64
	Survived    int64
	Killed      int64
	Promoted    int64
	Invalid     int64
	Exhausted   int64
	Splits      int64
	Secondaries int64
}

// Sub returns the counts recorded between prev and s.
func (s Snapshot) Sub(prev Snapshot) Snapshot {
	return Snapshot{
		Events:      s.Events - prev.Events,
		Survived:    s.Survived - prev.Survived,
		Killed:      s.Killed - prev.Killed,
		Promoted:    s.Promoted - prev.Promoted,
		Invalid:     s.Invalid - prev.Invalid,
		Exhausted:   s.Exhausted - prev.Exhausted,
		Splits:      s.Splits - prev.Splits,
		Secondaries: s.Secondaries - prev.Secondaries,
	}
}
