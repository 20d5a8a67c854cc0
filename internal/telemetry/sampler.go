package telemetry

import "github.com/Borislavv/go-roulette/internal/diagnostics"

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur diagnostics.Snapshot) diagnostics.Snapshot {
	return diagnostics.Snapshot{
		Events:      delta(prev.Events, cur.Events),
		Survived:    delta(prev.Survived, cur.Survived),
		Killed:      delta(prev.Killed, cur.Killed),
		Promoted:    delta(prev.Promoted, cur.Promoted),
		Invalid:     delta(prev.Invalid, cur.Invalid),
		Exhausted:   delta(prev.Exhausted, cur.Exhausted),
		Splits:      delta(prev.Splits, cur.Splits),
		Secondaries: delta(prev.Secondaries, cur.Secondaries),
	}
}

func delta(prev, cur int64) int64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
