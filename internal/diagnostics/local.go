package diagnostics

// Local is a per-worker accumulator for hot loops. It is not safe for
// concurrent use; merge it into the shared Counters once the worker is done.
type Local struct {
	Events      int64
	Survived    int64
	Killed      int64
	Promoted    int64
	Invalid     int64
	Exhausted   int64
	Splits      int64
	Secondaries int64
}

func (l *Local) RecordEvent() { l.Events++ }
func (l *Local) RecordSurvived() { l.Survived++ }
func (l *Local) RecordKilled() { l.Killed++ }
func (l *Local) RecordPromoted() { l.Promoted++ }
func (l *Local) RecordInvalid() { l.Invalid++ }
func (l *Local) RecordExhausted() { l.Exhausted++ }

func (l *Local) RecordSplit(secondaries int) {
	l.Splits++
	l.Secondaries += int64(secondaries)
}
