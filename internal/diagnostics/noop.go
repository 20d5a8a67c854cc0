package diagnostics

// NoOp discards every record.
type NoOp struct{}

func (NoOp) RecordEvent() {}
func (NoOp) RecordSurvived() {}
func (NoOp) RecordKilled() {}
func (NoOp) RecordPromoted() {}
func (NoOp) RecordInvalid() {}
func (NoOp) RecordExhausted() {}
func (NoOp) RecordSplit(int) {}
