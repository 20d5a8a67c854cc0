package weight

import (
	"github.com/Borislavv/go-roulette/internal/diagnostics"
	"log/slog"
)

// Recorder receives the outcome of every weight operation.
type Recorder interface {
	RecordEvent()
	RecordSurvived()
	RecordKilled()
	RecordPromoted()
	RecordInvalid()
	RecordExhausted()
	RecordSplit(secondaries int)
}

// Controller applies weight-control policies to particles.
// It keeps no per-particle state and may be shared by any number of goroutines,
// as long as every call passes a particle owned by the calling goroutine.
type Controller struct {
	recorder Recorder
	logger   *slog.Logger
}

func New(recorder Recorder, logger *slog.Logger) *Controller {
	if recorder == nil {
		recorder = diagnostics.NoOp{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{recorder: recorder, logger: logger}
}

// WithRecorder returns a controller sharing the logger but reporting to r,
// e.g. a per-worker diagnostics.Local.
func (c *Controller) WithRecorder(r Recorder) *Controller {
	return New(r, c.logger)
}
