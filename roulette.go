package roulette

import (
	"context"
	"fmt"
	"github.com/Borislavv/go-roulette/config"
	"github.com/Borislavv/go-roulette/internal/diagnostics"
	"github.com/Borislavv/go-roulette/internal/history"
	"github.com/Borislavv/go-roulette/internal/shared/random"
	"github.com/Borislavv/go-roulette/internal/telemetry"
	"github.com/Borislavv/go-roulette/internal/weight"
	"github.com/Borislavv/go-roulette/model"
	"github.com/prometheus/client_golang/prometheus"
	"io"
	"log/slog"
)

var (
	ErrInvalidWeight   = weight.ErrInvalidWeight
	ErrStreamExhausted = random.ErrStreamExhausted
)

type (
	InvalidWeightError = weight.InvalidWeightError
	Report             = history.Report
	Diagnostics        = diagnostics.Snapshot
)

type WeightController interface {
	ApplyRussianRoulette(p *model.Particle, weightSurvive float64) error
	ApplyCutoff(p *model.Particle, cfg *config.CutoffCfg) (bool, error)
	ApplyWindow(p *model.Particle, cfg *config.WindowCfg) ([]*model.Particle, error)
}

type WeightRoulette interface {
	WeightController
	telemetry.Logger
	io.Closer
}

// Roulette wires the weight controller, the per-history streams and the
// run-scoped diagnostics of one simulation run.
type Roulette struct {
	*weight.Controller
	telemetry.Logger
	cfg      *config.Run
	logger   *slog.Logger
	factory  *random.Factory
	counters *diagnostics.Counters
	cls      context.CancelFunc
}

func New(ctx context.Context, cfg *config.Run, logger *slog.Logger) (*Roulette, error) {
	cfg.AdjustConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	factory, err := random.NewFactory(&cfg.Stream)
	if err != nil {
		return nil, fmt.Errorf("stream factory: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx, cancel := context.WithCancel(ctx)
	counters := diagnostics.NewCounters()
	return &Roulette{
		Controller: weight.New(counters, logger),
		Logger:     telemetry.New(ctx, &cfg.Diagnostics, logger, counters),
		cfg:        cfg,
		logger:     logger,
		factory:    factory,
		counters:   counters,
		cls:        cancel,
	}, nil
}

// Emit creates the source particle of a history with its own stream.
func (r *Roulette) Emit(historyID uint64, sourceWeight float64) (*model.Particle, error) {
	return model.NewParticle(historyID, sourceWeight, r.factory.Stream(historyID))
}

// Stream returns the start cursor of a history.
func (r *Roulette) Stream(historyID uint64) random.Stream {
	return r.factory.Stream(historyID)
}

// Diagnostics reads the run counters without resetting them.
func (r *Roulette) Diagnostics() Diagnostics {
	return r.counters.Snapshot()
}

// RouletteEvents is the number of roulette decisions made so far.
func (r *Roulette) RouletteEvents() int64 {
	return r.counters.Events()
}

// Collector exports the diagnostics to Prometheus.
func (r *Roulette) Collector() prometheus.Collector {
	return r.counters.Collector(r.cfg.Diagnostics.Namespace)
}

// Run simulates n histories with the built-in driver. The report diagnostics
// cover this run only; Diagnostics keeps the totals of the Roulette.
func (r *Roulette) Run(ctx context.Context, n int) (*Report, error) {
	return history.NewRunner(r.cfg, r.Controller, r.factory, r.counters, r.logger).Run(ctx, n)
}

func (r *Roulette) Close() error {
	r.cls()
	return r.Logger.Close()
}
