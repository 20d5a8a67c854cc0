package telemetry

import (
	"context"
	"github.com/Borislavv/go-roulette/config"
	"github.com/Borislavv/go-roulette/internal/diagnostics"
	"log/slog"
	"time"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

type Source interface {
	Snapshot() diagnostics.Snapshot
}

// Logs periodically writes per-interval deltas of the roulette counters.
type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.DiagnosticsCfg
	logger   *slog.Logger
	source   Source
	interval time.Duration
}

func New(ctx context.Context, cfg *config.DiagnosticsCfg, logger *slog.Logger, source Source) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	return (&Logs{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger,
		source:   source,
		interval: cfg.LogsInterval,
	}).run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg.IsLogsEnabled && l.interval > 0 {
		go l.loop(l.source.Snapshot())
	}
	return l
}

func (l *Logs) loop(prev diagnostics.Snapshot) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.ctx.Done():
			return
		case <-ticker.C:
			cur := l.source.Snapshot()
			l.write(deltaSnapshot(prev, cur))
			prev = cur
		}
	}
}

func (l *Logs) write(d diagnostics.Snapshot) {
	l.logger.Info("roulette",
		"interval", l.interval.String(),
		"events", d.Events,
		"survived", d.Survived,
		"killed", d.Killed,
		"promoted", d.Promoted,
		"survival_rate", survivalRate(d),
	)

	if d.Splits > 0 {
		l.logger.Info("splitting",
			"interval", l.interval.String(),
			"splits", d.Splits,
			"secondaries", d.Secondaries,
		)
	}

	if d.Invalid > 0 || d.Exhausted > 0 {
		l.logger.Warn("rejected weight operations",
			"interval", l.interval.String(),
			"invalid", d.Invalid,
			"exhausted", d.Exhausted,
		)
	}
}

func survivalRate(d diagnostics.Snapshot) float64 {
	played := d.Survived + d.Killed
	if played == 0 {
		return 0
	}
	return float64(d.Survived) / float64(played)
}
