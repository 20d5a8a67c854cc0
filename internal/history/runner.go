package history

import (
	"context"
	"encoding/binary"
	"fmt"
	"github.com/Borislavv/go-roulette/config"
	"github.com/Borislavv/go-roulette/internal/diagnostics"
	"github.com/Borislavv/go-roulette/internal/shared/queue"
	"github.com/Borislavv/go-roulette/internal/shared/random"
	"github.com/Borislavv/go-roulette/internal/shared/rate"
	"github.com/Borislavv/go-roulette/internal/weight"
	"github.com/Borislavv/go-roulette/model"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"math"
	"time"
)

type Snapshotter interface {
	Snapshot() diagnostics.Snapshot
}

// Runner drives independent particle histories through a toy transport loop:
// leakage, implicit capture and the configured weight policy after every collision.
// Each history owns its particles and stream, so histories run in parallel.
type Runner struct {
	cfg        *config.HistoryCfg
	cutoff     *config.CutoffCfg
	window     *config.WindowCfg
	controller *weight.Controller
	factory    *random.Factory
	stats      Snapshotter
	logger     *slog.Logger
}

func NewRunner(
	cfg *config.Run,
	controller *weight.Controller,
	factory *random.Factory,
	stats Snapshotter,
	logger *slog.Logger,
) *Runner {
	hcfg := cfg.History
	if !hcfg.Enabled() {
		hcfg = config.DefaultHistory()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		cfg:        hcfg,
		cutoff:     cfg.Cutoff,
		window:     cfg.Window,
		controller: controller,
		factory:    factory,
		stats:      stats,
		logger:     logger,
	}
}

// Run simulates histories FirstID..FirstID+n-1. The first error cancels the run.
// Results are aggregated in history order, so equal seeds give equal reports.
// Report.Diagnostics holds only the counts recorded during this call; other users
// of the same counters running concurrently are included in it.
func (r *Runner) Run(ctx context.Context, n int) (*Report, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative number of histories: %d", n)
	}

	start := time.Now()
	var before diagnostics.Snapshot
	if r.stats != nil {
		before = r.stats.Snapshot()
	}
	r.logger.Info("run is starting", "histories", n, "workers", r.cfg.Workers, "generator", r.factory.Kind().String())

	outcomes := make([]outcome, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	var pacer *rate.Pacer
	if r.cfg.Rate > 0 {
		pacer = rate.NewPacer(gctx, r.cfg.Rate)
	}

	for i := 0; i < n; i++ {
		if pacer != nil {
			if err := pacer.Wait(gctx); err != nil {
				break
			}
		}
		if gctx.Err() != nil {
			break
		}

		idx, id := i, r.cfg.FirstID+uint64(i)
		g.Go(func() error {
			o, err := r.history(gctx, id)
			if err != nil {
				return fmt.Errorf("history %d: %w", id, err)
			}
			outcomes[idx] = o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Error("run failed", "err", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := r.report(outcomes, before, time.Since(start))
	r.logger.Info("run is finished",
		"histories", report.Histories,
		"particles", report.Particles,
		"roulette_kills", report.RouletteKills,
		"tallied", report.Tallied(),
		"digest", fmt.Sprintf("%016x", report.Digest),
		"elapsed", report.Elapsed.String(),
	)

	return report, nil
}

type outcome struct {
	particles     int64
	collisions    int64
	rouletteKills int64
	absorbed      float64
	leaked        float64
	censored      float64
	digest        uint64
}

func (r *Runner) history(ctx context.Context, id uint64) (outcome, error) {
	var o outcome

	source, err := model.NewParticle(id, r.cfg.SourceWeight, r.factory.Stream(id))
	if err != nil {
		return o, err
	}

	h := xxh3.New()

	var bank queue.Queue[*model.Particle]
	bank.Init(r.cfg.MaxBank + 1)
	bank.TryPush(source)

	for {
		p, ok := bank.TryPop()
		if !ok {
			break
		}
		if err = ctx.Err(); err != nil {
			return o, err
		}
		o.particles++

		secondaries, terr := r.transport(p, &o, h)
		if terr != nil {
			return o, terr
		}
		if err = bank.PushAll(secondaries); err != nil {
			return o, fmt.Errorf("secondary bank of %d particles: %w", r.cfg.MaxBank, err)
		}
	}
	o.digest = h.Sum64()

	return o, nil
}

// transport follows one particle until it leaks, is killed or reaches MaxCollisions.
func (r *Runner) transport(p *model.Particle, o *outcome, h *xxh3.Hasher) ([]*model.Particle, error) {
	var (
		banked []*model.Particle
		buf    [16]byte
	)

	for collision := 0; p.Alive(); collision++ {
		if collision == r.cfg.MaxCollisions {
			o.censored += p.Weight()
			p.Kill()
			break
		}

		leak, err := p.Draw()
		if err != nil {
			return nil, err
		}
		if leak < r.cfg.Leakage {
			o.leaked += p.Weight()
			p.Kill()
			break
		}

		a, err := p.Draw()
		if err != nil {
			return nil, err
		}
		absorption := a * r.cfg.MaxAbsorption
		o.absorbed += p.Weight() * absorption
		if err = p.SetWeight(p.Weight() * (1 - absorption)); err != nil {
			return nil, err
		}
		o.collisions++

		secondaries, err := r.applyPolicy(p)
		if err != nil {
			return nil, err
		}
		if !p.Alive() {
			o.rouletteKills++
		}
		banked = append(banked, secondaries...)

		binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(p.Weight()))
		binary.LittleEndian.PutUint64(buf[8:16], uint64(len(secondaries)))
		_, _ = h.Write(buf[:])
	}

	return banked, nil
}

func (r *Runner) applyPolicy(p *model.Particle) ([]*model.Particle, error) {
	if r.window.Enabled() {
		return r.controller.ApplyWindow(p, r.window)
	}
	if _, err := r.controller.ApplyCutoff(p, r.cutoff); err != nil {
		return nil, err
	}
	return nil, nil
}
