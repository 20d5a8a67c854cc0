package weight

import (
	"fmt"
	"github.com/Borislavv/go-roulette/config"
	"github.com/Borislavv/go-roulette/model"
	"math"
)

const (
	opCutoff = "weight cutoff"
	opWindow = "weight window"
)

// ApplyCutoff plays roulette when the particle weight fell below cfg.Threshold.
// It reports whether roulette was played. A nil cfg disables the cutoff.
func (c *Controller) ApplyCutoff(p *model.Particle, cfg *config.CutoffCfg) (played bool, err error) {
	if !cfg.Enabled() {
		return false, nil
	}
	if p == nil {
		c.recorder.RecordInvalid()
		return false, &InvalidWeightError{Op: opCutoff, Reason: "nil particle"}
	}
	if ierr := validateParticle(opCutoff, p); ierr != nil {
		c.recorder.RecordInvalid()
		return false, ierr
	}
	if p.Weight() >= cfg.Threshold {
		return false, nil
	}
	return true, c.ApplyRussianRoulette(p, cfg.Survive)
}

// ApplyWindow keeps the particle weight within [cfg.Lower, cfg.Upper].
//
// Above Upper the particle is split into n = min(ceil(weight/Upper), MaxSplit)
// particles of weight/n: p keeps one share and the n-1 secondaries are returned,
// each with its own forked stream. At or below Lower the particle plays roulette
// with survival weight Lower*SurvivalRatio. Inside the window nothing happens.
func (c *Controller) ApplyWindow(p *model.Particle, cfg *config.WindowCfg) ([]*model.Particle, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if p == nil {
		c.recorder.RecordInvalid()
		return nil, &InvalidWeightError{Op: opWindow, Reason: "nil particle"}
	}
	if ierr := validateParticle(opWindow, p); ierr != nil {
		c.recorder.RecordInvalid()
		return nil, ierr
	}

	w := p.Weight()
	switch {
	case w > cfg.Upper:
		return c.split(p, cfg)
	case w <= cfg.Lower:
		return nil, c.ApplyRussianRoulette(p, cfg.SurvivalWeight())
	default:
		return nil, nil
	}
}

func (c *Controller) split(p *model.Particle, cfg *config.WindowCfg) ([]*model.Particle, error) {
	w := p.Weight()

	n := cfg.MaxSplit
	if ratio := math.Ceil(w / cfg.Upper); ratio < float64(n) {
		n = int(ratio)
	}
	if n < 2 {
		return nil, nil
	}

	share := w / float64(n)
	secondaries := make([]*model.Particle, 0, n-1)
	for k := 1; k < n; k++ {
		child, err := model.NewParticle(p.HistoryID(), share, p.Fork())
		if err != nil {
			return nil, fmt.Errorf("%s: create secondary %d of %d: %w", opWindow, k, n, err)
		}
		secondaries = append(secondaries, child)
	}
	if err := p.SetWeight(share); err != nil {
		return nil, fmt.Errorf("%s: %w", opWindow, err)
	}

	c.recorder.RecordSplit(len(secondaries))
	c.logger.Debug("particle split",
		"history", p.HistoryID(),
		"weight_before", w,
		"share", share,
		"particles", n,
	)

	return secondaries, nil
}
