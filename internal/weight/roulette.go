package weight

import (
	"context"
	"errors"
	"github.com/Borislavv/go-roulette/internal/shared/random"
	"github.com/Borislavv/go-roulette/model"
	"log/slog"
	"math"
)

const opRoulette = "russian roulette"

// ApplyRussianRoulette plays russian roulette on a live particle.
//
// With p = weight/weightSurvive the particle survives at exactly weightSurvive
// with probability p and is terminated otherwise, so the expected weight is unchanged.
// One value is drawn from the particle's own stream. When weightSurvive < weight
// the particle is promoted to weightSurvive without drawing.
//
// On error nothing is mutated and no value is drawn.
func (c *Controller) ApplyRussianRoulette(p *model.Particle, weightSurvive float64) error {
	if err := validate(opRoulette, p, weightSurvive); err != nil {
		c.recorder.RecordInvalid()
		return err
	}
	return c.roulette(p, weightSurvive, p.Draw)
}

func (c *Controller) roulette(p *model.Particle, weightSurvive float64, draw func() (float64, error)) error {
	weight := p.Weight()

	if weightSurvive < weight {
		_ = p.SetWeight(weightSurvive)
		c.recorder.RecordEvent()
		c.recorder.RecordPromoted()
		c.debug("roulette promoted", p, weight, weightSurvive)
		return nil
	}

	r, err := draw()
	if err != nil {
		if errors.Is(err, random.ErrStreamExhausted) {
			c.recorder.RecordExhausted()
		}
		return err
	}

	if r < weight/weightSurvive {
		_ = p.SetWeight(weightSurvive)
		c.recorder.RecordSurvived()
		c.debug("roulette survived", p, weight, weightSurvive)
	} else {
		p.Terminate()
		c.recorder.RecordKilled()
		c.debug("roulette killed", p, weight, weightSurvive)
	}
	c.recorder.RecordEvent()

	return nil
}

func (c *Controller) debug(msg string, p *model.Particle, before, weightSurvive float64) {
	if !c.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	c.logger.Debug(msg,
		"history", p.HistoryID(),
		"weight_before", before,
		"weight_after", p.Weight(),
		"weight_survive", weightSurvive,
		"draws", p.Stream().Draws(),
	)
}

func validate(op string, p *model.Particle, weightSurvive float64) error {
	if p == nil {
		return &InvalidWeightError{Op: op, Reason: "nil particle", WeightSurvive: weightSurvive}
	}
	if err := validateParticle(op, p); err != nil {
		err.WeightSurvive = weightSurvive
		return err
	}
	if !(weightSurvive > 0) || math.IsInf(weightSurvive, 1) {
		return invalid(op, "survival weight must be positive and finite", p, weightSurvive)
	}
	return nil
}

func validateParticle(op string, p *model.Particle) *InvalidWeightError {
	if !p.Alive() {
		return invalid(op, "particle is not alive", p, 0)
	}
	if w := p.Weight(); !(w > 0) || math.IsInf(w, 1) {
		return invalid(op, "weight must be positive and finite", p, 0)
	}
	return nil
}

func invalid(op, reason string, p *model.Particle, weightSurvive float64) *InvalidWeightError {
	return &InvalidWeightError{
		Op:            op,
		Reason:        reason,
		Weight:        p.Weight(),
		WeightSurvive: weightSurvive,
		Alive:         p.Alive(),
	}
}
