package model

import (
	"errors"
	"fmt"
	"github.com/Borislavv/go-roulette/internal/shared/random"
	"math"
)

var ErrNegativeWeight = errors.New("weight must be a finite non-negative number")

// Particle is the mutable state of one simulated particle. It is owned by the
// goroutine transporting its history and must not be shared.
//
// Invariants: weight >= 0, and weight == 0 implies !alive.
type Particle struct {
	historyID uint64
	weight    float64
	alive     bool
	stream    random.Stream
}

// NewParticle emits a live particle. The weight must be positive.
func NewParticle(historyID uint64, weight float64, stream random.Stream) (*Particle, error) {
	if !(weight > 0) || math.IsInf(weight, 1) {
		return nil, fmt.Errorf("%w: source weight %v", ErrNegativeWeight, weight)
	}
	if stream.IsZero() {
		return nil, random.ErrZeroStream
	}
	return &Particle{historyID: historyID, weight: weight, alive: true, stream: stream}, nil
}

func (p *Particle) HistoryID() uint64 {
	return p.historyID
}

func (p *Particle) Weight() float64 {
	return p.weight
}

func (p *Particle) Alive() bool {
	return p.alive
}

// Stream returns the current cursor of the particle's random stream.
func (p *Particle) Stream() random.Stream {
	return p.stream
}

// Fork derives a stream for a secondary and advances the particle's own cursor
// past the fork, so every secondary gets a distinct stream.
func (p *Particle) Fork() random.Stream {
	child, next := p.stream.Fork()
	p.stream = next
	return child
}

// Draw consumes one value from the particle's own stream.
// The cursor only advances when the draw succeeds.
func (p *Particle) Draw() (float64, error) {
	v, next, err := p.stream.Draw()
	if err != nil {
		return 0, err
	}
	p.stream = next
	return v, nil
}

// SetWeight replaces the weight. A zero weight terminates the particle.
func (p *Particle) SetWeight(w float64) error {
	if !(w >= 0) || math.IsInf(w, 1) {
		return fmt.Errorf("%w: %v", ErrNegativeWeight, w)
	}
	p.weight = w
	if w == 0 {
		p.alive = false
	}
	return nil
}

// Terminate zeroes the weight and retires the particle.
func (p *Particle) Terminate() {
	p.weight = 0
	p.alive = false
}

// Kill retires the particle keeping its weight, e.g. when it leaves the problem domain.
func (p *Particle) Kill() {
	p.alive = false
}

func (p *Particle) String() string {
	return fmt.Sprintf("particle{history=%d weight=%g alive=%t draws=%d}", p.historyID, p.weight, p.alive, p.stream.Draws())
}
