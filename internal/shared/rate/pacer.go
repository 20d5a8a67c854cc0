package rate

import (
	"context"
	"go.uber.org/ratelimit"
)

// Pacer hands out at most perSec permits per second with a small burst buffer.
// Its producer goroutine stops, and the permit channel is closed, when ctx is done.
type Pacer struct {
	permits chan struct{}
	limiter ratelimit.Limiter
	perSec  int
}

func NewPacer(ctx context.Context, perSec int) *Pacer {
	burst := perSec / 10
	if burst < 1 {
		burst = 1
	}
	p := &Pacer{
		perSec:  perSec,
		permits: make(chan struct{}, burst),
		limiter: ratelimit.New(perSec),
	}
	go p.produce(ctx)
	return p
}

func (p *Pacer) produce(ctx context.Context) {
	defer close(p.permits)
	for {
		p.limiter.Take()
		select {
		case <-ctx.Done():
			return
		case p.permits <- struct{}{}:
		}
	}
}

// Wait blocks until a permit is available or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case _, ok := <-p.permits:
		if !ok {
			return context.Canceled
		}
		return nil
	}
}

func (p *Pacer) PerSec() int {
	return p.perSec
}
