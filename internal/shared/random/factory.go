package random

import (
	"fmt"
	"github.com/Borislavv/go-roulette/config"
)

// Factory hands out the start cursor of every history of a run.
// It is immutable and safe for concurrent use.
type Factory struct {
	kind   Kind
	master uint64
	stride uint64
	limit  uint64
}

func NewFactory(cfg *config.StreamCfg) (*Factory, error) {
	f := &Factory{master: cfg.MasterSeed, stride: cfg.Stride}

	switch cfg.Generator {
	case config.GeneratorLCG:
		if cfg.Stride == 0 {
			return nil, fmt.Errorf("%w: lcg stride must be positive", config.ErrInvalidConfig)
		}
		f.kind = KindLCG
		// A history must not run into the block of the next one.
		f.limit = cfg.Stride
		if cfg.MaxDraws > 0 && cfg.MaxDraws < cfg.Stride {
			f.limit = cfg.MaxDraws
		}
	case config.GeneratorSplitMix:
		f.kind = KindSplitMix
		f.limit = unbounded(cfg.MaxDraws)
	default:
		return nil, fmt.Errorf("%w: unknown generator %q", config.ErrInvalidConfig, cfg.Generator)
	}

	return f, nil
}

func (f *Factory) Kind() Kind {
	return f.kind
}

func (f *Factory) MasterSeed() uint64 {
	return f.master
}

// Stream returns the start cursor of the given history.
// For lcg, history i starts i*stride steps after the master seed.
func (f *Factory) Stream(historyID uint64) Stream {
	s := Stream{kind: f.kind, limit: f.limit}
	switch f.kind {
	case KindLCG:
		s.state = lcgSkip(historyID*f.stride, f.master&lcgMask)
		s.key = s.state
	default:
		s.key = historyKey(f.master, historyID)
	}
	return s
}
