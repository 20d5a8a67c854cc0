package config

import (
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"math"
	"os"
)

var ErrInvalidConfig = errors.New("invalid config")

// Default returns a run with an lcg stream and the classic cutoff (0.25 -> 1.0).
func Default() *Run {
	cfg := &Run{
		Stream: StreamCfg{Generator: GeneratorLCG, MasterSeed: DefaultMasterSeed},
		Cutoff: &CutoffCfg{},
	}
	cfg.AdjustConfig()
	return cfg
}

// AdjustConfig fills zero values with defaults.
func (cfg *Run) AdjustConfig() {
	if cfg.Stream.Generator == "" {
		cfg.Stream.Generator = GeneratorLCG
	}
	if cfg.Stream.Stride == 0 {
		cfg.Stream.Stride = DefaultStride
	}

	if cfg.Cutoff.Enabled() {
		if cfg.Cutoff.Threshold == 0 {
			cfg.Cutoff.Threshold = DefaultCutoffThreshold
		}
		if cfg.Cutoff.Survive == 0 {
			cfg.Cutoff.Survive = DefaultCutoffSurvive
		}
	}

	if cfg.Window.Enabled() {
		if cfg.Window.SurvivalRatio == 0 {
			cfg.Window.SurvivalRatio = DefaultSurvivalRatio
		}
		if cfg.Window.MaxSplit == 0 {
			cfg.Window.MaxSplit = DefaultMaxSplit
		}
	}

	if cfg.Diagnostics.LogsInterval <= 0 {
		cfg.Diagnostics.LogsInterval = DefaultLogsInterval
	}
	if cfg.Diagnostics.Namespace == "" {
		cfg.Diagnostics.Namespace = "roulette"
	}

	if cfg.History.Enabled() {
		cfg.History.adjust()
	}
}

func (cfg *HistoryCfg) adjust() {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers()
	}
	if cfg.FirstID == 0 {
		cfg.FirstID = 1
	}
	if cfg.SourceWeight == 0 {
		cfg.SourceWeight = DefaultSourceWeight
	}
	if cfg.MaxCollisions == 0 {
		cfg.MaxCollisions = DefaultMaxCollisions
	}
	if cfg.Leakage == 0 {
		cfg.Leakage = DefaultLeakage
	}
	if cfg.MaxAbsorption == 0 {
		cfg.MaxAbsorption = DefaultMaxAbsorption
	}
	if cfg.MaxBank == 0 {
		cfg.MaxBank = DefaultMaxBank
	}
}

// DefaultHistory returns an adjusted history config.
func DefaultHistory() *HistoryCfg {
	cfg := &HistoryCfg{}
	cfg.adjust()
	return cfg
}

// Validate reports the first inconsistency found, wrapped with ErrInvalidConfig.
func (cfg *Run) Validate() error {
	switch cfg.Stream.Generator {
	case GeneratorLCG, GeneratorSplitMix:
	default:
		return fmt.Errorf("%w: unknown generator %q", ErrInvalidConfig, cfg.Stream.Generator)
	}
	if cfg.Stream.Generator == GeneratorLCG && cfg.Stream.Stride == 0 {
		return fmt.Errorf("%w: lcg stride must be positive", ErrInvalidConfig)
	}

	if cfg.Cutoff.Enabled() {
		c := cfg.Cutoff
		if !positive(c.Threshold) || !positive(c.Survive) {
			return fmt.Errorf("%w: cutoff threshold %v and survive %v must be positive", ErrInvalidConfig, c.Threshold, c.Survive)
		}
		if c.Threshold >= c.Survive {
			return fmt.Errorf("%w: cutoff threshold %v must be below survive %v", ErrInvalidConfig, c.Threshold, c.Survive)
		}
	}

	if cfg.Window.Enabled() {
		w := cfg.Window
		if !positive(w.Lower) || !positive(w.Upper) || w.Lower > w.Upper {
			return fmt.Errorf("%w: window bounds must satisfy 0 < lower (%v) <= upper (%v)", ErrInvalidConfig, w.Lower, w.Upper)
		}
		if !(w.SurvivalRatio >= 1) || math.IsInf(w.SurvivalRatio, 0) {
			return fmt.Errorf("%w: window survival ratio %v must be >= 1", ErrInvalidConfig, w.SurvivalRatio)
		}
		if w.MaxSplit < 1 {
			return fmt.Errorf("%w: window max split %d must be >= 1", ErrInvalidConfig, w.MaxSplit)
		}
	}

	if cfg.History.Enabled() {
		h := cfg.History
		if !positive(h.SourceWeight) {
			return fmt.Errorf("%w: source weight %v must be positive", ErrInvalidConfig, h.SourceWeight)
		}
		if h.Leakage < 0 || h.Leakage > 1 {
			return fmt.Errorf("%w: leakage %v must be within [0, 1]", ErrInvalidConfig, h.Leakage)
		}
		if h.MaxAbsorption < 0 || h.MaxAbsorption >= 1 {
			return fmt.Errorf("%w: max absorption %v must be within [0, 1)", ErrInvalidConfig, h.MaxAbsorption)
		}
		if h.Rate < 0 {
			return fmt.Errorf("%w: rate %d must not be negative", ErrInvalidConfig, h.Rate)
		}
		if h.MaxBank < 1 {
			return fmt.Errorf("%w: max bank %d must be positive", ErrInvalidConfig, h.MaxBank)
		}
		if h.MaxCollisions < 1 {
			return fmt.Errorf("%w: max collisions %d must be positive", ErrInvalidConfig, h.MaxCollisions)
		}
	}

	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func LoadConfig(path string) (*Run, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Run
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	if cfg == nil {
		cfg = &Run{}
	}
	cfg.AdjustConfig()

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	return cfg, nil
}
