package config

const (
	DefaultCutoffThreshold = 0.25
	DefaultCutoffSurvive   = 1.0
	DefaultSurvivalRatio   = 3.0
	DefaultMaxSplit        = 10
)

// CutoffCfg configures weight cutoff.
//
// Example:
//
//	Threshold: 0.25 // particles lighter than 0.25 play roulette
//	Survive:   1.0  // survivors continue with weight 1.0
type CutoffCfg struct {
	Threshold float64 `yaml:"threshold"`
	Survive   float64 `yaml:"survive"`
}

func (cfg *CutoffCfg) Enabled() bool {
	return cfg != nil
}

// WindowCfg configures a weight window.
type WindowCfg struct {
	// Lower is the lower weight bound. Particles at or below it play roulette.
	Lower float64 `yaml:"lower"`

	// Upper is the upper weight bound. Heavier particles are split.
	Upper float64 `yaml:"upper"`

	// SurvivalRatio defines the roulette survival weight as Lower * SurvivalRatio.
	SurvivalRatio float64 `yaml:"survival_ratio"`

	// MaxSplit caps the number of particles a single split may produce (the original included).
	MaxSplit int `yaml:"max_split"`
}

func (cfg *WindowCfg) Enabled() bool {
	return cfg != nil
}

// SurvivalWeight is the weight a particle that wins roulette below the window is raised to.
func (cfg *WindowCfg) SurvivalWeight() float64 {
	return cfg.Lower * cfg.SurvivalRatio
}
