package config

import "runtime"

const (
	DefaultSourceWeight  = 1.0
	DefaultMaxCollisions = 1000
	DefaultLeakage       = 0.1
	DefaultMaxAbsorption = 0.5
	DefaultMaxBank       = 10000
)

// HistoryCfg configures the built-in history driver, a minimal stand-in for a transport loop.
// Each collision first samples leakage, then reduces weight by implicit capture
// (weight *= 1 - absorption, absorption uniform in [0, MaxAbsorption)), then applies
// the configured weight policy.
type HistoryCfg struct {
	// Workers is the number of histories simulated concurrently. Defaults to GOMAXPROCS.
	Workers int `yaml:"workers"`

	// FirstID is the id of the first history. Ids are consecutive.
	FirstID uint64 `yaml:"first_id"`

	SourceWeight  float64 `yaml:"source_weight"`
	MaxCollisions int     `yaml:"max_collisions"`
	Leakage       float64 `yaml:"leakage"`
	MaxAbsorption float64 `yaml:"max_absorption"`

	// MaxBank bounds the secondaries waiting in one history's bank.
	MaxBank int `yaml:"max_bank"`

	// Rate throttles history starts per second for soak runs. Zero means unthrottled.
	Rate int `yaml:"rate"`
}

func (cfg *HistoryCfg) Enabled() bool {
	return cfg != nil
}

func defaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}
