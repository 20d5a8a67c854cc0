package config

import "time"

const DefaultLogsInterval = 5 * time.Second

type DiagnosticsCfg struct {
	// IsLogsEnabled turns on periodic structured logs of roulette counters.
	IsLogsEnabled bool `yaml:"logs_enabled"`

	// LogsInterval is the period of those logs. Example: "5s".
	LogsInterval time.Duration `yaml:"logs_interval"`

	// Namespace prefixes exported Prometheus metric names.
	Namespace string `yaml:"namespace"`
}
