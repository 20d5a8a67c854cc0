package config

// Run groups configuration of a single simulation run.
// Optional components are disabled by setting them to nil.
type Run struct {
	// Stream configures the per-history random streams. Always required.
	Stream StreamCfg `yaml:"stream"`

	// Cutoff configures the classic weight cutoff: a particle whose weight falls
	// below Threshold plays russian roulette and survives at Survive.
	// If nil, no cutoff is applied.
	Cutoff *CutoffCfg `yaml:"cutoff"`

	// Window configures weight windows (splitting above Upper, roulette below Lower).
	// When both Window and Cutoff are set, Window takes precedence.
	// If nil, weight windows are disabled.
	Window *WindowCfg `yaml:"window"`

	Diagnostics DiagnosticsCfg `yaml:"diagnostics"`

	// History configures the built-in history driver used by the CLI and by tests.
	// If nil, defaults are used when a driver is requested.
	History *HistoryCfg `yaml:"history"`
}
