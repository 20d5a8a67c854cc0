package history

import (
	"context"
	"github.com/Borislavv/go-roulette/config"
	"github.com/Borislavv/go-roulette/internal/diagnostics"
	"github.com/Borislavv/go-roulette/internal/shared/queue"
	"github.com/Borislavv/go-roulette/internal/shared/random"
	"github.com/Borislavv/go-roulette/internal/weight"
	"github.com/stretchr/testify/require"
	"testing"
)

func newRunner(t *testing.T, cfg *config.Run) (*Runner, *diagnostics.Counters) {
	t.Helper()
	cfg.AdjustConfig()
	require.NoError(t, cfg.Validate())

	factory, err := random.NewFactory(&cfg.Stream)
	require.NoError(t, err)

	counters := diagnostics.NewCounters()
	return NewRunner(cfg, weight.New(counters, nil), factory, counters, nil), counters
}

func cutoffCfg(seed uint64, workers int) *config.Run {
	return &config.Run{
		Stream:  config.StreamCfg{Generator: config.GeneratorLCG, MasterSeed: seed},
		Cutoff:  &config.CutoffCfg{Threshold: 0.25, Survive: 1},
		History: &config.HistoryCfg{Workers: workers},
	}
}

// TestRun_Reproducible verifies identical seeds give identical reports regardless of parallelism.
func TestRun_Reproducible(t *testing.T) {
	serial, _ := newRunner(t, cutoffCfg(42, 1))
	parallel, _ := newRunner(t, cutoffCfg(42, 8))
	other, _ := newRunner(t, cutoffCfg(43, 8))

	a, err := serial.Run(t.Context(), 2000)
	require.NoError(t, err)
	b, err := parallel.Run(t.Context(), 2000)
	require.NoError(t, err)
	c, err := other.Run(t.Context(), 2000)
	require.NoError(t, err)

	require.Equal(t, a.Digest, b.Digest)
	require.Equal(t, a.Tallied(), b.Tallied())
	require.Equal(t, a.RouletteKills, b.RouletteKills)
	require.Equal(t, a.Diagnostics, b.Diagnostics)
	require.NotEqual(t, a.Digest, c.Digest)
}

// TestRun_WeightConservedWithoutRoulette verifies bookkeeping is exact when no policy is active.
func TestRun_WeightConservedWithoutRoulette(t *testing.T) {
	cfg := cutoffCfg(1, 4)
	cfg.Cutoff = nil
	runner, counters := newRunner(t, cfg)

	rep, err := runner.Run(t.Context(), 1000)
	require.NoError(t, err)
	require.InDelta(t, 1000.0, rep.Tallied(), 1e-9)
	require.Equal(t, int64(0), counters.Events())
	require.Equal(t, int64(1000), rep.Particles)
}

// TestRun_RouletteUnbiased verifies the tallied weight matches the source weight on average.
func TestRun_RouletteUnbiased(t *testing.T) {
	const n = 20_000

	for _, kind := range []config.GeneratorKind{config.GeneratorLCG, config.GeneratorSplitMix} {
		cfg := cutoffCfg(7, 0)
		cfg.Stream.Generator = kind
		runner, _ := newRunner(t, cfg)

		rep, err := runner.Run(t.Context(), n)
		require.NoError(t, err)

		require.Greater(t, rep.RouletteKills, int64(0))
		require.InDelta(t, 1.0, rep.Tallied()/n, 0.05, "generator %s", kind)

		d := rep.Diagnostics
		require.Equal(t, d.Events, d.Survived+d.Killed+d.Promoted)
		require.Equal(t, rep.RouletteKills, d.Killed)
		require.Equal(t, int64(0), d.Invalid)
	}
}

// TestRun_WeightWindowSplits verifies splitting produces secondaries and stays unbiased.
func TestRun_WeightWindowSplits(t *testing.T) {
	const n = 5000

	cfg := &config.Run{
		Stream:  config.StreamCfg{Generator: config.GeneratorSplitMix, MasterSeed: 5},
		Window:  &config.WindowCfg{Lower: 0.25, Upper: 1},
		History: &config.HistoryCfg{SourceWeight: 5},
	}
	runner, _ := newRunner(t, cfg)

	rep, err := runner.Run(t.Context(), n)
	require.NoError(t, err)

	require.Greater(t, rep.Particles, int64(n))
	require.Equal(t, rep.Particles-n, rep.Diagnostics.Secondaries)
	require.InDelta(t, 5.0, rep.Tallied()/n, 0.25)

	again, err := runner.Run(t.Context(), n)
	require.NoError(t, err)
	require.Equal(t, rep.Digest, again.Digest)
	require.Equal(t, rep.Diagnostics, again.Diagnostics, "each report counts its own run")
}

// TestRun_BankOverflowFailsRun verifies a history cannot bank more secondaries than MaxBank.
func TestRun_BankOverflowFailsRun(t *testing.T) {
	cfg := &config.Run{
		Stream:  config.StreamCfg{Generator: config.GeneratorSplitMix, MasterSeed: 9},
		Window:  &config.WindowCfg{Lower: 0.25, Upper: 1, MaxSplit: 10},
		History: &config.HistoryCfg{Workers: 2, SourceWeight: 100, Leakage: 1e-9, MaxBank: 2},
	}
	runner, _ := newRunner(t, cfg)

	_, err := runner.Run(t.Context(), 20)
	require.ErrorIs(t, err, queue.ErrFull)
}

// TestRun_StreamExhaustionFailsRun verifies exhaustion is surfaced to the caller.
func TestRun_StreamExhaustionFailsRun(t *testing.T) {
	cfg := cutoffCfg(1, 2)
	cfg.Stream.Stride = 3
	runner, _ := newRunner(t, cfg)

	_, err := runner.Run(t.Context(), 100)
	require.ErrorIs(t, err, random.ErrStreamExhausted)
}

func TestRun_Cancelled(t *testing.T) {
	runner, _ := newRunner(t, cutoffCfg(1, 2))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := runner.Run(ctx, 100)
	require.ErrorIs(t, err, context.Canceled)

	_, err = runner.Run(t.Context(), -1)
	require.Error(t, err)
}

func TestRun_Throttled(t *testing.T) {
	cfg := cutoffCfg(1, 2)
	cfg.History.Rate = 1000
	runner, _ := newRunner(t, cfg)

	rep, err := runner.Run(t.Context(), 50)
	require.NoError(t, err)
	require.Equal(t, 50, rep.Histories)
}

// TestRun_DefaultHistoryConfig verifies a nil history config falls back to defaults.
func TestRun_DefaultHistoryConfig(t *testing.T) {
	cfg := config.Default()
	runner, _ := newRunner(t, cfg)
	require.Equal(t, config.DefaultMaxCollisions, runner.cfg.MaxCollisions)

	rep, err := runner.Run(t.Context(), 10)
	require.NoError(t, err)
	require.Equal(t, 10, rep.Histories)
}
