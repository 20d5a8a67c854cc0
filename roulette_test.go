package roulette

import (
	"bytes"
	"errors"
	"github.com/Borislavv/go-roulette/config"
	"github.com/Borislavv/go-roulette/tests/help"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"io"
	"sync"
	"testing"
	"time"
)

func newRoulette(t *testing.T, cfg *config.Run) *Roulette {
	t.Helper()
	r, err := New(t.Context(), cfg, help.Logger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

// TestRoulette_Close cancels context and stops background workers.
func TestRoulette_Close(t *testing.T) {
	r, err := New(t.Context(), help.TelemetryCfg(), help.Logger(io.Discard))
	require.NoError(t, err)

	var _ WeightRoulette = r

	// Close should not panic
	require.NoError(t, r.Close())

	// Close should be idempotent
	require.NoError(t, r.Close())
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := help.Cfg()
	cfg.Cutoff.Threshold = 2

	_, err := New(t.Context(), cfg, nil)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

// TestRoulette_ConcurrentHistories verifies N histories each playing roulette once count N events.
func TestRoulette_ConcurrentHistories(t *testing.T) {
	const n = 5000
	r := newRoulette(t, help.Cfg())

	var wg sync.WaitGroup
	wg.Add(n)
	for id := uint64(1); id <= n; id++ {
		go func(id uint64) {
			defer wg.Done()
			p, err := r.Emit(id, 0.1)
			if err != nil {
				t.Error(err)
				return
			}
			if err = r.ApplyRussianRoulette(p, 1); err != nil {
				t.Error(err)
			}
		}(id)
	}
	wg.Wait()

	require.Equal(t, int64(n), r.RouletteEvents())
	d := r.Diagnostics()
	require.Equal(t, int64(n), d.Survived+d.Killed)
}

// TestRoulette_Reproducible verifies two runs with the same master seed decide identically.
func TestRoulette_Reproducible(t *testing.T) {
	decide := func() []float64 {
		r := newRoulette(t, help.SplitMixCfg())
		weights := make([]float64, 0, 500)
		for id := uint64(1); id <= 500; id++ {
			p, err := r.Emit(id, 0.3)
			require.NoError(t, err)
			require.NoError(t, r.ApplyRussianRoulette(p, 1))
			weights = append(weights, p.Weight())
		}
		return weights
	}

	require.Equal(t, decide(), decide())
}

// TestRoulette_Errors verifies both error kinds are reachable through the facade.
func TestRoulette_Errors(t *testing.T) {
	cfg := help.Cfg()
	cfg.Stream.MaxDraws = 1
	r := newRoulette(t, cfg)

	p, err := r.Emit(1, 0.5)
	require.NoError(t, err)
	p.Terminate()

	err = r.ApplyRussianRoulette(p, 1)
	require.ErrorIs(t, err, ErrInvalidWeight)
	var invalidErr *InvalidWeightError
	require.True(t, errors.As(err, &invalidErr))
	require.False(t, invalidErr.Alive)

	q, err := r.Emit(2, 0.5)
	require.NoError(t, err)
	_, err = q.Draw()
	require.NoError(t, err)
	require.ErrorIs(t, r.ApplyRussianRoulette(q, 1), ErrStreamExhausted)

	d := r.Diagnostics()
	require.Equal(t, int64(1), d.Invalid)
	require.Equal(t, int64(1), d.Exhausted)
	require.Equal(t, int64(0), d.Events)
}

// TestRoulette_Run drives histories through the built-in driver.
func TestRoulette_Run(t *testing.T) {
	r := newRoulette(t, help.WindowCfg())

	rep, err := r.Run(t.Context(), 2000)
	require.NoError(t, err)
	require.Equal(t, 2000, rep.Histories)
	require.Greater(t, rep.Diagnostics.Splits, int64(0))
	require.InDelta(t, 4.0, rep.Tallied()/2000, 0.3)
	require.Equal(t, r.Diagnostics(), rep.Diagnostics)
}

// TestRoulette_RunTwice verifies every report counts only its own run while the
// facade diagnostics keep accumulating.
func TestRoulette_RunTwice(t *testing.T) {
	r := newRoulette(t, help.WindowCfg())

	first, err := r.Run(t.Context(), 500)
	require.NoError(t, err)
	second, err := r.Run(t.Context(), 500)
	require.NoError(t, err)

	require.Greater(t, first.Diagnostics.Events, int64(0))
	require.Equal(t, first.Diagnostics, second.Diagnostics)
	require.Equal(t, first.RouletteKills, second.RouletteKills)
	require.Equal(t, 2*first.Diagnostics.Events, r.Diagnostics().Events)
	require.Equal(t, 2*first.Diagnostics.Splits, r.Diagnostics().Splits)
}

func TestRoulette_Collector(t *testing.T) {
	r := newRoulette(t, help.Cfg())
	p, err := r.Emit(1, 2)
	require.NoError(t, err)
	require.NoError(t, r.ApplyRussianRoulette(p, 1))

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(r.Collector()))

	count, err := testutil.GatherAndCount(reg, "roulette_weight_roulette_promoted_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// TestRoulette_TelemetryLogs verifies periodic diagnostics reach the logger.
func TestRoulette_TelemetryLogs(t *testing.T) {
	out := &lockedBuffer{}
	r, err := New(t.Context(), help.TelemetryCfg(), help.Logger(out))
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	p, err := r.Emit(1, 0.2)
	require.NoError(t, err)
	require.NoError(t, r.ApplyRussianRoulette(p, 1))

	require.Eventually(t, func() bool {
		return bytes.Contains(out.Bytes(), []byte(`"msg":"roulette"`))
	}, time.Second, 10*time.Millisecond)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}
