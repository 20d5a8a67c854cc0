package history

import (
	"encoding/binary"
	"github.com/Borislavv/go-roulette/internal/diagnostics"
	"github.com/zeebo/xxh3"
	"time"
)

// Report summarises a run. Weight sums are accumulated in history order.
type Report struct {
	Histories     int
	Particles     int64 // source particles and secondaries
	Collisions    int64
	RouletteKills int64

	Absorbed float64 // weight deposited by implicit capture
	Leaked   float64 // weight carried out of the domain
	Censored float64 // weight of particles stopped at MaxCollisions

	// Digest fingerprints every history's sequence of post-collision weights.
	// Equal seeds and history ids give equal digests.
	Digest uint64

	// Diagnostics are the counter increments recorded during the run.
	Diagnostics diagnostics.Snapshot
	Elapsed     time.Duration
}

// Tallied is the total weight accounted for; its expectation equals the source weight times histories.
func (r *Report) Tallied() float64 {
	return r.Absorbed + r.Leaked + r.Censored
}

func (r *Runner) report(outcomes []outcome, before diagnostics.Snapshot, elapsed time.Duration) *Report {
	rep := &Report{Histories: len(outcomes), Elapsed: elapsed}

	h := xxh3.New()
	var buf [8]byte
	for _, o := range outcomes {
		rep.Particles += o.particles
		rep.Collisions += o.collisions
		rep.RouletteKills += o.rouletteKills
		rep.Absorbed += o.absorbed
		rep.Leaked += o.leaked
		rep.Censored += o.censored

		binary.LittleEndian.PutUint64(buf[:], o.digest)
		_, _ = h.Write(buf[:])
	}
	rep.Digest = h.Sum64()

	if r.stats != nil {
		rep.Diagnostics = r.stats.Snapshot().Sub(before)
	}

	return rep
}
