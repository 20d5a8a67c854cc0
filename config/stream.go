package config

// GeneratorKind selects the random-stream algorithm.
type GeneratorKind string

const (
	// GeneratorLCG is the 63-bit linear congruential generator with skip-ahead.
	// Every history owns a contiguous block of Stride draws of one global sequence,
	// so a history that needs more than Stride draws exhausts its stream.
	// Streams of split secondaries start at hashed points of the 2^63 cycle instead;
	// their blocks are disjoint from history blocks only with high probability
	// (an overlap with a given block has a chance of about 2*Stride/2^63).
	GeneratorLCG GeneratorKind = "lcg"

	// GeneratorSplitMix is a counter-based SplitMix64 keyed per history.
	// Its period is 2^64 draws per history unless MaxDraws lowers it.
	GeneratorSplitMix GeneratorKind = "splitmix"
)

const (
	DefaultStride     uint64 = 152917
	DefaultMasterSeed uint64 = 1
)

type StreamCfg struct {
	// Generator defines the algorithm.
	// Supported values:
	//   - "lcg":      63-bit LCG, bounded per history by Stride
	//   - "splitmix": counter-based SplitMix64, bounded by MaxDraws (if set)
	Generator GeneratorKind `yaml:"generator"`

	// MasterSeed is the run seed. Same seed and same history ids reproduce
	// bit-identical decisions.
	MasterSeed uint64 `yaml:"seed"`

	// Stride is the distance between the start states of consecutive histories (lcg only).
	Stride uint64 `yaml:"stride"`

	// MaxDraws optionally caps the number of draws a single history may consume.
	// Zero means "no cap beyond the generator's own bound".
	MaxDraws uint64 `yaml:"max_draws"`
}
