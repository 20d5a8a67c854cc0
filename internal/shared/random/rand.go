package random

import (
	"errors"
	"math"
)

var (
	ErrStreamExhausted = errors.New("random stream exhausted")
	ErrZeroStream      = errors.New("random stream is not initialized")
)

// Kind is the generator behind a Stream.
type Kind uint8

const (
	KindLCG Kind = iota + 1
	KindSplitMix
)

func (k Kind) String() string {
	switch k {
	case KindLCG:
		return "lcg"
	case KindSplitMix:
		return "splitmix"
	default:
		return "unknown"
	}
}

const inv53 = 1.0 / 9007199254740992.0 // 2^53

// Stream is a per-history cursor. It is a plain value: Draw never mutates the
// receiver, it returns the successor cursor instead. The zero value is invalid.
type Stream struct {
	kind  Kind
	key   uint64 // splitmix key, or the lcg start state
	state uint64 // lcg current state
	draws uint64
	forks uint64
	limit uint64
}

func (s Stream) Kind() Kind {
	return s.kind
}

// Draws is the number of values consumed so far.
func (s Stream) Draws() uint64 {
	return s.draws
}

// Remaining is the number of values left before the stream is exhausted.
func (s Stream) Remaining() uint64 {
	return s.limit - s.draws
}

// Forks is the number of child streams derived so far.
func (s Stream) Forks() uint64 {
	return s.forks
}

// Key identifies the stream: equal keys and draw counts yield equal sequences.
func (s Stream) Key() uint64 {
	return s.key
}

func (s Stream) IsZero() bool {
	return s.kind == 0
}

// Draw returns a uniform value in [0,1) built from 53 random bits and the advanced cursor.
// On error the returned cursor equals the receiver.
func (s Stream) Draw() (float64, Stream, error) {
	if s.kind == 0 {
		return 0, s, ErrZeroStream
	}
	if s.draws >= s.limit {
		return 0, s, ErrStreamExhausted
	}

	var bits53 uint64
	switch s.kind {
	case KindLCG:
		s.state = lcgNext(s.state)
		bits53 = s.state >> 10 // top 53 of 63 bits
	default:
		bits53 = splitmixAt(s.key, s.draws) >> 11
	}
	s.draws++

	return float64(bits53) * inv53, s, nil
}

// Skip advances the cursor by n draws without producing values.
func (s Stream) Skip(n uint64) (Stream, error) {
	if s.kind == 0 {
		return s, ErrZeroStream
	}
	if n > s.limit-s.draws {
		return s, ErrStreamExhausted
	}
	if s.kind == KindLCG {
		s.state = lcgSkip(n, s.state)
	}
	s.draws += n
	return s, nil
}

// Fork derives a child stream and returns it with the parent cursor advanced past
// the fork. The child key mixes the parent key, draw count and fork count, so
// repeated forks without a draw in between still give distinct children. The child
// starts fresh (zero draws, same limit).
//
// LCG children start at a hashed point of the 2^63 cycle. Unlike history blocks,
// a child block is not guaranteed disjoint from other blocks; it only overlaps
// one with probability of about limit*2^-63 per pair.
func (s Stream) Fork() (child, parent Stream) {
	if s.kind == 0 {
		return s, s
	}
	child = Stream{kind: s.kind, limit: s.limit}
	key := mixKey(s.key, s.draws, s.forks)
	if s.kind == KindLCG {
		key &= lcgMask
		child.state = key
	}
	child.key = key
	s.forks++
	return child, s
}

// Float64s draws n values, stopping at the first error.
func (s Stream) Float64s(n int) ([]float64, Stream, error) {
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v, next, err := s.Draw()
		if err != nil {
			return out, s, err
		}
		out = append(out, v)
		s = next
	}
	return out, s, nil
}

func unbounded(limit uint64) uint64 {
	if limit == 0 {
		return math.MaxUint64
	}
	return limit
}
