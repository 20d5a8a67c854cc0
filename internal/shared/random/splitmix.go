package random

import (
	"encoding/binary"
	"github.com/zeebo/xxh3"
)

const golden = 0x9e3779b97f4a7c15

// splitmixAt returns the n-th (0-based) SplitMix64 output of a generator whose state is key.
// The sequential form is: x += golden; mix(x). Being counter-based, any position is O(1).
func splitmixAt(key, n uint64) uint64 {
	return splitmixMix(key + (n+1)*golden)
}

func splitmixMix(z uint64) uint64 {
	z ^= z >> 30
	z *= 0xbf58476d1ce4e5b9
	z ^= z >> 27
	z *= 0x94d049bb133111eb
	z ^= z >> 31
	return z
}

// historyKey turns (master seed, history id) into a well-mixed 64-bit key.
func historyKey(master, historyID uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], master)
	binary.LittleEndian.PutUint64(buf[8:16], historyID)
	return nonZero(xxh3.Hash(buf[:]))
}

// mixKey derives a child key from a parent key, its draw count and its fork count.
func mixKey(parent, draws, forks uint64) uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], parent)
	binary.LittleEndian.PutUint64(buf[8:16], draws)
	binary.LittleEndian.PutUint64(buf[16:24], forks)
	return nonZero(xxh3.Hash(buf[:]))
}

func nonZero(z uint64) uint64 {
	if z == 0 {
		return golden
	}
	return z
}
