package random

// 63-bit LCG: s' = (g*s + c) mod 2^63.
const (
	lcgMult uint64 = 2806196910506780709
	lcgAdd  uint64 = 1
	lcgMask uint64 = 1<<63 - 1
)

func lcgNext(s uint64) uint64 {
	return (lcgMult*s + lcgAdd) & lcgMask
}

// lcgSkip returns the state n steps after s in O(log n).
// It composes the affine map s -> g*s + c with itself by repeated squaring
// (F. Brown, "Random number generation with arbitrary stride", 1994).
func lcgSkip(n, s uint64) uint64 {
	g, c := lcgMult, lcgAdd
	gNew, cNew := uint64(1), uint64(0)

	n &= lcgMask
	for n > 0 {
		if n&1 == 1 {
			gNew *= g
			cNew = cNew*g + c
		}
		c = (g + 1) * c
		g *= g
		n >>= 1
	}

	return (gNew*s + cNew) & lcgMask
}
