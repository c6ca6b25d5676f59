package board

import "math/bits"

// Scalar primitives shared by the ray caster and board code. Most
// populated boards have a piece in the low word, so the low word is the
// hot path and the high word is handled out of line.

// BitScanForward returns the lowest set square, or NoSquare for an empty board.
func BitScanForward(b Bitboard) Square {
	if b.lo != 0 {
		return Square(bits.TrailingZeros64(b.lo))
	}
	return bitScanForwardHi(b.hi)
}

//go:noinline
func bitScanForwardHi(hi uint64) Square {
	if hi == 0 {
		return NoSquare
	}
	return Square(64 + bits.TrailingZeros64(hi))
}

// BitScanReverse returns the highest set square, or NoSquare for an empty board.
func BitScanReverse(b Bitboard) Square {
	if b.hi != 0 {
		return Square(127 - bits.LeadingZeros64(b.hi))
	}
	return bitScanReverseLo(b.lo)
}

//go:noinline
func bitScanReverseLo(lo uint64) Square {
	if lo == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(lo))
}

// PopCountTable counts set bits with the nibble table. It agrees with
// Bitboard.PopCount and serves platforms without a fast popcount.
func PopCountTable(b Bitboard) int {
	n := 0
	for _, w := range [2]uint64{b.lo, b.hi} {
		for w != 0 {
			n += int(tables.nibblePop[w&0xf])
			w >>= 4
		}
	}
	return n
}

// IsSubset reports whether every square of a is also in b.
func IsSubset(a, b Bitboard) bool {
	return a.lo&^b.lo|a.hi&^b.hi == 0
}

// Overlaps reports whether a and b share at least one square.
func Overlaps(a, b Bitboard) bool {
	return a.lo&b.lo|a.hi&b.hi != 0
}

// AppendSquares appends the set squares of b to dst in ascending order,
// walking one byte at a time through the bit-position table.
func AppendSquares(dst []Square, b Bitboard) []Square {
	for base, w := range [2]uint64{b.lo, b.hi} {
		for shift := 0; w != 0; shift += 8 {
			v := uint8(w)
			for i := uint8(0); i < tables.bytePosN[v]; i++ {
				dst = append(dst, Square(base*64+shift+int(tables.bytePos[v][i])))
			}
			w >>= 8
		}
	}
	return dst
}
