//go:build !goexperiment.simd || !amd64

// Unrolled word loops for the 256 and 512 bit kernels when the
// experimental SIMD package is not available.

package batch

import "github.com/fgantt/yse-sub003/internal/board"

// vec256 processes two bitboards per step.
type vec256 struct{}

func (vec256) and(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	i := 0
	for ; i+4 <= len(d); i += 4 {
		d[i] = x[i] & y[i]
		d[i+1] = x[i+1] & y[i+1]
		d[i+2] = x[i+2] & y[i+2]
		d[i+3] = x[i+3] & y[i+3]
	}
	for ; i < len(d); i++ {
		d[i] = x[i] & y[i]
	}
}

func (vec256) or(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	i := 0
	for ; i+4 <= len(d); i += 4 {
		d[i] = x[i] | y[i]
		d[i+1] = x[i+1] | y[i+1]
		d[i+2] = x[i+2] | y[i+2]
		d[i+3] = x[i+3] | y[i+3]
	}
	for ; i < len(d); i++ {
		d[i] = x[i] | y[i]
	}
}

func (vec256) xor(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	i := 0
	for ; i+4 <= len(d); i += 4 {
		d[i] = x[i] ^ y[i]
		d[i+1] = x[i+1] ^ y[i+1]
		d[i+2] = x[i+2] ^ y[i+2]
		d[i+3] = x[i+3] ^ y[i+3]
	}
	for ; i < len(d); i++ {
		d[i] = x[i] ^ y[i]
	}
}

func (vec256) combine(a Batch) board.Bitboard {
	x := a.words()
	var lo0, hi0, lo1, hi1 uint64
	i := 0
	for ; i+4 <= len(x); i += 4 {
		lo0 |= x[i]
		hi0 |= x[i+1]
		lo1 |= x[i+2]
		hi1 |= x[i+3]
	}
	for ; i+2 <= len(x); i += 2 {
		lo0 |= x[i]
		hi0 |= x[i+1]
	}
	return board.FromUint128(hi0|hi1, lo0|lo1)
}

// vec512 processes four bitboards per step.
type vec512 struct{}

func (vec512) and(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	i := 0
	for ; i+8 <= len(d); i += 8 {
		d[i] = x[i] & y[i]
		d[i+1] = x[i+1] & y[i+1]
		d[i+2] = x[i+2] & y[i+2]
		d[i+3] = x[i+3] & y[i+3]
		d[i+4] = x[i+4] & y[i+4]
		d[i+5] = x[i+5] & y[i+5]
		d[i+6] = x[i+6] & y[i+6]
		d[i+7] = x[i+7] & y[i+7]
	}
	for ; i < len(d); i++ {
		d[i] = x[i] & y[i]
	}
}

func (vec512) or(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	i := 0
	for ; i+8 <= len(d); i += 8 {
		d[i] = x[i] | y[i]
		d[i+1] = x[i+1] | y[i+1]
		d[i+2] = x[i+2] | y[i+2]
		d[i+3] = x[i+3] | y[i+3]
		d[i+4] = x[i+4] | y[i+4]
		d[i+5] = x[i+5] | y[i+5]
		d[i+6] = x[i+6] | y[i+6]
		d[i+7] = x[i+7] | y[i+7]
	}
	for ; i < len(d); i++ {
		d[i] = x[i] | y[i]
	}
}

func (vec512) xor(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	i := 0
	for ; i+8 <= len(d); i += 8 {
		d[i] = x[i] ^ y[i]
		d[i+1] = x[i+1] ^ y[i+1]
		d[i+2] = x[i+2] ^ y[i+2]
		d[i+3] = x[i+3] ^ y[i+3]
		d[i+4] = x[i+4] ^ y[i+4]
		d[i+5] = x[i+5] ^ y[i+5]
		d[i+6] = x[i+6] ^ y[i+6]
		d[i+7] = x[i+7] ^ y[i+7]
	}
	for ; i < len(d); i++ {
		d[i] = x[i] ^ y[i]
	}
}

func (vec512) combine(a Batch) board.Bitboard {
	x := a.words()
	var acc [8]uint64
	i := 0
	for ; i+8 <= len(x); i += 8 {
		acc[0] |= x[i]
		acc[1] |= x[i+1]
		acc[2] |= x[i+2]
		acc[3] |= x[i+3]
		acc[4] |= x[i+4]
		acc[5] |= x[i+5]
		acc[6] |= x[i+6]
		acc[7] |= x[i+7]
	}
	for ; i+2 <= len(x); i += 2 {
		acc[0] |= x[i]
		acc[1] |= x[i+1]
	}
	lo := acc[0] | acc[2] | acc[4] | acc[6]
	hi := acc[1] | acc[3] | acc[5] | acc[7]
	return board.FromUint128(hi, lo)
}
