package batch

import "github.com/fgantt/yse-sub003/internal/board"

// Vector kernels work on the raw 64-bit words of a batch, one register
// width per step: 2 words (one bitboard) at 128 bits, 4 at 256 and 8 at
// 512. Words left over after the last full step go through a scalar tail.
// Word i is a low word when i is even.
//
// The 256 and 512 bit kernels use archsimd when built with
// GOEXPERIMENT=simd on amd64 (vector_simd.go) and unrolled word loops
// otherwise (vector_unrolled.go).

// vec128 processes one bitboard per step.
type vec128 struct{}

func (vec128) and(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	for i := 0; i+2 <= len(d); i += 2 {
		d[i] = x[i] & y[i]
		d[i+1] = x[i+1] & y[i+1]
	}
}

func (vec128) or(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	for i := 0; i+2 <= len(d); i += 2 {
		d[i] = x[i] | y[i]
		d[i+1] = x[i+1] | y[i+1]
	}
}

func (vec128) xor(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	for i := 0; i+2 <= len(d); i += 2 {
		d[i] = x[i] ^ y[i]
		d[i+1] = x[i+1] ^ y[i+1]
	}
}

func (vec128) combine(a Batch) board.Bitboard {
	x := a.words()
	var lo, hi uint64
	for i := 0; i+2 <= len(x); i += 2 {
		lo |= x[i]
		hi |= x[i+1]
	}
	return board.FromUint128(hi, lo)
}
