//go:build goexperiment.simd && amd64

// SIMD kernels for the 256 and 512 bit widths.
// Requires Go 1.26+ with GOEXPERIMENT=simd on AMD64 architecture.

package batch

import (
	"simd/archsimd"

	"github.com/fgantt/yse-sub003/internal/board"
)

// Number of uint64 words per register
const (
	simdWords256 = 4
	simdWords512 = 8
)

// vec256 processes two bitboards per step (AVX2).
type vec256 struct{}

func (vec256) and(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	i := 0
	for ; i+simdWords256 <= len(d); i += simdWords256 {
		v := archsimd.LoadUint64x4(x[i:])
		w := archsimd.LoadUint64x4(y[i:])
		archsimd.StoreUint64x4(d[i:], v.And(w))
	}
	for ; i < len(d); i++ {
		d[i] = x[i] & y[i]
	}
}

func (vec256) or(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	i := 0
	for ; i+simdWords256 <= len(d); i += simdWords256 {
		v := archsimd.LoadUint64x4(x[i:])
		w := archsimd.LoadUint64x4(y[i:])
		archsimd.StoreUint64x4(d[i:], v.Or(w))
	}
	for ; i < len(d); i++ {
		d[i] = x[i] | y[i]
	}
}

func (vec256) xor(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	i := 0
	for ; i+simdWords256 <= len(d); i += simdWords256 {
		v := archsimd.LoadUint64x4(x[i:])
		w := archsimd.LoadUint64x4(y[i:])
		archsimd.StoreUint64x4(d[i:], v.Xor(w))
	}
	for ; i < len(d); i++ {
		d[i] = x[i] ^ y[i]
	}
}

func (vec256) combine(a Batch) board.Bitboard {
	x := a.words()
	var lo, hi uint64
	i := 0
	if len(x) >= simdWords256 {
		acc := archsimd.LoadUint64x4(x[0:])
		for i = simdWords256; i+simdWords256 <= len(x); i += simdWords256 {
			acc = acc.Or(archsimd.LoadUint64x4(x[i:]))
		}
		var lanes [simdWords256]uint64
		archsimd.StoreUint64x4(lanes[:], acc)
		lo = lanes[0] | lanes[2]
		hi = lanes[1] | lanes[3]
	}
	for ; i+2 <= len(x); i += 2 {
		lo |= x[i]
		hi |= x[i+1]
	}
	return board.FromUint128(hi, lo)
}

// vec512 processes four bitboards per step (AVX-512F).
type vec512 struct{}

func (vec512) and(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	i := 0
	for ; i+simdWords512 <= len(d); i += simdWords512 {
		v := archsimd.LoadUint64x8(x[i:])
		w := archsimd.LoadUint64x8(y[i:])
		archsimd.StoreUint64x8(d[i:], v.And(w))
	}
	for ; i < len(d); i++ {
		d[i] = x[i] & y[i]
	}
}

func (vec512) or(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	i := 0
	for ; i+simdWords512 <= len(d); i += simdWords512 {
		v := archsimd.LoadUint64x8(x[i:])
		w := archsimd.LoadUint64x8(y[i:])
		archsimd.StoreUint64x8(d[i:], v.Or(w))
	}
	for ; i < len(d); i++ {
		d[i] = x[i] | y[i]
	}
}

func (vec512) xor(dst, a, c Batch) {
	d, x, y := dst.words(), a.words(), c.words()
	i := 0
	for ; i+simdWords512 <= len(d); i += simdWords512 {
		v := archsimd.LoadUint64x8(x[i:])
		w := archsimd.LoadUint64x8(y[i:])
		archsimd.StoreUint64x8(d[i:], v.Xor(w))
	}
	for ; i < len(d); i++ {
		d[i] = x[i] ^ y[i]
	}
}

func (vec512) combine(a Batch) board.Bitboard {
	x := a.words()
	var lo, hi uint64
	i := 0
	if len(x) >= simdWords512 {
		acc := archsimd.LoadUint64x8(x[0:])
		for i = simdWords512; i+simdWords512 <= len(x); i += simdWords512 {
			acc = acc.Or(archsimd.LoadUint64x8(x[i:]))
		}
		var lanes [simdWords512]uint64
		archsimd.StoreUint64x8(lanes[:], acc)
		for j := 0; j < simdWords512; j += 2 {
			lo |= lanes[j]
			hi |= lanes[j+1]
		}
	}
	for ; i+2 <= len(x); i += 2 {
		lo |= x[i]
		hi |= x[i+1]
	}
	return board.FromUint128(hi, lo)
}
