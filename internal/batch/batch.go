// Package batch applies bitwise operations to fixed-size batches of
// bitboards, using the widest vector width the CPU supports.
package batch

import (
	"unsafe"

	"github.com/fgantt/yse-sub003/internal/board"
)

// Batch is a fixed-length sequence of bitboards whose first element sits
// on a cache line boundary.
type Batch struct {
	bbs []board.Bitboard
}

// New allocates a zeroed batch of n bitboards.
func New(n int) Batch {
	return Batch{bbs: board.AlignedSlice[board.Bitboard](n)}
}

// FromSlice copies bbs into a new batch.
func FromSlice(bbs []board.Bitboard) Batch {
	b := New(len(bbs))
	copy(b.bbs, bbs)
	return b
}

// Len returns the number of bitboards in the batch.
func (b Batch) Len() int {
	return len(b.bbs)
}

// At returns the i-th bitboard.
func (b Batch) At(i int) board.Bitboard {
	return b.bbs[i]
}

// Set replaces the i-th bitboard.
func (b Batch) Set(i int, bb board.Bitboard) {
	b.bbs[i] = bb
}

// Values returns a copy of the bitboards.
func (b Batch) Values() []board.Bitboard {
	return append([]board.Bitboard(nil), b.bbs...)
}

// Clone returns an independent copy of the batch.
func (b Batch) Clone() Batch {
	return FromSlice(b.bbs)
}

// Equal reports whether both batches hold the same bitboards.
func (b Batch) Equal(o Batch) bool {
	if len(b.bbs) != len(o.bbs) {
		return false
	}
	for i := range b.bbs {
		if b.bbs[i] != o.bbs[i] {
			return false
		}
	}
	return true
}

// words views the batch as its 64-bit words: lo, hi, lo, hi, ...
func (b Batch) words() []uint64 {
	if len(b.bbs) == 0 {
		return nil
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(unsafe.SliceData(b.bbs))), 2*len(b.bbs))
}

func checkLen(dst, a, c Batch) {
	if dst.Len() != a.Len() || a.Len() != c.Len() {
		panic("batch: length mismatch")
	}
}

// And stores a[i] & c[i] into dst[i] using the active kernel.
func And(dst, a, c Batch) {
	Active().And(dst, a, c)
}

// Or stores a[i] | c[i] into dst[i] using the active kernel.
func Or(dst, a, c Batch) {
	Active().Or(dst, a, c)
}

// Xor stores a[i] ^ c[i] into dst[i] using the active kernel.
func Xor(dst, a, c Batch) {
	Active().Xor(dst, a, c)
}

// CombineAll returns the union of every bitboard in a.
func CombineAll(a Batch) board.Bitboard {
	return Active().CombineAll(a)
}
