package board

import (
	"fmt"
	"math/big"
	"math/bits"
	"strings"
)

// Bitboard is a 128-bit set of squares. Squares 0-63 live in lo,
// squares 64-80 in bits 0-16 of hi. Bits 81 and above are never
// consulted by board logic; mask with Full when that matters.
type Bitboard struct {
	lo, hi uint64
}

// hiBoardMask covers squares 64-80 in the high word.
const hiBoardMask = 1<<(NumSquares-64) - 1

// Special masks
var (
	Empty = Bitboard{}
	Full  = Bitboard{lo: ^uint64(0), hi: hiBoardMask}
)

// FromUint128 builds a bitboard from its high and low words.
func FromUint128(hi, lo uint64) Bitboard {
	return Bitboard{lo: lo, hi: hi}
}

// Lo returns the low 64 bits (squares 0-63).
func (b Bitboard) Lo() uint64 { return b.lo }

// Hi returns the high 64 bits (squares 64-80 in bits 0-16).
func (b Bitboard) Hi() uint64 { return b.hi }

// SquareBB returns a bitboard with only the given square set.
// NoSquare yields an empty bitboard.
func SquareBB(sq Square) Bitboard {
	return tables.squareBB[sq]
}

func (b Bitboard) And(o Bitboard) Bitboard    { return Bitboard{b.lo & o.lo, b.hi & o.hi} }
func (b Bitboard) Or(o Bitboard) Bitboard     { return Bitboard{b.lo | o.lo, b.hi | o.hi} }
func (b Bitboard) Xor(o Bitboard) Bitboard    { return Bitboard{b.lo ^ o.lo, b.hi ^ o.hi} }
func (b Bitboard) AndNot(o Bitboard) Bitboard { return Bitboard{b.lo &^ o.lo, b.hi &^ o.hi} }

// Not complements all 128 bits.
func (b Bitboard) Not() Bitboard { return Bitboard{^b.lo, ^b.hi} }

// Shl shifts the 128-bit value left by n bits.
func (b Bitboard) Shl(n uint) Bitboard {
	switch {
	case n == 0:
		return b
	case n >= 128:
		return Empty
	case n >= 64:
		return Bitboard{lo: 0, hi: b.lo << (n - 64)}
	default:
		return Bitboard{lo: b.lo << n, hi: b.hi<<n | b.lo>>(64-n)}
	}
}

// Shr shifts the 128-bit value right by n bits.
func (b Bitboard) Shr(n uint) Bitboard {
	switch {
	case n == 0:
		return b
	case n >= 128:
		return Empty
	case n >= 64:
		return Bitboard{lo: b.hi >> (n - 64), hi: 0}
	default:
		return Bitboard{lo: b.lo>>n | b.hi<<(64-n), hi: b.hi >> n}
	}
}

// Equal reports whether both bitboards hold the same 128 bits.
func (b Bitboard) Equal(o Bitboard) bool {
	return b == o
}

// Cmp compares the bitboards as unsigned 128-bit integers.
func (b Bitboard) Cmp(o Bitboard) int {
	switch {
	case b.hi < o.hi:
		return -1
	case b.hi > o.hi:
		return 1
	case b.lo < o.lo:
		return -1
	case b.lo > o.lo:
		return 1
	}
	return 0
}

// Less reports whether b < o as unsigned 128-bit integers.
func (b Bitboard) Less(o Bitboard) bool {
	return b.Cmp(o) < 0
}

// IsEmpty returns true if no bits are set.
func (b Bitboard) IsEmpty() bool {
	return b.lo|b.hi == 0
}

// More returns true if there are any bits set.
func (b Bitboard) More() bool {
	return b.lo|b.hi != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(b.lo) + bits.OnesCount64(b.hi)
}

// LSB returns the least significant set square.
// The caller must check IsEmpty first; an empty board yields NoSquare.
func (b Bitboard) LSB() Square {
	return BitScanForward(b)
}

// MSB returns the most significant set square.
// The caller must check IsEmpty first; an empty board yields NoSquare.
func (b Bitboard) MSB() Square {
	return BitScanReverse(b)
}

// PopLSB removes and returns the least significant set square.
func (b *Bitboard) PopLSB() Square {
	if b.lo != 0 {
		sq := Square(bits.TrailingZeros64(b.lo))
		b.lo &= b.lo - 1
		return sq
	}
	sq := bitScanForwardHi(b.hi)
	b.hi &= b.hi - 1
	return sq
}

// Set sets the bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b.Or(SquareBB(sq))
}

// Clear clears the bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b.AndNot(SquareBB(sq))
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return Overlaps(b, SquareBB(sq))
}

// ForEach calls the function for each set square.
func (b Bitboard) ForEach(f func(Square)) {
	for b.More() {
		f(b.PopLSB())
	}
}

// Squares returns a slice of all squares that are set.
func (b Bitboard) Squares() []Square {
	return AppendSquares(make([]Square, 0, b.PopCount()), b)
}

// BigInt returns the bitboard as a single unsigned integer.
func (b Bitboard) BigInt() *big.Int {
	v := new(big.Int).SetUint64(b.hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(b.lo))
}

// FromBigInt converts an unsigned integer below 2^128 back into a bitboard.
func FromBigInt(v *big.Int) (Bitboard, error) {
	if v.Sign() < 0 || v.BitLen() > 128 {
		return Empty, fmt.Errorf("bitboard out of range: %s", v)
	}
	lo := new(big.Int).And(v, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(v, 64)
	return Bitboard{lo: lo.Uint64(), hi: hi.Uint64()}, nil
}

// Hex returns the bitboard as a 128-bit hexadecimal integer.
func (b Bitboard) Hex() string {
	return fmt.Sprintf("0x%016x%016x", b.hi, b.lo)
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	sb.WriteString("  9 8 7 6 5 4 3 2 1\n")
	for row := 0; row < Rows; row++ {
		sb.WriteByte('a' + byte(row))
		sb.WriteByte(' ')
		for col := 0; col < Cols; col++ {
			if b.IsSet(NewSquare(row, col)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
