package board

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// lineSize is the cache line size in the units unsafe.Sizeof reports.
const lineSize = unsafe.Sizeof(cpu.CacheLinePad{})

// constTables holds the lookup tables used by the scalar primitives and
// the ray caster. Each table is padded to a whole number of cache lines,
// so with the struct itself line-aligned every table starts on a line.
type constTables struct {
	nibblePop [16]uint8
	_         [(lineSize - unsafe.Sizeof([16]uint8{})%lineSize) % lineSize]byte

	// bytePos[v] lists the set bit positions of v; bytePosN[v] is their count.
	bytePos  [256][8]uint8
	_        [(lineSize - unsafe.Sizeof([256][8]uint8{})%lineSize) % lineSize]byte
	bytePosN [256]uint8
	_        [(lineSize - unsafe.Sizeof([256]uint8{})%lineSize) % lineSize]byte

	squareBB [NumSquares + 1]Bitboard
	_        [(lineSize - unsafe.Sizeof([NumSquares + 1]Bitboard{})%lineSize) % lineSize]byte

	rankMask [Rows]Bitboard
	_        [(lineSize - unsafe.Sizeof([Rows]Bitboard{})%lineSize) % lineSize]byte
	fileMask [Cols]Bitboard
	_        [(lineSize - unsafe.Sizeof([Cols]Bitboard{})%lineSize) % lineSize]byte
	edgeMask Bitboard
}

var tables = newConstTables()

func newConstTables() *constTables {
	t := AlignedNew[constTables]()

	for v := 0; v < 16; v++ {
		t.nibblePop[v] = uint8(v&1 + v>>1&1 + v>>2&1 + v>>3&1)
	}

	for v := 0; v < 256; v++ {
		n := uint8(0)
		for bit := uint8(0); bit < 8; bit++ {
			if v&(1<<bit) != 0 {
				t.bytePos[v][n] = bit
				n++
			}
		}
		t.bytePosN[v] = n
	}

	for sq := 0; sq < NumSquares; sq++ {
		if sq < 64 {
			t.squareBB[sq] = Bitboard{lo: 1 << sq}
		} else {
			t.squareBB[sq] = Bitboard{hi: 1 << (sq - 64)}
		}
	}

	for sq := Square(0); sq < NoSquare; sq++ {
		bb := t.squareBB[sq]
		t.rankMask[sq.Row()] = t.rankMask[sq.Row()].Or(bb)
		t.fileMask[sq.Col()] = t.fileMask[sq.Col()].Or(bb)
	}

	t.edgeMask = t.rankMask[0].Or(t.rankMask[Rows-1]).Or(t.fileMask[0]).Or(t.fileMask[Cols-1])

	return t
}

// RankMask returns the squares of the given row (0-8).
func RankMask(row int) Bitboard {
	return tables.rankMask[row]
}

// FileMask returns the squares of the given column (0-8).
func FileMask(col int) Bitboard {
	return tables.fileMask[col]
}

// EdgeMask returns the squares on the outer ring of the board.
func EdgeMask() Bitboard {
	return tables.edgeMask
}
