package batch

import "github.com/fgantt/yse-sub003/internal/board"

// scalarOps works one bitboard at a time through the Bitboard algebra.
type scalarOps struct{}

func (scalarOps) and(dst, a, c Batch) {
	for i := range dst.bbs {
		dst.bbs[i] = a.bbs[i].And(c.bbs[i])
	}
}

func (scalarOps) or(dst, a, c Batch) {
	for i := range dst.bbs {
		dst.bbs[i] = a.bbs[i].Or(c.bbs[i])
	}
}

func (scalarOps) xor(dst, a, c Batch) {
	for i := range dst.bbs {
		dst.bbs[i] = a.bbs[i].Xor(c.bbs[i])
	}
}

func (scalarOps) combine(a Batch) board.Bitboard {
	var acc board.Bitboard
	for _, bb := range a.bbs {
		acc = acc.Or(bb)
	}
	return acc
}
