// Package attack answers sliding attack queries. It prefers the shared
// magic table and degrades to ray casting when the table is unavailable.
package attack

import (
	"sync"

	"github.com/fgantt/yse-sub003/internal/batch"
	"github.com/fgantt/yse-sub003/internal/board"
	"github.com/fgantt/yse-sub003/internal/magic"
	"github.com/fgantt/yse-sub003/internal/telemetry"
)

// Querier answers sliding attack queries for one worker. The table it
// reads is shared; the ray caster it falls back to is its own and is
// created on first use. A Querier is not safe for concurrent use.
type Querier struct {
	table    *magic.Table
	caster   *board.RayCaster
	counters *telemetry.Counters
}

// NewQuerier creates a querier over table, which may be nil or empty.
// Queries are counted in telemetry.Default.
func NewQuerier(table *magic.Table) *Querier {
	return &Querier{table: table, counters: telemetry.Default}
}

// WithCounters makes the querier record into c instead of telemetry.Default.
func (q *Querier) WithCounters(c *telemetry.Counters) *Querier {
	q.counters = c
	return q
}

// Table returns the table the querier reads.
func (q *Querier) Table() *magic.Table {
	return q.table
}

// SliderAttacks returns the squares attacked by a slider on sq. It never
// fails: without a table it ray-casts and records the fallback.
func (q *Querier) SliderAttacks(sq board.Square, s board.Slider, occupied board.Bitboard) board.Bitboard {
	if q.table.Available() {
		q.counters.RecordMagic()
		return q.table.Attacks(sq, s, occupied)
	}

	q.counters.RecordFallback()
	if q.caster == nil {
		q.caster = board.NewRayCaster()
	}
	return q.caster.Attacks(sq, s, occupied)
}

// Attacks returns the squares attacked by a sliding piece of type pt on sq.
// Dragon and horse use rook and bishop geometry. Panics if pt is not a
// sliding piece.
func (q *Querier) Attacks(sq board.Square, pt board.PieceType, occupied board.Bitboard) board.Bitboard {
	return q.SliderAttacks(sq, board.MustSlider(pt), occupied)
}

// Placement is a sliding piece on a square.
type Placement struct {
	Square board.Square
	Piece  board.PieceType
}

// AttacksInto writes the attacks of each placement into dst, which must
// have the same length as pieces.
func (q *Querier) AttacksInto(dst batch.Batch, pieces []Placement, occupied board.Bitboard) {
	if dst.Len() != len(pieces) {
		panic("attack: batch length mismatch")
	}
	for i, p := range pieces {
		dst.Set(i, q.Attacks(p.Square, p.Piece, occupied))
	}
}

// AttackMap returns every square attacked by at least one of the pieces.
func (q *Querier) AttackMap(pieces []Placement, occupied board.Bitboard) board.Bitboard {
	attacks := batch.New(len(pieces))
	q.AttacksInto(attacks, pieces, occupied)
	return batch.CombineAll(attacks)
}

// Attackers returns the placements whose attacks include target, as a
// bitboard of their squares.
func (q *Querier) Attackers(target board.Square, pieces []Placement, occupied board.Bitboard) board.Bitboard {
	attacks := batch.New(len(pieces))
	q.AttacksInto(attacks, pieces, occupied)

	targets := batch.New(len(pieces))
	for i := range pieces {
		targets.Set(i, board.SquareBB(target))
	}
	batch.And(attacks, attacks, targets)

	var from board.Bitboard
	for i, p := range pieces {
		if attacks.At(i).More() {
			from = from.Set(p.Square)
		}
	}
	return from
}

// pool hands out queriers over the process-wide table, one per goroutine
// at a time.
var pool = sync.Pool{
	New: func() any { return NewQuerier(magic.Shared()) },
}

// Attacks answers a query against the process-wide shared table, which is
// built on first use.
func Attacks(sq board.Square, pt board.PieceType, occupied board.Bitboard) board.Bitboard {
	q := pool.Get().(*Querier)
	defer pool.Put(q)
	return q.Attacks(sq, pt, occupied)
}
