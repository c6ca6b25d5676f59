// Package magic implements magic bitboards for the sliding pieces of a
// 9x9 board: per-square perfect-hash descriptors over a shared attack
// array, their randomized construction, validation and persistence.
package magic

import (
	"errors"

	"github.com/google/uuid"

	"github.com/fgantt/yse-sub003/internal/board"
)

var (
	// ErrNoTable is returned when no usable table exists and generation is disallowed.
	ErrNoTable = errors.New("magic: no precomputed table")
	// ErrRetryBudget is returned when the magic search gives up on a square.
	ErrRetryBudget = errors.New("magic: retry budget exhausted")
	// ErrValidation is returned when a table decodes a wrong attack set.
	ErrValidation = errors.New("magic: table validation failed")
	// ErrCorrupt is returned when a serialized table cannot be decoded.
	ErrCorrupt = errors.New("magic: corrupt table data")
	// ErrAlreadyInitialized is returned by a second explicit initialization.
	ErrAlreadyInitialized = errors.New("magic: table already initialized")
)

// Entry holds the perfect-hash descriptor of one square for one slider.
//
// The masked occupancy is folded into a 64-bit key, lo | hi<<Fold, where
// Fold is chosen so the two halves of Mask never overlap. The key is then
// hashed as key*Magic >> Shift and offset into the shared attack array.
type Entry struct {
	Mask   board.Bitboard // Relevant occupancy mask (excludes edges)
	Magic  uint64         // Magic multiplier
	Fold   uint8          // Left shift applied to the high word
	Shift  uint8          // Bits to shift right
	Offset uint32         // Index into attack table
}

// fold maps an occupancy already restricted to the mask onto its key.
func (e *Entry) fold(masked board.Bitboard) uint64 {
	return masked.Lo() | masked.Hi()<<e.Fold
}

// Index returns the attack array slot for an occupancy.
func (e *Entry) Index(occupied board.Bitboard) uint32 {
	key := e.fold(occupied.And(e.Mask))
	return e.Offset + uint32((key*e.Magic)>>e.Shift)
}

// Size returns the number of attack slots the entry owns.
func (e *Entry) Size() int {
	return 1 << (64 - e.Shift)
}

// Table is an immutable set of magic entries for both sliders plus the
// attack array they index. Once built it is shared read-only.
type Table struct {
	ID   uuid.UUID // Stamped at generation, preserved by persistence
	Seed uint64    // Seed the search ran with

	entries [board.NumSliders][board.NumSquares]Entry
	attacks []board.Bitboard
}

// Empty returns a table with no data. Queries against it degrade to ray casting.
func Empty() *Table {
	return &Table{}
}

// Available reports whether the table can answer lookups.
func (t *Table) Available() bool {
	return t != nil && len(t.attacks) > 0
}

// Entry returns the descriptor of a square for a slider.
func (t *Table) Entry(s board.Slider, sq board.Square) Entry {
	return t.entries[s][sq]
}

// Len returns the number of attack slots.
func (t *Table) Len() int {
	return len(t.attacks)
}

// SizeBytes returns the memory held by the attack array.
func (t *Table) SizeBytes() uint64 {
	return uint64(len(t.attacks)) * 16
}

// Attacks returns the attack set of a slider on sq. The table must be Available.
func (t *Table) Attacks(sq board.Square, s board.Slider, occupied board.Bitboard) board.Bitboard {
	return t.attacks[t.entries[s][sq].Index(occupied)]
}

// AttacksFor is Attacks keyed by piece type. Dragon and horse reuse the
// rook and bishop entries. Panics if pt is not a sliding piece.
func (t *Table) AttacksFor(sq board.Square, pt board.PieceType, occupied board.Bitboard) board.Bitboard {
	return t.Attacks(sq, board.MustSlider(pt), occupied)
}

// RookAttacks returns rook attacks using magic bitboards.
func (t *Table) RookAttacks(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return t.Attacks(sq, board.SliderRook, occupied)
}

// BishopAttacks returns bishop attacks using magic bitboards.
func (t *Table) BishopAttacks(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return t.Attacks(sq, board.SliderBishop, occupied)
}

// Equal reports whether two tables hold identical entries and attacks.
func (t *Table) Equal(o *Table) bool {
	if t.ID != o.ID || t.Seed != o.Seed || t.entries != o.entries || len(t.attacks) != len(o.attacks) {
		return false
	}
	for i := range t.attacks {
		if t.attacks[i] != o.attacks[i] {
			return false
		}
	}
	return true
}
