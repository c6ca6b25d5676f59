package magic

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/fgantt/yse-sub003/internal/board"
)

// checkEntry verifies the structural invariants of one entry: the mask is
// the relevant mask of its square, the fold is injective, and the slots
// it can address lie inside the attack array.
func checkEntry(t *Table, s board.Slider, sq board.Square) error {
	e := &t.entries[s][sq]
	if !e.Mask.Equal(board.RelevantMask(sq, s)) {
		return fmt.Errorf("%w: %v %v: unexpected mask %s", ErrValidation, s, sq, e.Mask.Hex())
	}
	if e.Fold >= 64 || e.Shift == 0 || e.Shift >= 64 {
		return fmt.Errorf("%w: %v %v: fold %d shift %d out of range", ErrValidation, s, sq, e.Fold, e.Shift)
	}
	hi := e.Mask.Hi()
	if (hi<<e.Fold)>>e.Fold != hi || (hi<<e.Fold)&e.Mask.Lo() != 0 {
		return fmt.Errorf("%w: %v %v: fold %d is not injective", ErrValidation, s, sq, e.Fold)
	}
	if uint64(e.Offset)+uint64(e.Size()) > uint64(len(t.attacks)) {
		return fmt.Errorf("%w: %v %v: slots [%d,+%d) exceed table of %d", ErrValidation, s, sq, e.Offset, e.Size(), len(t.attacks))
	}
	return nil
}

// validateSquare enumerates every subset of the square's mask and checks
// that its slot decodes to the ray-cast attack set.
func validateSquare(t *Table, s board.Slider, sq board.Square) error {
	if err := checkEntry(t, s, sq); err != nil {
		return err
	}

	e := &t.entries[s][sq]
	squares := e.Mask.Squares()
	rc := board.NewRayCaster()
	for i := 0; i < 1<<len(squares); i++ {
		occ := indexToOccupancy(i, squares)
		want := rc.Attacks(sq, s, occ)
		if got := t.attacks[e.Index(occ)]; !got.Equal(want) {
			return fmt.Errorf("%w: %v %v occupancy %s: got %s want %s",
				ErrValidation, s, sq, occ.Hex(), got.Hex(), want.Hex())
		}
	}
	return nil
}

// Validate exhaustively checks a table against the ray caster. An empty
// table is not valid.
func Validate(t *Table) error {
	if !t.Available() {
		return fmt.Errorf("%w: table is empty", ErrValidation)
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for s := board.Slider(0); s < board.NumSliders; s++ {
		for sq := board.Square(0); sq < board.NoSquare; sq++ {
			g.Go(func() error {
				return validateSquare(t, s, sq)
			})
		}
	}
	return g.Wait()
}
