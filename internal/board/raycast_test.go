package board

import "testing"

func TestRookCenterEmptyBoard(t *testing.T) {
	sq := NewSquare(4, 4)
	rc := NewRayCaster()

	attacks := rc.Attacks(sq, SliderRook, SquareBB(sq))
	if attacks.PopCount() != 16 {
		t.Errorf("Expected 16 attacked squares, got %d\n%s", attacks.PopCount(), attacks)
	}
	if attacks.IsSet(sq) {
		t.Error("Rook should not attack its own square")
	}
	want := RankMask(4).Or(FileMask(4)).Clear(sq)
	if !attacks.Equal(want) {
		t.Errorf("Expected rank and file of 5e\n%s", attacks)
	}
}

func TestRookStopsAtBlocker(t *testing.T) {
	sq := NewSquare(4, 4)
	blocker := NewSquare(6, 4)
	occ := SquareBB(sq).Set(blocker)

	attacks := NewRayCaster().Attacks(sq, SliderRook, occ)
	if !attacks.IsSet(blocker) {
		t.Error("Blocker square should be attacked")
	}
	for _, beyond := range []Square{NewSquare(7, 4), NewSquare(8, 4)} {
		if attacks.IsSet(beyond) {
			t.Errorf("Square %v beyond the blocker should not be attacked", beyond)
		}
	}
	if attacks.PopCount() != 14 {
		t.Errorf("Expected 14 attacked squares, got %d", attacks.PopCount())
	}
}

func TestBishopCornerEmptyBoard(t *testing.T) {
	attacks := NewRayCaster().Attacks(NewSquare(0, 0), SliderBishop, Empty)

	var want Bitboard
	for i := 1; i < Rows; i++ {
		want = want.Set(NewSquare(i, i))
	}
	if !attacks.Equal(want) {
		t.Errorf("Expected long diagonal, got\n%s", attacks)
	}
}

func TestPromotedSlidersShareGeometry(t *testing.T) {
	rc := NewRayCaster()
	occ := SquareBB(NewSquare(2, 4)).Set(NewSquare(6, 6))
	for sq := Square(0); sq < NoSquare; sq++ {
		if !rc.AttacksFor(sq, Dragon, occ).Equal(rc.AttacksFor(sq, Rook, occ)) {
			t.Fatalf("Dragon and rook differ on %v", sq)
		}
		if !rc.AttacksFor(sq, Horse, occ).Equal(rc.AttacksFor(sq, Bishop, occ)) {
			t.Fatalf("Horse and bishop differ on %v", sq)
		}
	}
}

func TestAttacksForPanicsOnNonSlider(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AttacksFor(Knight) should panic")
		}
	}()
	NewRayCaster().AttacksFor(NewSquare(4, 4), Knight, Empty)
}

func TestDestinationsMatchAttacks(t *testing.T) {
	rc := NewRayCaster()
	occ := SquareBB(NewSquare(1, 1)).Set(NewSquare(4, 7)).Set(NewSquare(8, 4))
	for _, s := range []Slider{SliderRook, SliderBishop} {
		for sq := Square(0); sq < NoSquare; sq++ {
			var bb Bitboard
			for _, to := range rc.Destinations(sq, s, occ) {
				bb = bb.Set(to)
			}
			if !bb.Equal(rc.Attacks(sq, s, occ)) {
				t.Fatalf("%v on %v: destinations and attacks differ", s, sq)
			}
		}
	}
}

func TestRelevantMask(t *testing.T) {
	tests := []struct {
		sq   Square
		s    Slider
		bits int
	}{
		{NewSquare(0, 0), SliderRook, 14},
		{NewSquare(4, 4), SliderRook, 12},
		{NewSquare(0, 4), SliderRook, 13},
		{NewSquare(4, 4), SliderBishop, 12},
		{NewSquare(0, 0), SliderBishop, 7},
		{NewSquare(0, 4), SliderBishop, 6},
	}
	for _, tc := range tests {
		mask := RelevantMask(tc.sq, tc.s)
		if mask.PopCount() != tc.bits {
			t.Errorf("%v mask on %v: expected %d bits, got %d\n%s", tc.s, tc.sq, tc.bits, mask.PopCount(), mask)
		}
		if mask.IsSet(tc.sq) {
			t.Errorf("%v mask on %v includes its own square", tc.s, tc.sq)
		}
	}

	for sq := Square(0); sq < NoSquare; sq++ {
		for _, s := range []Slider{SliderRook, SliderBishop} {
			mask := RelevantMask(sq, s)
			if !IsSubset(mask, SlidingAttacks(sq, s, Empty)) {
				t.Fatalf("%v mask on %v escapes its empty-board attacks", s, sq)
			}
		}
	}
}

func BenchmarkRayCaster(b *testing.B) {
	rc := NewRayCaster()
	occ := SquareBB(NewSquare(2, 4)).Set(NewSquare(6, 6)).Set(NewSquare(4, 1))
	sq := NewSquare(4, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rc.Attacks(sq, SliderRook, occ)
	}
}
