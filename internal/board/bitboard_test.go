package board

import (
	"math/big"
	"testing"
)

func TestSquareGeometry(t *testing.T) {
	sq := NewSquare(4, 4)
	if sq != 40 {
		t.Errorf("Expected center square 40, got %d", sq)
	}
	if sq.Row() != 4 || sq.Col() != 4 {
		t.Errorf("Expected (4,4), got (%d,%d)", sq.Row(), sq.Col())
	}
	if sq.String() != "5e" {
		t.Errorf("Expected 5e, got %s", sq)
	}

	parsed, err := ParseSquare("5e")
	if err != nil || parsed != sq {
		t.Errorf("ParseSquare(5e) = %v, %v", parsed, err)
	}

	for _, bad := range []string{"", "0a", "5j", "55", "5ee"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) should fail", bad)
		}
	}

	for s := Square(0); s < NoSquare; s++ {
		back, err := ParseSquare(s.String())
		if err != nil || back != s {
			t.Errorf("Square %d round trip via %s gave %d (%v)", s, s, back, err)
		}
	}
}

func TestBitboardAlgebra(t *testing.T) {
	a := SquareBB(3).Or(SquareBB(70))
	b := SquareBB(70).Or(SquareBB(80))

	if got := a.And(b); !got.Equal(SquareBB(70)) {
		t.Errorf("And: got %s", got.Hex())
	}
	if got := a.Or(b).PopCount(); got != 3 {
		t.Errorf("Or: expected 3 squares, got %d", got)
	}
	if got := a.Xor(b); !got.Equal(SquareBB(3).Or(SquareBB(80))) {
		t.Errorf("Xor: got %s", got.Hex())
	}
	if got := a.AndNot(b); !got.Equal(SquareBB(3)) {
		t.Errorf("AndNot: got %s", got.Hex())
	}
	if got := Empty.Not().And(Full); !got.Equal(Full) {
		t.Errorf("Not: got %s", got.Hex())
	}
	if Full.PopCount() != NumSquares {
		t.Errorf("Full should hold %d squares, got %d", NumSquares, Full.PopCount())
	}
}

func TestBitboardShift(t *testing.T) {
	b := SquareBB(63)
	if got := b.Shl(1); !got.Equal(SquareBB(64)) {
		t.Errorf("Shl across words: got %s", got.Hex())
	}
	if got := SquareBB(64).Shr(1); !got.Equal(SquareBB(63)) {
		t.Errorf("Shr across words: got %s", got.Hex())
	}
	if got := SquareBB(0).Shl(80); !got.Equal(SquareBB(80)) {
		t.Errorf("Shl by 80: got %s", got.Hex())
	}
	if got := SquareBB(80).Shr(80); !got.Equal(SquareBB(0)) {
		t.Errorf("Shr by 80: got %s", got.Hex())
	}
	if got := Full.Shl(128); !got.IsEmpty() {
		t.Errorf("Shl by 128 should be empty, got %s", got.Hex())
	}
	if got := Full.Shr(0); !got.Equal(Full) {
		t.Errorf("Shr by 0 should be identity")
	}
}

func TestBitboardOrdering(t *testing.T) {
	low := SquareBB(63)
	high := SquareBB(64)
	if !low.Less(high) || high.Less(low) {
		t.Errorf("Expected square 63 < square 64 numerically")
	}
	if low.Cmp(low) != 0 {
		t.Errorf("Cmp of equal bitboards should be 0")
	}
	if high.Cmp(low) != 1 {
		t.Errorf("Cmp(high, low) should be 1")
	}
}

func TestBitboardScan(t *testing.T) {
	b := SquareBB(5).Or(SquareBB(66)).Or(SquareBB(80))
	if b.LSB() != 5 {
		t.Errorf("LSB: expected 5, got %d", b.LSB())
	}
	if b.MSB() != 80 {
		t.Errorf("MSB: expected 80, got %d", b.MSB())
	}

	hiOnly := SquareBB(66)
	if hiOnly.LSB() != 66 || hiOnly.MSB() != 66 {
		t.Errorf("Scans of high-word square: %d %d", hiOnly.LSB(), hiOnly.MSB())
	}

	var order []Square
	for bb := b; !bb.IsEmpty(); {
		order = append(order, bb.PopLSB())
	}
	if len(order) != 3 || order[0] != 5 || order[1] != 66 || order[2] != 80 {
		t.Errorf("PopLSB order: %v", order)
	}

	squares := b.Squares()
	if len(squares) != 3 || squares[2] != 80 {
		t.Errorf("Squares: %v", squares)
	}

	var visited []Square
	b.ForEach(func(sq Square) { visited = append(visited, sq) })
	if len(visited) != 3 || visited[0] != 5 || visited[1] != 66 {
		t.Errorf("ForEach order: %v", visited)
	}
}

func TestBitboardBigInt(t *testing.T) {
	b := SquareBB(0).Or(SquareBB(64)).Or(SquareBB(80))
	v := b.BigInt()

	want := new(big.Int).Lsh(big.NewInt(1), 80)
	want.Or(want, new(big.Int).Lsh(big.NewInt(1), 64))
	want.Or(want, big.NewInt(1))
	if v.Cmp(want) != 0 {
		t.Errorf("BigInt: got %s, want %s", v, want)
	}

	back, err := FromBigInt(v)
	if err != nil {
		t.Fatalf("FromBigInt: %v", err)
	}
	if !back.Equal(b) {
		t.Errorf("BigInt round trip: got %s", back.Hex())
	}

	if _, err := FromBigInt(new(big.Int).Lsh(big.NewInt(1), 128)); err == nil {
		t.Error("FromBigInt should reject values of 2^128 and above")
	}
	if _, err := FromBigInt(big.NewInt(-1)); err == nil {
		t.Error("FromBigInt should reject negative values")
	}
}

func TestRankFileMasks(t *testing.T) {
	for i := 0; i < Rows; i++ {
		if RankMask(i).PopCount() != Cols {
			t.Errorf("Rank %d: expected %d squares", i, Cols)
		}
		if FileMask(i).PopCount() != Rows {
			t.Errorf("File %d: expected %d squares", i, Rows)
		}
		if !RankMask(i).And(FileMask(i)).Equal(SquareBB(NewSquare(i, i))) {
			t.Errorf("Rank %d and file %d should meet at one square", i, i)
		}
	}
	if EdgeMask().PopCount() != 32 {
		t.Errorf("Expected 32 edge squares, got %d", EdgeMask().PopCount())
	}
}

func TestPieceSliders(t *testing.T) {
	tests := []struct {
		pt   PieceType
		want Slider
	}{
		{Rook, SliderRook},
		{Dragon, SliderRook},
		{Bishop, SliderBishop},
		{Horse, SliderBishop},
		{Lance, NoSlider},
		{Gold, NoSlider},
		{King, NoSlider},
	}
	for _, tc := range tests {
		if got := tc.pt.Slider(); got != tc.want {
			t.Errorf("%v.Slider() = %v, want %v", tc.pt, got, tc.want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("MustSlider(Gold) should panic")
		}
	}()
	MustSlider(Gold)
}
