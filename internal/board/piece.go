package board

import "fmt"

// PieceType represents the type of a shogi piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Lance
	Knight
	Silver
	Gold
	Bishop
	Rook
	King
	ProPawn
	ProLance
	ProKnight
	ProSilver
	Horse  // promoted bishop
	Dragon // promoted rook
	NoPieceType
)

var pieceNames = [...]string{
	"Pawn", "Lance", "Knight", "Silver", "Gold", "Bishop", "Rook", "King",
	"ProPawn", "ProLance", "ProKnight", "ProSilver", "Horse", "Dragon",
}

// String returns the piece type name.
func (pt PieceType) String() string {
	if pt >= NoPieceType {
		return "None"
	}
	return pieceNames[pt]
}

// Slider identifies the sliding geometry a table or ray caster works with.
// Promoted forms share the geometry of their base piece.
type Slider uint8

const (
	SliderRook Slider = iota
	SliderBishop
	NoSlider
)

// NumSliders is the number of sliding geometries.
const NumSliders = 2

// String returns the slider name.
func (s Slider) String() string {
	switch s {
	case SliderRook:
		return "rook"
	case SliderBishop:
		return "bishop"
	default:
		return "none"
	}
}

// Slider returns the sliding geometry of the piece type, or NoSlider.
func (pt PieceType) Slider() Slider {
	switch pt {
	case Rook, Dragon:
		return SliderRook
	case Bishop, Horse:
		return SliderBishop
	default:
		return NoSlider
	}
}

// IsSlider returns true for rook, bishop, dragon and horse.
func (pt PieceType) IsSlider() bool {
	return pt.Slider() != NoSlider
}

// MustSlider returns the sliding geometry of pt and panics if pt is not a
// sliding piece. Asking a non-slider for sliding attacks is a caller bug.
func MustSlider(pt PieceType) Slider {
	s := pt.Slider()
	if s == NoSlider {
		panic(fmt.Sprintf("board: %v is not a sliding piece", pt))
	}
	return s
}
