package board

// direction is a (row, col) step.
type direction struct {
	dr, dc int
}

var sliderDirections = [NumSliders][4]direction{
	SliderRook:   {{-1, 0}, {1, 0}, {0, -1}, {0, 1}},
	SliderBishop: {{-1, -1}, {-1, 1}, {1, -1}, {1, 1}},
}

// maxRaySquares bounds the destinations of a single slider: at most 8
// squares along each of two lines.
const maxRaySquares = 2 * (Rows - 1)

// RayCaster computes sliding attacks by stepping along each ray.
// It keeps a reusable destination buffer and is not safe for concurrent
// use: give each worker its own instance.
type RayCaster struct {
	dests [maxRaySquares]Square
	n     int
}

// NewRayCaster creates a ray caster.
func NewRayCaster() *RayCaster {
	return &RayCaster{}
}

// walk fills the destination buffer for a slider on sq.
// Each ray stops at the board edge or at the first occupied square,
// which is included as a potential capture.
func (rc *RayCaster) walk(sq Square, s Slider, occupied Bitboard) {
	rc.n = 0
	row, col := sq.Row(), sq.Col()
	for _, d := range sliderDirections[s] {
		for r, c := row+d.dr, col+d.dc; onBoard(r, c); r, c = r+d.dr, c+d.dc {
			to := NewSquare(r, c)
			rc.dests[rc.n] = to
			rc.n++
			if occupied.IsSet(to) {
				break
			}
		}
	}
}

// Attacks returns the squares attacked by a slider on sq.
func (rc *RayCaster) Attacks(sq Square, s Slider, occupied Bitboard) Bitboard {
	rc.walk(sq, s, occupied)
	var attacks Bitboard
	for _, to := range rc.dests[:rc.n] {
		attacks = attacks.Or(SquareBB(to))
	}
	return attacks
}

// AttacksFor is Attacks keyed by piece type. Promoted sliders use their
// base geometry. Panics if pt is not a sliding piece.
func (rc *RayCaster) AttacksFor(sq Square, pt PieceType, occupied Bitboard) Bitboard {
	return rc.Attacks(sq, MustSlider(pt), occupied)
}

// Destinations returns the attacked squares in ray order. The slice is
// owned by the ray caster and valid until its next call.
func (rc *RayCaster) Destinations(sq Square, s Slider, occupied Bitboard) []Square {
	rc.walk(sq, s, occupied)
	return rc.dests[:rc.n]
}

// SlidingAttacks computes sliding attacks with a throwaway ray caster.
// Used by table construction and tests.
func SlidingAttacks(sq Square, s Slider, occupied Bitboard) Bitboard {
	var rc RayCaster
	return rc.Attacks(sq, s, occupied)
}

// RelevantMask returns the squares whose occupancy can change the attacks
// of a slider on sq: every ray square except the last one before the edge.
func RelevantMask(sq Square, s Slider) Bitboard {
	var mask Bitboard
	row, col := sq.Row(), sq.Col()
	for _, d := range sliderDirections[s] {
		for r, c := row+d.dr, col+d.dc; onBoard(r+d.dr, c+d.dc); r, c = r+d.dr, c+d.dc {
			mask = mask.Set(NewSquare(r, c))
		}
	}
	return mask
}
