// Package board implements the 9x9 board geometry and 128-bit bitboards
// shared by the attack generators.
package board

import "fmt"

// Board dimensions.
const (
	Rows       = 9
	Cols       = 9
	NumSquares = Rows * Cols
)

// Square represents a square on the 9x9 board (0-80).
// Row-major: square = row*9 + col, row 0 is the top rank ("a"),
// col 0 is the leftmost file (file 9 in shogi notation).
type Square uint8

// NoSquare marks the absence of a square.
const NoSquare Square = NumSquares

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) Square {
	return Square(row*Cols + col)
}

// Row returns the row of the square (0-8).
func (sq Square) Row() int {
	return int(sq) / Cols
}

// Col returns the column of the square (0-8).
func (sq Square) Col() int {
	return int(sq) % Cols
}

// IsValid returns true if the square is on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the shogi coordinate of the square, file digit then
// rank letter (e.g. "5e" for the center).
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", '9'-byte(sq.Col()), 'a'+byte(sq.Row()))
}

// ParseSquare parses a shogi coordinate (e.g. "5e") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	col := int('9' - s[0])
	row := int(s[1] - 'a')

	if col < 0 || col >= Cols || row < 0 || row >= Rows {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(row, col), nil
}

// onBoard reports whether (row, col) lies on the board.
func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}
