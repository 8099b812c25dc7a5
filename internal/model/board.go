package model

import "fmt"

// BoardSize is the number of cells on the board
const BoardSize = 9

// NoCell is returned when no cell satisfies a lookup
const NoCell = -1

// Symbol is the marker a player places on a cell
type Symbol string

const (
	SymbolEmpty Symbol = ""
	SymbolX     Symbol = "X"
	SymbolO     Symbol = "O"
)

// ParseSymbol accepts x, X, o or O
func ParseSymbol(s string) (Symbol, error) {
	switch s {
	case "x", "X":
		return SymbolX, nil
	case "o", "O":
		return SymbolO, nil
	default:
		return SymbolEmpty, fmt.Errorf("%w: %q", ErrInvalidSymbol, s)
	}
}

// Opposite returns the complementary symbol, or empty for the empty symbol
func (s Symbol) Opposite() Symbol {
	switch s {
	case SymbolX:
		return SymbolO
	case SymbolO:
		return SymbolX
	default:
		return SymbolEmpty
	}
}

// IsPlayable returns true for X and O
func (s Symbol) IsPlayable() bool {
	return s == SymbolX || s == SymbolO
}

// Line is a triple of cell indices whose uniform occupation wins a round
type Line [3]int

// Lines are the 8 winning lines: rows, then columns, then diagonals
var Lines = [8]Line{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Contains returns true if the cell is part of the line
func (l Line) Contains(cell int) bool {
	return l[0] == cell || l[1] == cell || l[2] == cell
}

// Board is the 3x3 grid, indexed 0-8 row-major
type Board [BoardSize]Symbol

// ValidCell returns true if the index is within the board
func ValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

// Reset clears every cell
func (b *Board) Reset() {
	for i := range b {
		b[i] = SymbolEmpty
	}
}

// Get returns the symbol at the given cell, or empty if out of range
func (b *Board) Get(cell int) Symbol {
	if !ValidCell(cell) {
		return SymbolEmpty
	}
	return b[cell]
}

// Set writes a symbol into an empty cell.
// Writing out of range, into an occupied cell or with the empty symbol
// is a programming error and panics.
func (b *Board) Set(cell int, symbol Symbol) {
	if !ValidCell(cell) {
		panic(fmt.Errorf("%w: %d", ErrInvalidCell, cell))
	}
	if !symbol.IsPlayable() {
		panic(fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol))
	}
	if b[cell] != SymbolEmpty {
		panic(fmt.Errorf("%w: %d", ErrCellOccupied, cell))
	}
	b[cell] = symbol
}

// IsEmpty returns true if the cell is in range and empty
func (b *Board) IsEmpty(cell int) bool {
	return ValidCell(cell) && b[cell] == SymbolEmpty
}

// FindFirstEmpty returns the lowest empty index, or NoCell when the board is full
func (b *Board) FindFirstEmpty() int {
	for i, s := range b {
		if s == SymbolEmpty {
			return i
		}
	}
	return NoCell
}

// IsFull returns true if all cells are filled
func (b *Board) IsFull() bool {
	return b.FindFirstEmpty() == NoCell
}

// EmptyCells returns the empty indices in ascending order
func (b *Board) EmptyCells() []int {
	var cells []int
	for i, s := range b {
		if s == SymbolEmpty {
			cells = append(cells, i)
		}
	}
	return cells
}

// Count returns how many cells hold the symbol
func (b *Board) Count(symbol Symbol) int {
	count := 0
	for _, s := range b {
		if s == symbol {
			count++
		}
	}
	return count
}

// LineSymbols returns the contents of a line in the line's order
func (b *Board) LineSymbols(line Line) [3]Symbol {
	return [3]Symbol{b[line[0]], b[line[1]], b[line[2]]}
}
