package bot

import "github.com/mcoot/tictactoe-go/internal/model"

// LineStrategy blocks an immediate opposing win, otherwise advances its
// densest open line. It looks one move ahead and is beatable.
type LineStrategy struct{}

// NewLineStrategy creates a new LineStrategy
func NewLineStrategy() *LineStrategy {
	return &LineStrategy{}
}

// ChooseCell blocks when the opponent is one move from winning and mine is not
func (s *LineStrategy) ChooseCell(board model.Board, mine model.Symbol) int {
	myBest := BestMove(board, mine)
	theirBest := BestMove(board, mine.Opposite())

	if theirBest.MovesLeft == 0 && myBest.MovesLeft > 0 {
		return theirBest.Cell
	}
	return myBest.Cell
}

// BestMove finds the line with the most cells already holding s among the
// lines holding no opposing symbol, and proposes its first empty cell.
// Ties keep the earliest line. With no such line it falls back to the
// lowest empty cell with two moves left.
func BestMove(board model.Board, s model.Symbol) model.BestMove {
	opposing := s.Opposite()
	bestDensity := -1
	bestCell := model.NoCell

	for _, line := range model.Lines {
		cells := board.LineSymbols(line)
		density := 0
		firstEmpty := model.NoCell
		blocked := false
		for i, c := range cells {
			switch c {
			case opposing:
				blocked = true
			case s:
				density++
			case model.SymbolEmpty:
				if firstEmpty == model.NoCell {
					firstEmpty = line[i]
				}
			}
		}
		if blocked || firstEmpty == model.NoCell {
			continue
		}
		if density > bestDensity {
			bestDensity = density
			bestCell = firstEmpty
		}
	}

	if bestDensity < 0 {
		return model.BestMove{Cell: board.FindFirstEmpty(), MovesLeft: 2}
	}
	return model.BestMove{Cell: bestCell, MovesLeft: 2 - bestDensity}
}
