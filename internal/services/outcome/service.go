package outcome

import "github.com/mcoot/tictactoe-go/internal/model"

// Service evaluates boards for a win or a stalemate
type Service struct{}

// New creates a new outcome Service
func New() *Service {
	return &Service{}
}

// Evaluate returns the outcome of the board after last moved
func (s *Service) Evaluate(board model.Board, last model.Symbol) model.Outcome {
	return Evaluate(board, last)
}

// Evaluate reports a win if any line holds three equal non-empty symbols,
// a stalemate if no line is won and the board is full, and ongoing otherwise.
// Lines completed by last are reported in preference to any other.
func Evaluate(board model.Board, last model.Symbol) model.Outcome {
	var other *model.Outcome
	for _, line := range model.Lines {
		winner, ok := lineWinner(&board, line)
		if !ok {
			continue
		}
		result := model.Outcome{Kind: model.OutcomeWin, Symbol: winner, Line: line}
		if winner == last {
			return result
		}
		if other == nil {
			other = &result
		}
	}
	if other != nil {
		return *other
	}

	if board.FindFirstEmpty() == model.NoCell {
		return model.Outcome{Kind: model.OutcomeStalemate}
	}
	return model.Outcome{Kind: model.OutcomeOngoing}
}

func lineWinner(board *model.Board, line model.Line) (model.Symbol, bool) {
	cells := board.LineSymbols(line)
	if cells[0] == model.SymbolEmpty {
		return model.SymbolEmpty, false
	}
	if cells[0] != cells[1] || cells[1] != cells[2] {
		return model.SymbolEmpty, false
	}
	return cells[0], true
}
