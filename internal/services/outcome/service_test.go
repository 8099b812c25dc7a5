package outcome

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-go/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

// Helper to create a board from three rows, '.' meaning empty
func (s *ServiceSuite) createBoard(rows ...string) model.Board {
	var board model.Board
	for row, cells := range rows {
		for col, c := range cells {
			switch c {
			case 'X':
				board.Set(row*3+col, model.SymbolX)
			case 'O':
				board.Set(row*3+col, model.SymbolO)
			}
		}
	}
	return board
}

func (s *ServiceSuite) TestEmptyBoardIsOngoing() {
	result := s.service.Evaluate(model.Board{}, model.SymbolX)
	s.Equal(model.OutcomeOngoing, result.Kind)
	s.False(result.IsOver())
}

func (s *ServiceSuite) TestTopRowWin() {
	// Single writer places 0, 1, 2 in turn
	var board model.Board
	board.Set(0, model.SymbolX)
	s.Equal(model.OutcomeOngoing, s.service.Evaluate(board, model.SymbolX).Kind)
	board.Set(1, model.SymbolX)
	s.Equal(model.OutcomeOngoing, s.service.Evaluate(board, model.SymbolX).Kind)
	board.Set(2, model.SymbolX)

	result := s.service.Evaluate(board, model.SymbolX)
	s.Equal(model.Outcome{Kind: model.OutcomeWin, Symbol: model.SymbolX, Line: model.Line{0, 1, 2}}, result)
}

func (s *ServiceSuite) TestEveryLineWins() {
	for _, line := range model.Lines {
		var board model.Board
		for _, cell := range line {
			board.Set(cell, model.SymbolO)
		}

		result := s.service.Evaluate(board, model.SymbolO)
		s.Equal(model.OutcomeWin, result.Kind, "line %v", line)
		s.Equal(model.SymbolO, result.Symbol)
		s.Equal(line, result.Line)
	}
}

func (s *ServiceSuite) TestStalemate() {
	board := s.createBoard(
		"XOX",
		"XOO",
		"OXX",
	)

	result := s.service.Evaluate(board, model.SymbolX)
	s.Equal(model.OutcomeStalemate, result.Kind)
	s.True(result.IsOver())
}

func (s *ServiceSuite) TestWinOnFullBoardIsNotStalemate() {
	board := s.createBoard(
		"XOX",
		"OXO",
		"OXX",
	)

	result := s.service.Evaluate(board, model.SymbolX)
	s.Equal(model.OutcomeWin, result.Kind)
	s.Equal(model.Line{0, 4, 8}, result.Line)
}

func (s *ServiceSuite) TestPrefersLineOfLastMover() {
	// Not reachable in play, but the last mover's line is reported first
	board := s.createBoard(
		"OOO",
		"...",
		"XXX",
	)

	result := s.service.Evaluate(board, model.SymbolX)
	s.Equal(model.SymbolX, result.Symbol)
	s.Equal(model.Line{6, 7, 8}, result.Line)
}

func (s *ServiceSuite) TestReportsOtherWinWhenLastMoverHasNone() {
	board := s.createBoard(
		"OOO",
		"XX.",
		"...",
	)

	result := s.service.Evaluate(board, model.SymbolX)
	s.Equal(model.OutcomeWin, result.Kind)
	s.Equal(model.SymbolO, result.Symbol)
}

func (s *ServiceSuite) TestTwoInLineIsOngoing() {
	board := s.createBoard(
		"XX.",
		"OO.",
		"...",
	)

	s.Equal(model.OutcomeOngoing, s.service.Evaluate(board, model.SymbolO).Kind)
}

// Win if and only if some line is mono-symbol, over every reachable-shape board
func (s *ServiceSuite) TestWinIffMonoSymbolLine() {
	symbols := []model.Symbol{model.SymbolEmpty, model.SymbolX, model.SymbolO}
	total := 1
	for range model.BoardSize {
		total *= len(symbols)
	}

	for n := range total {
		var board model.Board
		code := n
		for i := range model.BoardSize {
			board[i] = symbols[code%3]
			code /= 3
		}

		expectWin := false
		for _, line := range model.Lines {
			c := board.LineSymbols(line)
			if c[0] != model.SymbolEmpty && c[0] == c[1] && c[1] == c[2] {
				expectWin = true
			}
		}

		result := s.service.Evaluate(board, model.SymbolX)
		if expectWin {
			s.Require().Equal(model.OutcomeWin, result.Kind, "board %v", board)
			c := board.LineSymbols(result.Line)
			s.Require().Equal(result.Symbol, c[0])
			s.Require().Equal(c[0], c[1])
			s.Require().Equal(c[1], c[2])
		} else {
			s.Require().NotEqual(model.OutcomeWin, result.Kind, "board %v", board)
		}
	}
}
