package model_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-go/internal/model"
)

type BoardSuite struct {
	suite.Suite
	board model.Board
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func (s *BoardSuite) SetupTest() {
	s.board = model.Board{}
}

func (s *BoardSuite) TestFindFirstEmptyOnEmptyBoard() {
	s.Equal(0, s.board.FindFirstEmpty())
}

func (s *BoardSuite) TestFindFirstEmptyReturnsLowestIndex() {
	s.board.Set(0, model.SymbolX)
	s.board.Set(1, model.SymbolO)
	s.board.Set(3, model.SymbolX)

	s.Equal(2, s.board.FindFirstEmpty())
}

func (s *BoardSuite) TestFindFirstEmptyOnFullBoard() {
	for i := range model.BoardSize {
		s.board.Set(i, model.SymbolX)
	}

	s.Equal(model.NoCell, s.board.FindFirstEmpty())
	s.True(s.board.IsFull())
}

func (s *BoardSuite) TestFindFirstEmptyMatchesEveryFillPattern() {
	// Each of the 512 occupancy patterns
	for mask := range 1 << model.BoardSize {
		var b model.Board
		expected := model.NoCell
		for i := range model.BoardSize {
			if mask&(1<<i) != 0 {
				b.Set(i, model.SymbolO)
			} else if expected == model.NoCell {
				expected = i
			}
		}
		s.Equal(expected, b.FindFirstEmpty(), "mask %09b", mask)
	}
}

func (s *BoardSuite) TestResetClearsAllCells() {
	s.board.Set(4, model.SymbolX)
	s.board.Set(8, model.SymbolO)

	s.board.Reset()

	for i := range model.BoardSize {
		s.True(s.board.IsEmpty(i))
	}
}

func (s *BoardSuite) TestSetOccupiedCellPanicsAndKeepsContents() {
	s.board.Set(4, model.SymbolX)

	s.PanicsWithError("cell is already occupied: 4", func() {
		s.board.Set(4, model.SymbolO)
	})
	s.Equal(model.SymbolX, s.board.Get(4))
}

func (s *BoardSuite) TestSetOutOfRangePanics() {
	s.Panics(func() { s.board.Set(9, model.SymbolX) })
	s.Panics(func() { s.board.Set(-1, model.SymbolX) })
}

func (s *BoardSuite) TestSetEmptySymbolPanics() {
	s.Panics(func() { s.board.Set(0, model.SymbolEmpty) })
}

func (s *BoardSuite) TestLineSymbolsFollowsLineOrder() {
	s.board.Set(2, model.SymbolX)
	s.board.Set(6, model.SymbolO)

	s.Equal([3]model.Symbol{model.SymbolX, model.SymbolEmpty, model.SymbolO}, s.board.LineSymbols(model.Line{2, 4, 6}))
}

func (s *BoardSuite) TestLinesAreCanonical() {
	s.Equal([8]model.Line{
		{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
		{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
		{0, 4, 8}, {2, 4, 6},
	}, model.Lines)
}

func (s *BoardSuite) TestEmptyCellsAndCount() {
	s.board.Set(0, model.SymbolX)
	s.board.Set(5, model.SymbolX)
	s.board.Set(7, model.SymbolO)

	s.Equal([]int{1, 2, 3, 4, 6, 8}, s.board.EmptyCells())
	s.Equal(2, s.board.Count(model.SymbolX))
	s.Equal(1, s.board.Count(model.SymbolO))
}

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected model.Symbol
		wantErr  bool
	}{
		{input: "x", expected: model.SymbolX},
		{input: "X", expected: model.SymbolX},
		{input: "o", expected: model.SymbolO},
		{input: "O", expected: model.SymbolO},
		{input: "", wantErr: true},
		{input: "0", wantErr: true},
		{input: "xo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := model.ParseSymbol(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSymbol(%q) expected error", tt.input)
				}
				return
			}
			if err != nil || got != tt.expected {
				t.Errorf("ParseSymbol(%q) = %q, %v; want %q", tt.input, got, err, tt.expected)
			}
		})
	}
}

func TestSymbolOpposite(t *testing.T) {
	if model.SymbolX.Opposite() != model.SymbolO {
		t.Error("X should oppose O")
	}
	if model.SymbolO.Opposite() != model.SymbolX {
		t.Error("O should oppose X")
	}
	if model.SymbolEmpty.Opposite() != model.SymbolEmpty {
		t.Error("empty has no opposite")
	}
}

func TestPlayerStrategyLabel(t *testing.T) {
	tests := []struct {
		name     string
		player   model.Player
		expected string
	}{
		{"human", model.Player{DisplayName: model.PlayerOneName}, ""},
		{"computer line", model.Player{IsBot: true, BotStrategy: model.BotStrategyLine}, "Block or advance"},
		{"computer random", model.Player{IsBot: true, BotStrategy: model.BotStrategyRandom}, "Random"},
		{"computer unknown", model.Player{IsBot: true, BotStrategy: "custom"}, "custom"},
		{"computer without strategy", model.Player{IsBot: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.player.StrategyLabel(); got != tt.expected {
				t.Errorf("StrategyLabel() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, input := range []string{"1", "2"} {
		if _, err := model.ParseMode(input); err != nil {
			t.Errorf("ParseMode(%q) unexpected error: %v", input, err)
		}
	}
	for _, input := range []string{"0", "3", "", "one"} {
		if _, err := model.ParseMode(input); err == nil {
			t.Errorf("ParseMode(%q) expected error", input)
		}
	}
}
