package bot

import (
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// RandomStrategy picks a random empty cell
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseCell picks uniformly among the empty cells
func (s *RandomStrategy) ChooseCell(board model.Board, _ model.Symbol) int {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return model.NoCell
	}
	return random.Pick(s.random, empty)
}
