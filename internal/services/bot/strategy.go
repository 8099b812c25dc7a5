package bot

import (
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// Strategy defines how a bot chooses its next cell
type Strategy interface {
	// ChooseCell selects an empty cell for mine, or model.NoCell if the board is full
	ChooseCell(board model.Board, mine model.Symbol) int
}

// Strategies returns every built-in strategy keyed by name
func Strategies(rnd random.Random) map[string]Strategy {
	return map[string]Strategy{
		model.BotStrategyLine:   NewLineStrategy(),
		model.BotStrategyRandom: NewRandomStrategy(rnd),
	}
}
