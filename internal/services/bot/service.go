package bot

import (
	"log/slog"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Opponent is an automated player bound to one symbol
type Opponent struct {
	Symbol   model.Symbol
	Strategy Strategy
	name     string
}

// TakeTurn chooses a cell with the strategy and writes the opponent's symbol
// into it. Returns the cell played, or model.NoCell if the board is full.
func (o *Opponent) TakeTurn(board *model.Board) int {
	cell := o.Strategy.ChooseCell(*board, o.Symbol)
	if cell == model.NoCell {
		return model.NoCell
	}
	board.Set(cell, o.Symbol)
	return cell
}

// StrategyName returns the name of the strategy the opponent was built with
func (o *Opponent) StrategyName() string {
	return o.name
}

// Service builds automated opponents from the registered strategies
type Service struct {
	strategies      map[string]Strategy
	defaultStrategy string
	logger          *slog.Logger
}

// NewService creates a new bot Service. defaultStrategy is used when an
// unknown strategy is requested.
func NewService(strategies map[string]Strategy, defaultStrategy string, logger *slog.Logger) *Service {
	return &Service{
		strategies:      strategies,
		defaultStrategy: defaultStrategy,
		logger:          logger.With(slog.String("component", "bot-service")),
	}
}

// NewOpponent binds the named strategy to a symbol, falling back to the
// default strategy and then to the line strategy
func (s *Service) NewOpponent(symbol model.Symbol, strategy string) *Opponent {
	name := strategy
	st, ok := s.strategies[name]
	if !ok {
		s.logger.Warn("unknown bot strategy, using default",
			slog.String("strategy", strategy),
			slog.String("default", s.defaultStrategy),
		)
		name = s.defaultStrategy
		st, ok = s.strategies[name]
	}
	if !ok {
		name = model.BotStrategyLine
		st = NewLineStrategy()
	}
	return &Opponent{Symbol: symbol, Strategy: st, name: name}
}

// DefaultStrategy returns the strategy used when none is requested
func (s *Service) DefaultStrategy() string {
	return s.defaultStrategy
}

// HasStrategy reports whether a strategy is registered under name
func (s *Service) HasStrategy(name string) bool {
	_, ok := s.strategies[name]
	return ok
}
