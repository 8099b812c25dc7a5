package presenter

import "github.com/mcoot/tictactoe-go/internal/model"

// EventFunc adapts a function receiving model events into a Presenter
type EventFunc func(model.Event)

var _ Presenter = EventFunc(nil)

func (f EventFunc) RenderCellFilled(cell int, symbol model.Symbol) {
	f(model.CellFilledEvent(cell, symbol))
}

func (f EventFunc) RenderCellCleared(cell int) {
	f(model.CellClearedEvent(cell))
}

func (f EventFunc) HighlightLine(line model.Line) {
	f(model.LineHighlightedEvent(line))
}

func (f EventFunc) SetStatusText(text string) {
	f(model.StatusEvent(text))
}

func (f EventFunc) SetScoreText(player1, player2 int) {
	f(model.ScoresEvent(player1, player2))
}

func (f EventFunc) SetPlayerNames(player1, player2 string) {
	f(model.NamesEvent(player1, player2))
}

func (f EventFunc) ShowPhase(phase model.Phase) {
	f(model.PhaseEvent(phase))
}
