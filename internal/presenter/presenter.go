// Package presenter defines the surface a match renders through, plus
// adapters for fanning out to several views and for turning calls into
// serialisable events.
package presenter

import "github.com/mcoot/tictactoe-go/internal/model"

// Presenter receives rendering updates from a match controller.
// Calls are made in order while the controller holds its lock, so
// implementations must not call back into the controller synchronously.
type Presenter interface {
	RenderCellFilled(cell int, symbol model.Symbol)
	RenderCellCleared(cell int)
	HighlightLine(line model.Line)
	SetStatusText(text string)
	SetScoreText(player1, player2 int)
	SetPlayerNames(player1, player2 string)
	ShowPhase(phase model.Phase)
}

// Nop discards every update
type Nop struct{}

var _ Presenter = Nop{}

func (Nop) RenderCellFilled(int, model.Symbol) {}
func (Nop) RenderCellCleared(int)              {}
func (Nop) HighlightLine(model.Line)           {}
func (Nop) SetStatusText(string)               {}
func (Nop) SetScoreText(int, int)              {}
func (Nop) SetPlayerNames(string, string)      {}
func (Nop) ShowPhase(model.Phase)              {}
