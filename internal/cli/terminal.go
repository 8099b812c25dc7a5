package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/presenter"
)

// TerminalPresenter keeps a view of a match and reprints it to a terminal
// whenever the status line changes
type TerminalPresenter struct {
	mu        sync.Mutex
	w         io.Writer
	board     model.Board
	highlight []int
	names     [2]string
	scores    [2]int
	phase     model.Phase
}

var _ presenter.Presenter = (*TerminalPresenter)(nil)

// NewTerminalPresenter creates a presenter writing to w
func NewTerminalPresenter(w io.Writer) *TerminalPresenter {
	return &TerminalPresenter{w: w}
}

// RenderCellFilled records a move for the next reprint
func (t *TerminalPresenter) RenderCellFilled(cell int, symbol model.Symbol) {
	if !model.ValidCell(cell) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.board[cell] = symbol
}

// RenderCellCleared empties a cell and drops any win highlight
func (t *TerminalPresenter) RenderCellCleared(cell int) {
	if !model.ValidCell(cell) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.board[cell] = model.SymbolEmpty
	t.highlight = nil
}

// HighlightLine marks the winning cells with brackets
func (t *TerminalPresenter) HighlightLine(line model.Line) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.highlight = line[:]
}

// SetScoreText updates the score lines
func (t *TerminalPresenter) SetScoreText(player1, player2 int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scores = [2]int{player1, player2}
}

// SetPlayerNames updates the seat labels
func (t *TerminalPresenter) SetPlayerNames(player1, player2 string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.names = [2]string{player1, player2}
}

// ShowPhase decides whether the board is part of the next reprint
func (t *TerminalPresenter) ShowPhase(phase model.Phase) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phase = phase
}

// SetStatusText is the last update of every transition, so the view is
// printed here
func (t *TerminalPresenter) SetStatusText(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %d   %s: %d\n", t.names[0], t.scores[0], t.names[1], t.scores[1])
	if t.phase == model.PhaseRoundActive || t.phase == model.PhaseRoundEnding {
		b.WriteString("\n")
		b.WriteString(FormatBoard(t.board, t.highlight))
		b.WriteString("\n")
	}
	b.WriteString(text + "\n")
	if prompt := promptFor(t.phase); prompt != "" {
		b.WriteString(prompt + "\n")
	}
	_, _ = io.WriteString(t.w, b.String())
}

func promptFor(phase model.Phase) string {
	switch phase {
	case model.PhaseAwaitingMode:
		return "Enter 1 or 2 for the number of players (q to quit)"
	case model.PhaseAwaitingSymbol:
		return "Enter x or o for Player 1 (r to reset, q to quit)"
	case model.PhaseRoundActive:
		return "Enter a cell 0-8 (r to reset, q to quit)"
	default:
		return ""
	}
}
