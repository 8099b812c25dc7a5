package sse

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/a-h/templ"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/presenter"
	"github.com/mcoot/tictactoe-go/internal/web/templates/components"
	"github.com/mcoot/tictactoe-go/internal/web/templates/pages"
)

// HubPresenter turns controller updates into out-of-band HTML fragments
// broadcast to every browser watching a match
type HubPresenter struct {
	hub     *Hub
	matchID model.MatchID
	logger  *slog.Logger

	mu          sync.Mutex
	board       model.Board
	highlight   model.Line
	highlighted bool
	phase       model.Phase
}

var _ presenter.Presenter = (*HubPresenter)(nil)

// NewHubPresenter creates a presenter broadcasting to hub
func NewHubPresenter(hub *Hub, matchID model.MatchID, logger *slog.Logger) *HubPresenter {
	return &HubPresenter{
		hub:     hub,
		matchID: matchID,
		logger:  logger.With(slog.String("component", "sse-presenter"), slog.String("match_id", string(matchID))),
	}
}

// Hub returns the hub this presenter broadcasts to
func (p *HubPresenter) Hub() *Hub {
	return p.hub
}

// RenderCellFilled broadcasts the filled cell fragment
func (p *HubPresenter) RenderCellFilled(cell int, symbol model.Symbol) {
	if !model.ValidCell(cell) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.board[cell] = symbol
	p.broadcast(pages.EventCellUpdate, p.cellFragment(cell))
}

// RenderCellCleared broadcasts the empty cell, clearing the highlight if the
// cell was part of it
func (p *HubPresenter) RenderCellCleared(cell int) {
	if !model.ValidCell(cell) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.board[cell] = model.SymbolEmpty
	if p.highlighted && p.highlight.Contains(cell) {
		p.highlighted = false
	}
	p.broadcast(pages.EventCellUpdate, p.cellFragment(cell))
}

// HighlightLine rebroadcasts the three winning cells with the win class
func (p *HubPresenter) HighlightLine(line model.Line) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.highlight = line
	p.highlighted = true
	var b strings.Builder
	for _, cell := range line {
		b.WriteString(p.cellFragment(cell))
	}
	p.broadcast(pages.EventCellUpdate, b.String())
}

// SetStatusText broadcasts the status fragment
func (p *HubPresenter) SetStatusText(text string) {
	p.broadcast(pages.EventStatusUpdate, WrapForOOBSwap(components.StatusID, p.render(components.Status(text))))
}

// SetScoreText broadcasts the scores fragment
func (p *HubPresenter) SetScoreText(player1, player2 int) {
	p.broadcast(pages.EventScoresUpdate, WrapForOOBSwap(components.ScoresID, p.render(components.Scores(player1, player2))))
}

// SetPlayerNames broadcasts the names fragment
func (p *HubPresenter) SetPlayerNames(player1, player2 string) {
	p.broadcast(pages.EventNamesUpdate, WrapForOOBSwap(components.NamesID, p.render(components.Names(player1, player2))))
}

// ShowPhase asks pages to reload when the phase changes, since each phase
// has a different layout
func (p *HubPresenter) ShowPhase(phase model.Phase) {
	p.mu.Lock()
	defer p.mu.Unlock()
	previous := p.phase
	p.phase = phase
	if previous != "" && previous != phase {
		p.broadcast(pages.EventRefresh, string(phase))
	}
}

// cellFragment must be called with mu held
func (p *HubPresenter) cellFragment(cell int) string {
	highlighted := p.highlighted && p.highlight.Contains(cell)
	return WrapForOOBSwap(components.CellID(cell), p.render(components.Cell(p.matchID, cell, p.board[cell], highlighted)))
}

func (p *HubPresenter) render(c templ.Component) string {
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		p.logger.Error("failed to render fragment", slog.String("error", err.Error()))
	}
	return b.String()
}

func (p *HubPresenter) broadcast(event, data string) {
	p.hub.BroadcastEvent(event, data)
}

// WrapForOOBSwap wraps HTML content in a div with hx-swap-oob for out-of-band swapping
func WrapForOOBSwap(id, html string) string {
	return `<div id="` + id + `" hx-swap-oob="true">` + html + `</div>`
}
