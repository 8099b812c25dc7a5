package presenter

import (
	"sync"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Fanout is a Presenter that dispatches every update to a changing set of presenters
type Fanout struct {
	mu         sync.RWMutex
	presenters map[string]Presenter
	order      []string
}

var _ Presenter = (*Fanout)(nil)

// NewFanout creates an empty Fanout
func NewFanout() *Fanout {
	return &Fanout{presenters: make(map[string]Presenter)}
}

// Add registers a presenter under key, replacing any presenter with the same key
func (f *Fanout) Add(key string, p Presenter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.presenters[key]; !ok {
		f.order = append(f.order, key)
	}
	f.presenters[key] = p
}

// Remove unregisters the presenter under key
func (f *Fanout) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.presenters[key]; !ok {
		return
	}
	delete(f.presenters, key)
	for i, k := range f.order {
		if k == key {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered presenters
func (f *Fanout) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.presenters)
}

func (f *Fanout) each(fn func(Presenter)) {
	f.mu.RLock()
	targets := make([]Presenter, 0, len(f.order))
	for _, k := range f.order {
		targets = append(targets, f.presenters[k])
	}
	f.mu.RUnlock()

	for _, p := range targets {
		fn(p)
	}
}

// RenderCellFilled forwards to every attached presenter
func (f *Fanout) RenderCellFilled(cell int, symbol model.Symbol) {
	f.each(func(p Presenter) { p.RenderCellFilled(cell, symbol) })
}

// RenderCellCleared forwards to every attached presenter
func (f *Fanout) RenderCellCleared(cell int) {
	f.each(func(p Presenter) { p.RenderCellCleared(cell) })
}

// HighlightLine forwards to every attached presenter
func (f *Fanout) HighlightLine(line model.Line) {
	f.each(func(p Presenter) { p.HighlightLine(line) })
}

// SetStatusText forwards to every attached presenter
func (f *Fanout) SetStatusText(text string) {
	f.each(func(p Presenter) { p.SetStatusText(text) })
}

// SetScoreText forwards to every attached presenter
func (f *Fanout) SetScoreText(player1, player2 int) {
	f.each(func(p Presenter) { p.SetScoreText(player1, player2) })
}

// SetPlayerNames forwards to every attached presenter
func (f *Fanout) SetPlayerNames(player1, player2 string) {
	f.each(func(p Presenter) { p.SetPlayerNames(player1, player2) })
}

// ShowPhase forwards to every attached presenter
func (f *Fanout) ShowPhase(phase model.Phase) {
	f.each(func(p Presenter) { p.ShowPhase(phase) })
}
