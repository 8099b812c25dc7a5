package mocks

import (
	"sync"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/presenter"
)

// MockPresenter records every presenter call as a model event
type MockPresenter struct {
	presenter.EventFunc

	mu     sync.Mutex
	events []model.Event
}

// Ensure MockPresenter implements Presenter
var _ presenter.Presenter = (*MockPresenter)(nil)

// NewMockPresenter creates a MockPresenter with no recorded events
func NewMockPresenter() *MockPresenter {
	p := &MockPresenter{}
	p.EventFunc = p.record
	return p
}

func (p *MockPresenter) record(e model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

// Events returns a copy of all recorded events
func (p *MockPresenter) Events() []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Event, len(p.events))
	copy(out, p.events)
	return out
}

// EventsOfType returns recorded events of the given type
func (p *MockPresenter) EventsOfType(t model.EventType) []model.Event {
	var out []model.Event
	for _, e := range p.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// LastStatus returns the most recent status text, or empty if none
func (p *MockPresenter) LastStatus() string {
	statuses := p.EventsOfType(model.EventStatus)
	if len(statuses) == 0 {
		return ""
	}
	return statuses[len(statuses)-1].Text
}

// Reset clears all recorded events
func (p *MockPresenter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
