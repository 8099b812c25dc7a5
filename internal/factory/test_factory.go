package factory

import (
	"time"

	"github.com/mcoot/tictactoe-go/internal/dependencies/mocks"
	"github.com/mcoot/tictactoe-go/internal/services/match"
	"github.com/mcoot/tictactoe-go/internal/storage/memory"
	"github.com/mcoot/tictactoe-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, match.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// AdvanceTurn moves the clock past the computer's thinking delay
func (t *TestApp) AdvanceTurn() {
	t.MockClock.Advance(match.DefaultConfig().TurnDelay)
}

// AdvanceRound moves the clock past the pause between rounds
func (t *TestApp) AdvanceRound() {
	t.MockClock.Advance(match.DefaultConfig().RoundRestartDelay)
}
