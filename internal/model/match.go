package model

import (
	"fmt"
	"strconv"
	"time"
)

// MatchID uniquely identifies a match
type MatchID string

// Mode is the number of human players in a match
type Mode int

const (
	ModeUnset    Mode = 0
	ModeOneHuman Mode = 1 // Player 2 is the computer
	ModeTwoHuman Mode = 2
)

// ParseMode accepts "1" or "2"
func ParseMode(s string) (Mode, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return ModeUnset, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	mode := Mode(n)
	if !mode.IsValid() {
		return ModeUnset, fmt.Errorf("%w: %d", ErrInvalidMode, n)
	}
	return mode, nil
}

// IsValid returns true for one or two human players
func (m Mode) IsValid() bool {
	return m == ModeOneHuman || m == ModeTwoHuman
}

// Phase represents where a match is in its lifecycle
type Phase string

const (
	PhaseAwaitingMode   Phase = "awaiting_mode"   // Choosing one or two players
	PhaseAwaitingSymbol Phase = "awaiting_symbol" // Player 1 choosing X or O
	PhaseRoundActive    Phase = "round_active"    // Moves are accepted
	PhaseRoundEnding    Phase = "round_ending"    // Result shown, next round scheduled
)

// Match is a sequence of rounds sharing scores and symbol assignment
type Match struct {
	ID               MatchID
	Phase            Phase
	Mode             Mode
	Players          [2]Player
	CurrentPlayerIdx int
	Board            Board
	Round            int    // Number of rounds started in this match
	Generation       uint64 // Bumped whenever pending scheduled work becomes stale
	Outcome          Outcome
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CurrentPlayer returns the player whose turn it is
func (m *Match) CurrentPlayer() *Player {
	return &m.Players[m.CurrentPlayerIdx]
}

// IsBotTurn returns true if the automated opponent is due to move
func (m *Match) IsBotTurn() bool {
	return m.Mode == ModeOneHuman && m.Players[m.CurrentPlayerIdx].IsBot
}

// PlayerIndexForSymbol returns the seat holding the symbol, or -1
func (m *Match) PlayerIndexForSymbol(s Symbol) int {
	for i, p := range m.Players {
		if p.Symbol != SymbolEmpty && p.Symbol == s {
			return i
		}
	}
	return -1
}

// Scores returns both scores in seat order
func (m *Match) Scores() (int, int) {
	return m.Players[0].Score, m.Players[1].Score
}

// Clone returns a copy that shares no state with the original
func (m *Match) Clone() *Match {
	c := *m
	return &c
}
