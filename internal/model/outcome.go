package model

// OutcomeKind classifies the state of a round
type OutcomeKind string

const (
	OutcomeOngoing   OutcomeKind = "ongoing"
	OutcomeWin       OutcomeKind = "win"
	OutcomeStalemate OutcomeKind = "stalemate"
)

// Outcome is the evaluated state of a board.
// Symbol and Line are only set for a win.
type Outcome struct {
	Kind   OutcomeKind
	Symbol Symbol
	Line   Line
}

// IsOver returns true for a win or a stalemate
func (o Outcome) IsOver() bool {
	return o.Kind == OutcomeWin || o.Kind == OutcomeStalemate
}

// BestMove is the heuristic's proposal for a symbol
type BestMove struct {
	Cell      int
	MovesLeft int // Moves still needed to complete the chosen line, 0 to 2
}
