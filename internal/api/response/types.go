package response

import (
	"time"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Player represents a seat in API responses
type Player struct {
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	Symbol      string `json:"symbol,omitempty"`
	IsBot       bool   `json:"is_bot,omitempty"`
	Strategy    string `json:"strategy,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		DisplayName: p.DisplayName,
		Score:       p.Score,
		Symbol:      string(p.Symbol),
		IsBot:       p.IsBot,
		Strategy:    p.BotStrategy,
	}
}

// Outcome represents the result of the latest evaluation
type Outcome struct {
	Kind   string `json:"kind"`
	Symbol string `json:"symbol,omitempty"`
	Line   []int  `json:"line,omitempty"`
}

// OutcomeFromModel converts model.Outcome
func OutcomeFromModel(o model.Outcome) Outcome {
	out := Outcome{Kind: string(o.Kind)}
	if o.Kind == model.OutcomeWin {
		out.Symbol = string(o.Symbol)
		out.Line = o.Line[:]
	}
	return out
}

// Match represents a match snapshot in API responses
type Match struct {
	ID            string    `json:"id"`
	Phase         string    `json:"phase"`
	Mode          int       `json:"mode"`
	Players       []Player  `json:"players"`
	CurrentPlayer int       `json:"current_player"`
	Board         []string  `json:"board"`
	Round         int       `json:"round"`
	Outcome       Outcome   `json:"outcome"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MatchFromModel converts model.Match to a response Match
// Empty cells are represented as empty strings
func MatchFromModel(m *model.Match) Match {
	players := make([]Player, len(m.Players))
	for i := range m.Players {
		players[i] = PlayerFromModel(&m.Players[i])
	}

	board := make([]string, model.BoardSize)
	for i, s := range m.Board {
		board[i] = string(s)
	}

	return Match{
		ID:            string(m.ID),
		Phase:         string(m.Phase),
		Mode:          int(m.Mode),
		Players:       players,
		CurrentPlayer: m.CurrentPlayerIdx,
		Board:         board,
		Round:         m.Round,
		Outcome:       OutcomeFromModel(m.Outcome),
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ActionResponse is the response after sending an input to a match.
// Accepted is false when the input was ignored.
type ActionResponse struct {
	Accepted bool  `json:"accepted"`
	Match    Match `json:"match"`
}

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Matches int    `json:"matches"`
}
