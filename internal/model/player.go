package model

const (
	// PlayerOneName is the display name of the first seat
	PlayerOneName = "Player 1"
	// PlayerTwoName is the display name of the second seat when two humans play
	PlayerTwoName = "Player 2"
	// ComputerName is the display name of the automated opponent
	ComputerName = "Computer"
)

// Player represents one of the two seats in a match
type Player struct {
	DisplayName string
	Score       int
	Symbol      Symbol // SymbolEmpty until assigned
	IsBot       bool
	BotStrategy string // Strategy name while the computer holds the seat
}

// StrategyLabel returns the display name of the computer's strategy, or ""
// for a human seat
func (p *Player) StrategyLabel() string {
	if !p.IsBot || p.BotStrategy == "" {
		return ""
	}
	return BotStrategyDisplayName(p.BotStrategy)
}
