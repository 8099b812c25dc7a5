package model

// Bot strategy constants
const (
	BotStrategyLine   = "line"
	BotStrategyRandom = "random"
)

// BotStrategyDisplayName returns a human-readable label for a strategy
func BotStrategyDisplayName(strategy string) string {
	switch strategy {
	case BotStrategyLine:
		return "Block or advance"
	case BotStrategyRandom:
		return "Random"
	default:
		return strategy
	}
}

// ValidBotStrategies returns all valid bot strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategyLine, BotStrategyRandom}
}

// IsValidBotStrategy returns true if the name is a known strategy
func IsValidBotStrategy(strategy string) bool {
	for _, s := range ValidBotStrategies() {
		if s == strategy {
			return true
		}
	}
	return false
}
