package model

// Hint strategy constants
const (
	HintStrategyRandom      = "random"
	HintStrategyFewestBends = "fewest-bends"
)

// HintStrategyDisplayName returns a human-readable label for a strategy
func HintStrategyDisplayName(strategy string) string {
	switch strategy {
	case HintStrategyRandom:
		return "Random"
	case HintStrategyFewestBends:
		return "Fewest bends"
	default:
		return strategy
	}
}

// ValidHintStrategies returns all valid hint strategy names
func ValidHintStrategies() []string {
	return []string{HintStrategyRandom, HintStrategyFewestBends}
}
