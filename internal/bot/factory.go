package bot

import (
	"fmt"
	"math/rand"

	"partition/internal/domain"
)

// NewBrain creates a new opponent brain for the given difficulty.
// rng is only used by strategies that roll dice.
func NewBrain(difficulty Difficulty, rng *rand.Rand) (Brain, error) {
	switch difficulty {
	case DifficultyEasy:
		return NewRandomBot(rng), nil
	case DifficultyStandard, "":
		return &GreedyBot{}, nil
	default:
		return nil, fmt.Errorf("unknown opponent difficulty: %q", difficulty)
	}
}

// DifficultyForRules returns the difficulty an opponent plays with under rules.
// The greedy policy assumes coin costs, so rulesets without an economy swap it for the random one.
// Unknown difficulties pass through for NewBrain to reject.
func DifficultyForRules(difficulty Difficulty, rules domain.Ruleset) Difficulty {
	if !rules.EconomyEnabled && (difficulty == DifficultyStandard || difficulty == "") {
		return DifficultyEasy
	}
	return difficulty
}
