package bot

import (
	"math/rand"

	"partition/internal/domain"
)

// Agent represents the scripted opponent seated in a match.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent builds an agent from an identity, choosing the brain by its difficulty.
func NewAgent(identity OpponentIdentity, rng *rand.Rand) (*Agent, error) {
	brain, err := NewBrain(Difficulty(identity.Difficulty), rng)
	if err != nil {
		return nil, err
	}
	return &Agent{
		ID:       identity.UserID,
		Name:     identity.DisplayName,
		Strategy: brain,
	}, nil
}

// ChoosePlays delegates to the agent's strategy.
func (a *Agent) ChoosePlays(state domain.State, side domain.Side) []Placement {
	if a == nil || a.Strategy == nil {
		return nil
	}
	return a.Strategy.ChoosePlays(state, side)
}

var _ Brain = (*Agent)(nil)
