package domain

import "fmt"

// Ruleset collapses the game variants into one set of switches.
type Ruleset struct {
	Name string `json:"name" yaml:"name"`

	EconomyEnabled       bool `json:"economy_enabled" yaml:"economy_enabled"`
	LaneAffinityEnforced bool `json:"lane_affinity_enforced" yaml:"lane_affinity_enforced"`
	FreezeRuleEnabled    bool `json:"freeze_rule_enabled" yaml:"freeze_rule_enabled"`
	// PlayerWinsTiebreak awards equal lane-win counts to the player instead of a tie.
	PlayerWinsTiebreak bool `json:"player_wins_tiebreak" yaml:"player_wins_tiebreak"`
	// RandomCardValues ignores the catalog's value/cost/lane and rolls them instead.
	RandomCardValues bool `json:"random_card_values" yaml:"random_card_values"`

	MaxRounds    int `json:"max_rounds" yaml:"max_rounds"`
	HandSize     int `json:"hand_size" yaml:"hand_size"`
	LaneCapacity int `json:"lane_capacity" yaml:"lane_capacity"`
	BaseCoins    int `json:"base_coins" yaml:"base_coins"`
	MarkerLimit  int `json:"marker_limit" yaml:"marker_limit"`
}

const (
	RulesetStandard = "standard"
	RulesetClassic  = "classic"
)

// StandardRules is the full ruleset: economy, lane affinity, freeze and the player tie-break.
func StandardRules() Ruleset {
	return Ruleset{
		Name:                 RulesetStandard,
		EconomyEnabled:       true,
		LaneAffinityEnforced: true,
		FreezeRuleEnabled:    true,
		PlayerWinsTiebreak:   true,
		MaxRounds:            5,
		HandSize:             5,
		LaneCapacity:         4,
		BaseCoins:            4,
		MarkerLimit:          3,
	}
}

// ClassicRules is the early variant: random card values, free plays, three rounds.
func ClassicRules() Ruleset {
	return Ruleset{
		Name:             RulesetClassic,
		RandomCardValues: true,
		MaxRounds:        3,
		HandSize:         5,
		LaneCapacity:     4,
		BaseCoins:        0,
		MarkerLimit:      3,
	}
}

// RulesetByName resolves a named preset.
func RulesetByName(name string) (Ruleset, error) {
	switch name {
	case "", RulesetStandard:
		return StandardRules(), nil
	case RulesetClassic:
		return ClassicRules(), nil
	default:
		return Ruleset{}, fmt.Errorf("unknown ruleset: %q", name)
	}
}

// Validate checks that the numeric limits can produce a playable game.
func (r Ruleset) Validate() error {
	switch {
	case r.MaxRounds < 1:
		return fmt.Errorf("max_rounds must be >= 1, got %d", r.MaxRounds)
	case r.HandSize < 1:
		return fmt.Errorf("hand_size must be >= 1, got %d", r.HandSize)
	case r.LaneCapacity < 1:
		return fmt.Errorf("lane_capacity must be >= 1, got %d", r.LaneCapacity)
	case r.BaseCoins < 0:
		return fmt.Errorf("base_coins must be >= 0, got %d", r.BaseCoins)
	case r.MarkerLimit < 1:
		return fmt.Errorf("marker_limit must be >= 1, got %d", r.MarkerLimit)
	}
	return nil
}
