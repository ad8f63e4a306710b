package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"partition/internal/bot"
	"partition/internal/domain"
)

// GameConfig holds the tunable parts of a Partition deployment.
type GameConfig struct {
	// Ruleset names a preset ("standard", "classic").
	Ruleset string `json:"ruleset" yaml:"ruleset"`
	// Overrides changes individual switches of the preset when present.
	Overrides *RulesOverride `json:"rules,omitempty" yaml:"rules,omitempty"`
	// Catalog replaces the built-in title table when non-empty.
	Catalog domain.Catalog `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	// RevealDelayTicks is how many match ticks the computer turn stays visible before round_end.
	RevealDelayTicks int `json:"reveal_delay_ticks" yaml:"reveal_delay_ticks"`
	// WinReward is paid to the player's wallet on a player win.
	WinReward int64 `json:"win_reward" yaml:"win_reward"`
	// WelcomeBonus is granted once to new accounts.
	WelcomeBonus int64 `json:"welcome_bonus" yaml:"welcome_bonus"`
	// OpponentDifficulty is used when no opponent identity is loaded.
	OpponentDifficulty string `json:"opponent_difficulty" yaml:"opponent_difficulty"`
}

// RulesOverride carries optional per-field overrides on top of a preset.
type RulesOverride struct {
	EconomyEnabled       *bool `json:"economy_enabled,omitempty" yaml:"economy_enabled,omitempty"`
	LaneAffinityEnforced *bool `json:"lane_affinity_enforced,omitempty" yaml:"lane_affinity_enforced,omitempty"`
	FreezeRuleEnabled    *bool `json:"freeze_rule_enabled,omitempty" yaml:"freeze_rule_enabled,omitempty"`
	PlayerWinsTiebreak   *bool `json:"player_wins_tiebreak,omitempty" yaml:"player_wins_tiebreak,omitempty"`
	RandomCardValues     *bool `json:"random_card_values,omitempty" yaml:"random_card_values,omitempty"`
	MaxRounds            *int  `json:"max_rounds,omitempty" yaml:"max_rounds,omitempty"`
	HandSize             *int  `json:"hand_size,omitempty" yaml:"hand_size,omitempty"`
	LaneCapacity         *int  `json:"lane_capacity,omitempty" yaml:"lane_capacity,omitempty"`
	BaseCoins            *int  `json:"base_coins,omitempty" yaml:"base_coins,omitempty"`
	MarkerLimit          *int  `json:"marker_limit,omitempty" yaml:"marker_limit,omitempty"`
}

const (
	defaultRevealDelayTicks = 2
	defaultWinReward        = 100
	defaultWelcomeBonus     = 1000
)

// Default returns the configuration used when no file is provided.
func Default() *GameConfig {
	return &GameConfig{
		Ruleset:            domain.RulesetStandard,
		Catalog:            domain.DefaultCatalog(),
		RevealDelayTicks:   defaultRevealDelayTicks,
		WinReward:          defaultWinReward,
		WelcomeBonus:       defaultWelcomeBonus,
		OpponentDifficulty: "standard",
	}
}

// Format of a config document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the decoder by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported config extension: %q", filepath.Ext(path))
	}
}

// Parse decodes a config document over the defaults and validates the result.
func Parse(data []byte, format Format) (*GameConfig, error) {
	c := Default()
	c.Catalog = nil

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml game config: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal json game config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %q", format)
	}

	if len(c.Catalog) == 0 {
		c.Catalog = domain.DefaultCatalog()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the ruleset, catalog and pacing values.
func (c *GameConfig) Validate() error {
	if _, err := c.Rules(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	if c.RevealDelayTicks < 0 {
		return fmt.Errorf("reveal_delay_ticks must be >= 0, got %d", c.RevealDelayTicks)
	}
	if _, err := bot.NewBrain(bot.Difficulty(c.OpponentDifficulty), nil); err != nil {
		return fmt.Errorf("invalid opponent_difficulty: %w", err)
	}
	if c.WinReward < 0 || c.WelcomeBonus < 0 {
		return fmt.Errorf("rewards must not be negative")
	}
	return nil
}

// Rules resolves the named preset and applies overrides.
func (c *GameConfig) Rules() (domain.Ruleset, error) {
	rules, err := domain.RulesetByName(c.Ruleset)
	if err != nil {
		return domain.Ruleset{}, err
	}
	if o := c.Overrides; o != nil {
		setBool(&rules.EconomyEnabled, o.EconomyEnabled)
		setBool(&rules.LaneAffinityEnforced, o.LaneAffinityEnforced)
		setBool(&rules.FreezeRuleEnabled, o.FreezeRuleEnabled)
		setBool(&rules.PlayerWinsTiebreak, o.PlayerWinsTiebreak)
		setBool(&rules.RandomCardValues, o.RandomCardValues)
		setInt(&rules.MaxRounds, o.MaxRounds)
		setInt(&rules.HandSize, o.HandSize)
		setInt(&rules.LaneCapacity, o.LaneCapacity)
		setInt(&rules.BaseCoins, o.BaseCoins)
		setInt(&rules.MarkerLimit, o.MarkerLimit)
	}
	if err := rules.Validate(); err != nil {
		return domain.Ruleset{}, fmt.Errorf("invalid ruleset: %w", err)
	}
	return rules, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
// An empty path keeps the built-in defaults.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		if path == "" {
			cfg = Default()
			return
		}
		c, err := ReadFile(path)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// ReadFile reads and parses one config file without touching the global config.
func ReadFile(path string) (*GameConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return Parse(data, format)
}

// GetGameConfig returns the global game configuration, or the defaults before loading.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return Default()
	}
	return cfg
}
