package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"partition/internal/domain"
)

const yamlDoc = `
ruleset: standard
reveal_delay_ticks: 3
win_reward: 250
rules:
  player_wins_tiebreak: false
  max_rounds: 7
catalog:
  - title: Floor Vote
    value: 2
    cost: 1
    lane: 1
  - title: Veto Power
    value: 8
    cost: 5
    lane: 2
`

const jsonDoc = `{
  "ruleset": "standard",
  "reveal_delay_ticks": 3,
  "win_reward": 250,
  "rules": {"player_wins_tiebreak": false, "max_rounds": 7},
  "catalog": [
    {"title": "Floor Vote", "value": 2, "cost": 1, "lane": 1},
    {"title": "Veto Power", "value": 8, "cost": 5, "lane": 2}
  ]
}`

func TestParse_YAMLAndJSONAgree(t *testing.T) {
	fromYAML, err := Parse([]byte(yamlDoc), FormatYAML)
	if err != nil {
		t.Fatalf("yaml parse error: %v", err)
	}
	fromJSON, err := Parse([]byte(jsonDoc), FormatJSON)
	if err != nil {
		t.Fatalf("json parse error: %v", err)
	}

	yamlRules, _ := fromYAML.Rules()
	jsonRules, _ := fromJSON.Rules()
	if !reflect.DeepEqual(yamlRules, jsonRules) {
		t.Fatalf("rulesets differ:\nyaml %+v\njson %+v", yamlRules, jsonRules)
	}
	if !reflect.DeepEqual(fromYAML.Catalog, fromJSON.Catalog) {
		t.Fatalf("catalogs differ:\nyaml %+v\njson %+v", fromYAML.Catalog, fromJSON.Catalog)
	}

	if yamlRules.MaxRounds != 7 || yamlRules.PlayerWinsTiebreak {
		t.Fatalf("overrides not applied: %+v", yamlRules)
	}
	if !yamlRules.EconomyEnabled || yamlRules.BaseCoins != 4 {
		t.Fatalf("preset values lost: %+v", yamlRules)
	}
	if fromYAML.RevealDelayTicks != 3 || fromYAML.WinReward != 250 {
		t.Fatalf("pacing = %d/%d, want 3/250", fromYAML.RevealDelayTicks, fromYAML.WinReward)
	}
	if fromYAML.WelcomeBonus != defaultWelcomeBonus {
		t.Fatalf("welcome bonus = %d, want default %d", fromYAML.WelcomeBonus, defaultWelcomeBonus)
	}
}

func TestParse_EmptyDocumentUsesDefaults(t *testing.T) {
	c, err := Parse([]byte("{}"), FormatJSON)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !reflect.DeepEqual(c, Default()) {
		t.Fatalf("config = %+v, want defaults", c)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format Format
	}{
		{name: "unknown ruleset", doc: "ruleset: blitz", format: FormatYAML},
		{name: "bad override", doc: "rules:\n  lane_capacity: 0", format: FormatYAML},
		{name: "bad catalog lane", doc: `{"catalog":[{"title":"X","value":1,"lane":5}]}`, format: FormatJSON},
		{name: "negative delay", doc: "reveal_delay_ticks: -1", format: FormatYAML},
		{name: "negative reward", doc: `{"win_reward": -5}`, format: FormatJSON},
		{name: "unknown opponent difficulty", doc: "opponent_difficulty: hard", format: FormatYAML},
		{name: "malformed yaml", doc: "ruleset: [", format: FormatYAML},
		{name: "unknown format", doc: "", format: "toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc), tt.format); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestClassicPresetFromConfig(t *testing.T) {
	c, err := Parse([]byte("ruleset: classic"), FormatYAML)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	rules, err := c.Rules()
	if err != nil {
		t.Fatalf("rules error: %v", err)
	}
	if !reflect.DeepEqual(rules, domain.ClassicRules()) {
		t.Fatalf("rules = %+v, want classic preset", rules)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if len(c.Catalog) != 2 {
		t.Fatalf("catalog size = %d, want 2", len(c.Catalog))
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := ReadFile(filepath.Join(dir, "game.ini")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestReadFile_ShippedConfig(t *testing.T) {
	c, err := ReadFile(filepath.Join("..", "..", "data", "game_config.yaml"))
	if err != nil {
		t.Fatalf("shipped config: %v", err)
	}
	if !reflect.DeepEqual(c.Catalog, domain.DefaultCatalog()) {
		t.Fatalf("shipped catalog drifted from the built-in table")
	}
	if _, err := c.Rules(); err != nil {
		t.Fatalf("shipped rules: %v", err)
	}
}
