package domain

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateCard_UsesCatalogRow(t *testing.T) {
	catalog := DefaultCatalog()
	byTitle := make(map[string]CardSpec, len(catalog))
	for _, row := range catalog {
		byTitle[row.Title] = row
	}

	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 200; i++ {
		card := GenerateCard(rng, catalog, StandardRules())
		row, ok := byTitle[card.Title]
		if !ok {
			t.Fatalf("unknown title %q", card.Title)
		}
		if card.Value != row.Value || card.Cost != row.Cost || card.Lane != row.Lane {
			t.Fatalf("card %+v does not match catalog row %+v", card, row)
		}
		if _, err := uuid.Parse(card.ID); err != nil {
			t.Fatalf("card id %q is not a uuid: %v", card.ID, err)
		}
	}
}

func TestGenerateCard_RandomValues(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		card := GenerateCard(rng, DefaultCatalog(), ClassicRules())
		if card.Value < 1 || card.Value > 10 {
			t.Fatalf("value %d outside 1..10", card.Value)
		}
		if card.Cost != 0 {
			t.Fatalf("cost = %d, want 0", card.Cost)
		}
		if card.Lane < 0 || card.Lane >= LaneCount {
			t.Fatalf("lane %d out of range", card.Lane)
		}
	}
}

func TestCatalogValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		wantErr bool
	}{
		{name: "default", catalog: DefaultCatalog()},
		{name: "empty", catalog: Catalog{}, wantErr: true},
		{name: "missing title", catalog: Catalog{{Value: 1, Lane: 0}}, wantErr: true},
		{name: "duplicate title", catalog: Catalog{{Title: "A", Value: 1}, {Title: "A", Value: 2}}, wantErr: true},
		{name: "zero value", catalog: Catalog{{Title: "A", Value: 0}}, wantErr: true},
		{name: "negative cost", catalog: Catalog{{Title: "A", Value: 1, Cost: -1}}, wantErr: true},
		{name: "lane out of range", catalog: Catalog{{Title: "A", Value: 1, Lane: 3}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestRulesetByName(t *testing.T) {
	standard, err := RulesetByName("")
	if err != nil || standard.Name != RulesetStandard {
		t.Fatalf("empty name = %+v, %v; want standard", standard, err)
	}
	classic, err := RulesetByName(RulesetClassic)
	if err != nil || classic.MaxRounds != 3 || classic.EconomyEnabled {
		t.Fatalf("classic = %+v, %v", classic, err)
	}
	if _, err := RulesetByName("blitz"); err == nil {
		t.Fatalf("expected error for unknown ruleset")
	}
	bad := StandardRules()
	bad.LaneCapacity = 0
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected validation error for zero capacity")
	}
}
