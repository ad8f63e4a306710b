package domain

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// CardSpec is one row of the title table cards are drawn from.
type CardSpec struct {
	Title string `json:"title" yaml:"title"`
	Value int    `json:"value" yaml:"value"`
	Cost  int    `json:"cost" yaml:"cost"`
	Lane  int    `json:"lane" yaml:"lane"`
}

// Catalog is the fixed title -> value/cost/lane table.
type Catalog []CardSpec

// DefaultCatalog returns the built-in title table.
func DefaultCatalog() Catalog {
	return Catalog{
		{Title: "Caucus Support", Value: 1, Cost: 1, Lane: LaneEconomy},
		{Title: "Bipartisan Deal", Value: 3, Cost: 2, Lane: LaneEconomy},
		{Title: "Committee Chair", Value: 4, Cost: 3, Lane: LaneEconomy},
		{Title: "Floor Vote", Value: 2, Cost: 1, Lane: LaneAssembly},
		{Title: "Whip Vote", Value: 4, Cost: 2, Lane: LaneAssembly},
		{Title: "Majority Leader", Value: 7, Cost: 4, Lane: LaneAssembly},
		{Title: "Filibuster", Value: 3, Cost: 2, Lane: LaneMutiny},
		{Title: "Executive Order", Value: 5, Cost: 3, Lane: LaneMutiny},
		{Title: "Special Session", Value: 6, Cost: 4, Lane: LaneMutiny},
		{Title: "Veto Power", Value: 8, Cost: 5, Lane: LaneMutiny},
	}
}

// Validate rejects catalogs that could generate unplayable cards.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	seen := make(map[string]bool, len(c))
	for i, row := range c {
		if row.Title == "" {
			return fmt.Errorf("catalog entry %d: title is required", i)
		}
		if seen[row.Title] {
			return fmt.Errorf("catalog entry %d: duplicate title %q", i, row.Title)
		}
		seen[row.Title] = true
		if row.Value <= 0 {
			return fmt.Errorf("catalog entry %q: value must be positive", row.Title)
		}
		if row.Cost < 0 {
			return fmt.Errorf("catalog entry %q: cost must not be negative", row.Title)
		}
		if row.Lane < 0 || row.Lane >= LaneCount {
			return fmt.Errorf("catalog entry %q: lane %d out of range", row.Title, row.Lane)
		}
	}
	return nil
}

// GenerateCard draws a card from the catalog using rng for both the pick and the id.
func GenerateCard(rng *rand.Rand, catalog Catalog, rules Ruleset) Card {
	row := catalog[rng.Intn(len(catalog))]
	card := Card{
		Title: row.Title,
		Value: row.Value,
		Cost:  row.Cost,
		Lane:  row.Lane,
	}
	if rules.RandomCardValues {
		card.Value = rng.Intn(10) + 1
		card.Cost = 0
		card.Lane = rng.Intn(LaneCount)
	}
	card.ID = newCardID(rng)
	return card
}

// DrawCards generates n cards in order.
func DrawCards(rng *rand.Rand, catalog Catalog, rules Ruleset, n int) []Card {
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, GenerateCard(rng, catalog, rules))
	}
	return cards
}

func newCardID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		// *rand.Rand never fails a read; keep ids unique regardless.
		return uuid.NewString()
	}
	return id.String()
}
