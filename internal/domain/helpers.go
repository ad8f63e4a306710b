package domain

// FindCard returns the index of the card with the given id, or -1.
func FindCard(hand []Card, cardID string) int {
	for i, card := range hand {
		if card.ID == cardID {
			return i
		}
	}
	return -1
}

// RemoveCard returns a new hand without the card at index i.
func RemoveCard(hand []Card, i int) []Card {
	out := make([]Card, 0, len(hand)-1)
	out = append(out, hand[:i]...)
	return append(out, hand[i+1:]...)
}

// CountLaneCards returns how many cards a side has placed in a lane.
func CountLaneCards(lanes [LaneCount]Lane, lane int, side Side) int {
	return len(lanes[lane].Cards(side))
}

// CoinAllowance is the per-round budget: base coins plus one per own card in the economy lane.
func CoinAllowance(rules Ruleset, lanes [LaneCount]Lane, side Side) int {
	if !rules.EconomyEnabled {
		return 0
	}
	return rules.BaseCoins + CountLaneCards(lanes, LaneEconomy, side)
}

// SumValues adds up card values.
func SumValues(cards []Card) int {
	total := 0
	for _, card := range cards {
		total += card.Value
	}
	return total
}
