package bot

import (
	"math/rand"
	"sort"
	"time"

	"partition/internal/domain"
)

// GreedyBot plays the cheapest cards first, highest value on equal cost,
// each into its affinity lane, until budget, hand or room runs out.
type GreedyBot struct{}

func (b *GreedyBot) ChoosePlays(state domain.State, side domain.Side) []Placement {
	hand := append([]domain.Card(nil), state.Hand(side)...)
	if len(hand) == 0 {
		return nil
	}

	sort.SliceStable(hand, func(i, j int) bool {
		if hand[i].Cost != hand[j].Cost {
			return hand[i].Cost < hand[j].Cost
		}
		return hand[i].Value > hand[j].Value
	})

	economy := state.Rules.EconomyEnabled
	budget := state.Coins(side)
	room := newLaneRoom(state, side)

	var plays []Placement
	for _, card := range hand {
		if !room.any() {
			break
		}
		if economy && budget <= 0 && card.Cost > 0 {
			break
		}
		if economy && card.Cost > budget {
			continue
		}

		lane := card.Lane
		if room[lane] <= 0 {
			if state.Rules.LaneAffinityEnforced {
				continue
			}
			lane = room.lowest()
		}

		plays = append(plays, Placement{CardID: card.ID, Lane: lane})
		room[lane]--
		if economy {
			budget -= card.Cost
		}
	}
	return plays
}

// maxRandomPlays caps how many cards the random opponent throws per round.
const maxRandomPlays = 3

// RandomBot plays up to three random cards into random lanes with room.
type RandomBot struct {
	rng *rand.Rand
}

// NewRandomBot constructs a RandomBot with provided rng or a time-seeded default.
func NewRandomBot(rng *rand.Rand) *RandomBot {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomBot{rng: rng}
}

func (b *RandomBot) ChoosePlays(state domain.State, side domain.Side) []Placement {
	hand := state.Hand(side)
	if len(hand) == 0 {
		return nil
	}

	economy := state.Rules.EconomyEnabled
	budget := state.Coins(side)
	room := newLaneRoom(state, side)

	var plays []Placement
	for _, idx := range b.rng.Perm(len(hand)) {
		if len(plays) == maxRandomPlays || !room.any() {
			break
		}
		card := hand[idx]
		if economy && card.Cost > budget {
			continue
		}

		lane := card.Lane
		if !state.Rules.LaneAffinityEnforced {
			lane = b.pickLane(room)
		}
		if room[lane] <= 0 {
			continue
		}

		plays = append(plays, Placement{CardID: card.ID, Lane: lane})
		room[lane]--
		if economy {
			budget -= card.Cost
		}
	}
	return plays
}

func (b *RandomBot) pickLane(room laneRoom) int {
	open := make([]int, 0, domain.LaneCount)
	for lane, n := range room {
		if n > 0 {
			open = append(open, lane)
		}
	}
	return open[b.rng.Intn(len(open))]
}
