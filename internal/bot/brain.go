package bot

import (
	"partition/internal/domain"
)

// Placement is one card the opponent wants to put into a lane.
type Placement struct {
	CardID string
	Lane   int
}

// Brain is the interface that all opponent strategies must implement.
// ChoosePlays only proposes; every placement is still validated by the caller.
type Brain interface {
	ChoosePlays(state domain.State, side domain.Side) []Placement
}

// Difficulty selects the strategy an opponent plays with.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyStandard Difficulty = "standard"
)

// laneRoom tracks how many more cards each lane can take for one side.
type laneRoom [domain.LaneCount]int

func newLaneRoom(state domain.State, side domain.Side) laneRoom {
	var room laneRoom
	for lane := range room {
		room[lane] = state.Rules.LaneCapacity - domain.CountLaneCards(state.Lanes, lane, side)
	}
	return room
}

// lowest returns the lowest lane index with room, or -1.
func (r laneRoom) lowest() int {
	for lane, n := range r {
		if n > 0 {
			return lane
		}
	}
	return -1
}

func (r laneRoom) any() bool { return r.lowest() >= 0 }
