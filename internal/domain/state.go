package domain

// Phase represents the lifecycle stage of a Partition game.
type Phase string

const (
	// PhasePlaying is the state where the human player places cards.
	PhasePlaying Phase = "playing"
	// PhaseComputerTurn is the state while the scripted opponent resolves its plays.
	PhaseComputerTurn Phase = "computer_turn"
	// PhaseRoundEnd is the state after a round has been revealed and awaits acknowledgement.
	PhaseRoundEnd Phase = "round_end"
	// PhaseGameOver is terminal until the game is initialized again.
	PhaseGameOver Phase = "game_over"
)

// Side identifies one of the two participants.
type Side string

const (
	SidePlayer   Side = "player"
	SideComputer Side = "computer"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideComputer
	}
	return SidePlayer
}

// Winner is the outcome of a lane or of a whole game.
type Winner string

const (
	WinnerNone     Winner = "none"
	WinnerPlayer   Winner = "player"
	WinnerComputer Winner = "computer"
	WinnerTie      Winner = "tie"
)

// WinnerFor maps a side to the matching winner value.
func WinnerFor(s Side) Winner {
	if s == SidePlayer {
		return WinnerPlayer
	}
	return WinnerComputer
}

// Lane indices. Lane 0 feeds the economy, lane 1 can freeze the marker, lane 2 moves it.
const (
	LaneEconomy  = 0
	LaneAssembly = 1
	LaneMutiny   = 2

	LaneCount = 3
)

// LaneName returns the display label of a lane index.
func LaneName(index int) string {
	switch index {
	case LaneEconomy:
		return "Economy"
	case LaneAssembly:
		return "Assembly"
	case LaneMutiny:
		return "Mutiny"
	default:
		return "Unknown"
	}
}

// Card is a single immutable Partition card.
type Card struct {
	ID    string
	Title string
	Value int
	Cost  int
	Lane  int // lane affinity, 0..2
}

// Lane is one of the three parallel contests. Scores and Winner are derived from the cards.
type Lane struct {
	PlayerCards   []Card
	ComputerCards []Card
	PlayerScore   int
	ComputerScore int
	Winner        Winner
}

// Cards returns the cards played by the given side.
func (l Lane) Cards(side Side) []Card {
	if side == SidePlayer {
		return l.PlayerCards
	}
	return l.ComputerCards
}

// Marker is the clash marker shared by both sides.
type Marker struct {
	Position int
	Frozen   bool
}

// State holds the full game state for one Partition session.
type State struct {
	Rules Ruleset

	PlayerHand   []Card
	ComputerHand []Card
	Lanes        [LaneCount]Lane

	PlayerCoins   int
	ComputerCoins int

	Marker Marker
	Round  int
	Phase  Phase

	// Set once Phase reaches PhaseGameOver.
	Winner   Winner
	Outright bool
}

// Hand returns the hand of the given side.
func (s *State) Hand(side Side) []Card {
	if side == SidePlayer {
		return s.PlayerHand
	}
	return s.ComputerHand
}

// Coins returns the coin balance of the given side.
func (s *State) Coins(side Side) int {
	if side == SidePlayer {
		return s.PlayerCoins
	}
	return s.ComputerCoins
}

func (s *State) setHand(side Side, hand []Card) {
	if side == SidePlayer {
		s.PlayerHand = hand
		return
	}
	s.ComputerHand = hand
}

func (s *State) setCoins(side Side, coins int) {
	if side == SidePlayer {
		s.PlayerCoins = coins
		return
	}
	s.ComputerCoins = coins
}

// Clone returns a deep copy so transitions never alias the caller's slices.
func (s State) Clone() State {
	out := s
	out.PlayerHand = cloneCards(s.PlayerHand)
	out.ComputerHand = cloneCards(s.ComputerHand)
	for i := range s.Lanes {
		out.Lanes[i].PlayerCards = cloneCards(s.Lanes[i].PlayerCards)
		out.Lanes[i].ComputerCards = cloneCards(s.Lanes[i].ComputerCards)
	}
	return out
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	return append(make([]Card, 0, len(cards)), cards...)
}
