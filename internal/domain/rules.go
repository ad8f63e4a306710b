package domain

// RejectReason explains why an action was refused. It doubles as an error value.
type RejectReason string

const (
	ReasonWrongPhase        RejectReason = "wrong_phase"
	ReasonLaneOutOfRange    RejectReason = "lane_out_of_range"
	ReasonCardNotInHand     RejectReason = "card_not_in_hand"
	ReasonLaneMismatch      RejectReason = "lane_mismatch"
	ReasonLaneFull          RejectReason = "lane_full"
	ReasonInsufficientCoins RejectReason = "insufficient_coins"
)

func (r RejectReason) Error() string {
	return "action rejected: " + string(r)
}

// Result is the outcome of an action: accepted, or rejected with a reason.
type Result struct {
	Reason RejectReason
}

// Accept returns an accepted result.
func Accept() Result { return Result{} }

// Reject returns a rejected result carrying reason.
func Reject(reason RejectReason) Result { return Result{Reason: reason} }

// Accepted reports whether the action changed the state.
func (r Result) Accepted() bool { return r.Reason == "" }

// Err returns nil for accepted results and the reason otherwise.
func (r Result) Err() error {
	if r.Accepted() {
		return nil
	}
	return r.Reason
}

// CanPlay checks every precondition of placing cardID into lane for side, in order.
func CanPlay(s State, side Side, cardID string, lane int) Result {
	if !phaseAllowsPlay(s.Phase, side) {
		return Reject(ReasonWrongPhase)
	}
	if lane < 0 || lane >= LaneCount {
		return Reject(ReasonLaneOutOfRange)
	}
	idx := FindCard(s.Hand(side), cardID)
	if idx < 0 {
		return Reject(ReasonCardNotInHand)
	}
	card := s.Hand(side)[idx]
	if s.Rules.LaneAffinityEnforced && card.Lane != lane {
		return Reject(ReasonLaneMismatch)
	}
	if CountLaneCards(s.Lanes, lane, side) >= s.Rules.LaneCapacity {
		return Reject(ReasonLaneFull)
	}
	if s.Rules.EconomyEnabled && card.Cost > s.Coins(side) {
		return Reject(ReasonInsufficientCoins)
	}
	return Accept()
}

// PlayCard moves a card from side's hand into a lane and pays its cost.
// A rejected play returns the input state unchanged.
func PlayCard(s State, side Side, cardID string, lane int) (State, Result) {
	if res := CanPlay(s, side, cardID, lane); !res.Accepted() {
		return s, res
	}

	next := s.Clone()
	hand := next.Hand(side)
	idx := FindCard(hand, cardID)
	card := hand[idx]
	next.setHand(side, RemoveCard(hand, idx))

	if side == SidePlayer {
		next.Lanes[lane].PlayerCards = append(next.Lanes[lane].PlayerCards, card)
	} else {
		next.Lanes[lane].ComputerCards = append(next.Lanes[lane].ComputerCards, card)
	}
	if next.Rules.EconomyEnabled {
		next.setCoins(side, next.Coins(side)-card.Cost)
	}
	next.Lanes = CalculateTrackScores(next.Lanes)
	return next, Accept()
}

func phaseAllowsPlay(phase Phase, side Side) bool {
	if side == SidePlayer {
		return phase == PhasePlaying
	}
	return phase == PhaseComputerTurn
}
