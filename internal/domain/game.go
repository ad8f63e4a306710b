package domain

import "math/rand"

// InitializeGame deals fresh hands and resets every counter. Safe to call in any phase.
func InitializeGame(rng *rand.Rand, rules Ruleset, catalog Catalog) State {
	s := State{
		Rules:        rules,
		PlayerHand:   DrawCards(rng, catalog, rules, rules.HandSize),
		ComputerHand: DrawCards(rng, catalog, rules, rules.HandSize),
		Round:        1,
		Phase:        PhasePlaying,
		Winner:       WinnerNone,
	}
	s.Lanes = CalculateTrackScores(s.Lanes)
	s.PlayerCoins = CoinAllowance(rules, s.Lanes, SidePlayer)
	s.ComputerCoins = CoinAllowance(rules, s.Lanes, SideComputer)
	return s
}

// ConfirmRound ends the player's placements and hands the turn to the computer.
// Both coin allowances are re-derived from the economy lane; nothing carries over.
func ConfirmRound(s State) (State, Result) {
	if s.Phase != PhasePlaying {
		return s, Reject(ReasonWrongPhase)
	}
	next := s.Clone()
	next.Lanes = CalculateTrackScores(next.Lanes)
	next.PlayerCoins = CoinAllowance(next.Rules, next.Lanes, SidePlayer)
	next.ComputerCoins = CoinAllowance(next.Rules, next.Lanes, SideComputer)
	next.Phase = PhaseComputerTurn
	return next, Accept()
}

// ResolveComputerTurn scores the lanes after the computer's plays and moves the marker.
// An outright marker win ends the game immediately; otherwise the phase stays computer_turn
// until RevealRound.
func ResolveComputerTurn(s State) (State, bool) {
	if s.Phase != PhaseComputerTurn {
		return s, false
	}
	next := s.Clone()
	next.Lanes = CalculateTrackScores(next.Lanes)

	marker, ended := UpdateMarkerPosition(next.Marker, next.Lanes, next.Rules)
	next.Marker = marker
	if ended {
		next.Phase = PhaseGameOver
		next.Winner = MarkerWinner(marker, next.Rules)
		next.Outright = true
	}
	return next, ended
}

// RevealRound moves a resolved computer turn to round_end.
func RevealRound(s State) (State, Result) {
	if s.Phase != PhaseComputerTurn {
		return s, Reject(ReasonWrongPhase)
	}
	next := s.Clone()
	next.Phase = PhaseRoundEnd
	return next, Accept()
}

// NextRound acknowledges round_end: either finishes the game or deals the next round.
func NextRound(rng *rand.Rand, s State, catalog Catalog) (State, Result) {
	if s.Phase != PhaseRoundEnd {
		return s, Reject(ReasonWrongPhase)
	}
	next := s.Clone()
	if next.Round >= next.Rules.MaxRounds {
		next.Phase = PhaseGameOver
		next.Winner = OverallWinner(next.Lanes, next.Rules)
		next.Outright = false
		return next, Accept()
	}

	next.Round++
	next.PlayerHand = append(next.PlayerHand, GenerateCard(rng, catalog, next.Rules))
	next.ComputerHand = append(next.ComputerHand, GenerateCard(rng, catalog, next.Rules))
	next.PlayerCoins = CoinAllowance(next.Rules, next.Lanes, SidePlayer)
	next.ComputerCoins = CoinAllowance(next.Rules, next.Lanes, SideComputer)
	next.Marker.Frozen = false
	next.Phase = PhasePlaying
	return next, Accept()
}
