package domain

// CalculateTrackScores recomputes every lane's scores and winner. The input is not modified.
func CalculateTrackScores(lanes [LaneCount]Lane) [LaneCount]Lane {
	out := lanes
	for i := range out {
		out[i].PlayerScore = SumValues(out[i].PlayerCards)
		out[i].ComputerScore = SumValues(out[i].ComputerCards)
		out[i].Winner = laneWinner(out[i].PlayerScore, out[i].ComputerScore)
	}
	return out
}

// laneWinner: a tie needs equal, non-zero scores; 0-0 has no winner yet.
func laneWinner(playerScore, computerScore int) Winner {
	switch {
	case playerScore > computerScore:
		return WinnerPlayer
	case computerScore > playerScore:
		return WinnerComputer
	case playerScore > 0:
		return WinnerTie
	default:
		return WinnerNone
	}
}

// LaneWins counts lanes won outright by each side.
func LaneWins(lanes [LaneCount]Lane) (player, computer int) {
	for _, lane := range lanes {
		switch lane.Winner {
		case WinnerPlayer:
			player++
		case WinnerComputer:
			computer++
		}
	}
	return player, computer
}

// OverallWinner decides a game that reached its final round without an outright marker win.
func OverallWinner(lanes [LaneCount]Lane, rules Ruleset) Winner {
	player, computer := LaneWins(lanes)
	switch {
	case player > computer:
		return WinnerPlayer
	case computer > player:
		return WinnerComputer
	case player == 0:
		// Nobody took a lane: every lane is tied or empty.
		return WinnerTie
	case rules.PlayerWinsTiebreak:
		return WinnerPlayer
	default:
		return WinnerTie
	}
}
