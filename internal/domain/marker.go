package domain

// UpdateMarkerPosition applies one round of marker movement and reports an outright win.
// The freeze check runs before any movement.
func UpdateMarkerPosition(m Marker, lanes [LaneCount]Lane, rules Ruleset) (Marker, bool) {
	assembly := lanes[LaneAssembly].Winner
	mutiny := lanes[LaneMutiny].Winner

	if rules.FreezeRuleEnabled && isSplit(assembly, mutiny) {
		m.Frozen = true
		return m, false
	}

	m.Frozen = false
	switch mutiny {
	case WinnerPlayer:
		m.Position++
	case WinnerComputer:
		m.Position--
	}

	return m, MarkerWinner(m, rules) != WinnerNone
}

// MarkerWinner returns the side holding an outright win, or WinnerNone.
func MarkerWinner(m Marker, rules Ruleset) Winner {
	switch {
	case m.Position >= rules.MarkerLimit:
		return WinnerPlayer
	case m.Position <= -rules.MarkerLimit:
		return WinnerComputer
	default:
		return WinnerNone
	}
}

func isSplit(a, b Winner) bool {
	return (a == WinnerPlayer && b == WinnerComputer) || (a == WinnerComputer && b == WinnerPlayer)
}
