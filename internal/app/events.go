package app

import "partition/internal/domain"

// EventKind identifies emitted game events for Nakama dispatch.
type EventKind string

const (
	EventGameStarted    EventKind = "game_started"
	EventCardPlayed     EventKind = "card_played"
	EventRoundConfirmed EventKind = "round_confirmed"
	EventMarkerMoved    EventKind = "marker_moved"
	EventMarkerFrozen   EventKind = "marker_frozen"
	EventRoundRevealed  EventKind = "round_revealed"
	EventRoundStarted   EventKind = "round_started"
	EventGameEnded      EventKind = "game_ended"
)

// Event is an app event emitted after a state transition.
type Event struct {
	Kind    EventKind
	Payload any
}

type GameStartedPayload struct {
	Ruleset string
	Round   int
}

type CardPlayedPayload struct {
	Side domain.Side
	Card domain.Card
	Lane int
}

type RoundConfirmedPayload struct {
	Round int
}

type MarkerPayload struct {
	From   int
	To     int
	Frozen bool
}

type RoundPayload struct {
	Round int
}

type GameEndedPayload struct {
	Winner   domain.Winner
	Outright bool
	Round    int
	Marker   int
}

// Kinds lists event kinds in order; handy for assertions and logs.
func Kinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Kind)
	}
	return out
}
