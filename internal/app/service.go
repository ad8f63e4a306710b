package app

import (
	"errors"
	"math/rand"
	"time"

	"partition/internal/bot"
	"partition/internal/domain"
)

// Service contains Partition use-cases operating on domain state.
type Service struct {
	rng     *rand.Rand
	rules   domain.Ruleset
	catalog domain.Catalog
}

// NewService constructs a Service with provided rng or a time-seeded default.
// An empty catalog falls back to the built-in title table.
func NewService(rng *rand.Rand, rules domain.Ruleset, catalog domain.Catalog) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if len(catalog) == 0 {
		catalog = domain.DefaultCatalog()
	}
	return &Service{rng: rng, rules: rules, catalog: catalog}
}

var (
	ErrNoGame        = errors.New("no game in progress")
	ErrNoOpponent    = errors.New("opponent brain not configured")
	ErrNotConfigured = errors.New("service not configured")
)

// Rules returns the ruleset new games are dealt with.
func (s *Service) Rules() domain.Ruleset { return s.rules }

// StartGame deals a fresh game into game, replacing whatever was there.
func (s *Service) StartGame(game *domain.State) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	*game = domain.InitializeGame(s.rng, s.rules, s.catalog)
	return []Event{{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Ruleset: s.rules.Name, Round: game.Round},
	}}, nil
}

// PlayCard places one of the player's cards. A rejection is returned as a domain.RejectReason.
func (s *Service) PlayCard(game *domain.State, cardID string, lane int) ([]Event, error) {
	return s.play(game, domain.SidePlayer, cardID, lane)
}

func (s *Service) play(game *domain.State, side domain.Side, cardID string, lane int) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	hand := game.Hand(side)
	idx := domain.FindCard(hand, cardID)

	next, res := domain.PlayCard(*game, side, cardID, lane)
	if !res.Accepted() {
		return nil, res.Err()
	}
	card := hand[idx]
	*game = next

	return []Event{{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{Side: side, Card: card, Lane: lane},
	}}, nil
}

// ConfirmRound ends the player's placements and runs the opponent's turn synchronously.
// The state is left in computer_turn until RevealRound, or in game_over on an outright win.
func (s *Service) ConfirmRound(game *domain.State, opponent bot.Brain) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	if opponent == nil {
		return nil, ErrNoOpponent
	}

	next, res := domain.ConfirmRound(*game)
	if !res.Accepted() {
		return nil, res.Err()
	}
	*game = next
	events := []Event{{Kind: EventRoundConfirmed, Payload: RoundConfirmedPayload{Round: game.Round}}}

	for _, p := range opponent.ChoosePlays(*game, domain.SideComputer) {
		played, err := s.play(game, domain.SideComputer, p.CardID, p.Lane)
		if err != nil {
			// Rejected proposals are skipped.
			continue
		}
		events = append(events, played...)
	}

	from := game.Marker.Position
	resolved, ended := domain.ResolveComputerTurn(*game)
	*game = resolved

	if game.Marker.Frozen {
		events = append(events, Event{Kind: EventMarkerFrozen, Payload: MarkerPayload{From: from, To: from, Frozen: true}})
	} else if game.Marker.Position != from {
		events = append(events, Event{Kind: EventMarkerMoved, Payload: MarkerPayload{From: from, To: game.Marker.Position}})
	}
	if ended {
		events = append(events, gameEnded(game))
	}
	return events, nil
}

// RevealRound moves a resolved computer turn to round_end.
func (s *Service) RevealRound(game *domain.State) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	next, res := domain.RevealRound(*game)
	if !res.Accepted() {
		return nil, res.Err()
	}
	*game = next
	return []Event{{Kind: EventRoundRevealed, Payload: RoundPayload{Round: game.Round}}}, nil
}

// NextRound acknowledges round_end and either deals the next round or finishes the game.
func (s *Service) NextRound(game *domain.State) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	next, res := domain.NextRound(s.rng, *game, s.catalog)
	if !res.Accepted() {
		return nil, res.Err()
	}
	*game = next

	if game.Phase == domain.PhaseGameOver {
		return []Event{gameEnded(game)}, nil
	}
	return []Event{{Kind: EventRoundStarted, Payload: RoundPayload{Round: game.Round}}}, nil
}

// PlayRound lets a brain take the player's seat for one round, then confirms it.
// Used by the simulator; the match handler drives the player seat from client messages.
func (s *Service) PlayRound(game *domain.State, player, opponent bot.Brain) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	if player == nil {
		return nil, ErrNotConfigured
	}
	var events []Event
	for _, p := range player.ChoosePlays(*game, domain.SidePlayer) {
		played, err := s.PlayCard(game, p.CardID, p.Lane)
		if err != nil {
			continue
		}
		events = append(events, played...)
	}
	confirmed, err := s.ConfirmRound(game, opponent)
	if err != nil {
		return events, err
	}
	return append(events, confirmed...), nil
}

func gameEnded(game *domain.State) Event {
	return Event{
		Kind: EventGameEnded,
		Payload: GameEndedPayload{
			Winner:   game.Winner,
			Outright: game.Outright,
			Round:    game.Round,
			Marker:   game.Marker.Position,
		},
	}
}
