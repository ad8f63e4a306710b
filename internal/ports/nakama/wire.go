package nakama

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"partition/internal/app"
	"partition/internal/domain"
)

// playCardRequest is the decoded op 2 payload.
type playCardRequest struct {
	CardID string
	Lane   int
}

func decodePlayCard(data []byte) (playCardRequest, error) {
	msg := &structpb.Struct{}
	if err := protojson.Unmarshal(data, msg); err != nil {
		return playCardRequest{}, fmt.Errorf("invalid play request: %w", err)
	}
	fields := msg.GetFields()

	cardID := fields["card_id"].GetStringValue()
	if cardID == "" {
		return playCardRequest{}, fmt.Errorf("invalid play request: card_id is required")
	}
	laneValue, ok := fields["lane"]
	if !ok {
		return playCardRequest{}, fmt.Errorf("invalid play request: lane is required")
	}
	if _, isNumber := laneValue.GetKind().(*structpb.Value_NumberValue); !isNumber {
		return playCardRequest{}, fmt.Errorf("invalid play request: lane must be a number")
	}
	lane := laneValue.GetNumberValue()
	if lane != float64(int(lane)) {
		return playCardRequest{}, fmt.Errorf("invalid play request: lane must be an integer")
	}
	return playCardRequest{CardID: cardID, Lane: int(lane)}, nil
}

// encodeStruct marshals a plain map as a protojson google.protobuf.Struct.
func encodeStruct(fields map[string]interface{}) ([]byte, error) {
	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build struct: %w", err)
	}
	return protojson.Marshal(msg)
}

func cardFields(c domain.Card) map[string]interface{} {
	return map[string]interface{}{
		"id":    c.ID,
		"title": c.Title,
		"value": c.Value,
		"cost":  c.Cost,
		"lane":  c.Lane,
	}
}

func cardList(cards []domain.Card) []interface{} {
	out := make([]interface{}, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardFields(c))
	}
	return out
}

// snapshotFields renders the player's view of the game. The computer's hand is reduced to a count.
func snapshotFields(state *MatchState, events []app.Event) map[string]interface{} {
	out := map[string]interface{}{
		"tick": state.Tick,
	}
	if state.Opponent != nil {
		out["opponent"] = map[string]interface{}{
			"user_id":      state.Opponent.ID,
			"display_name": state.Opponent.Name,
		}
	}

	kinds := make([]interface{}, 0, len(events))
	for _, k := range app.Kinds(events) {
		kinds = append(kinds, string(k))
	}
	out["events"] = kinds

	game := state.Game
	if game == nil {
		out["phase"] = "lobby"
		return out
	}

	lanes := make([]interface{}, 0, domain.LaneCount)
	for i, lane := range game.Lanes {
		lanes = append(lanes, map[string]interface{}{
			"index":          i,
			"name":           domain.LaneName(i),
			"player_cards":   cardList(lane.PlayerCards),
			"computer_cards": cardList(lane.ComputerCards),
			"player_score":   lane.PlayerScore,
			"computer_score": lane.ComputerScore,
			"winner":         string(lane.Winner),
		})
	}

	out["phase"] = string(game.Phase)
	out["ruleset"] = game.Rules.Name
	out["round"] = game.Round
	out["max_rounds"] = game.Rules.MaxRounds
	out["player_coins"] = game.PlayerCoins
	out["computer_coins"] = game.ComputerCoins
	out["player_hand"] = cardList(game.PlayerHand)
	out["computer_hand_size"] = len(game.ComputerHand)
	out["lanes"] = lanes
	out["marker"] = map[string]interface{}{
		"position": game.Marker.Position,
		"frozen":   game.Marker.Frozen,
		"limit":    game.Rules.MarkerLimit,
	}
	out["winner"] = string(game.Winner)
	out["outright"] = game.Outright
	return out
}

func rejectionFields(code, reason string) map[string]interface{} {
	return map[string]interface{}{
		"code":   code,
		"reason": reason,
	}
}

func gameEndedFields(game *domain.State, receipt string) map[string]interface{} {
	return map[string]interface{}{
		"winner":   string(game.Winner),
		"outright": game.Outright,
		"receipt":  receipt,
	}
}

func labelFields(state *MatchState) map[string]interface{} {
	phase := "lobby"
	if state.Game != nil {
		phase = string(state.Game.Phase)
	}
	return map[string]interface{}{
		"game":  labelGame,
		"open":  state.Presence == nil,
		"owner": state.OwnerID,
		"phase": phase,
	}
}
