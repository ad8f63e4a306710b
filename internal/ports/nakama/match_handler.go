package nakama

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"time"

	"partition/internal/app"
	"partition/internal/bot"
	"partition/internal/config"
	"partition/internal/domain"
	"partition/internal/ports"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for one Partition match.
// A match seats exactly one human (the owner) against the scripted opponent.
type MatchState struct {
	MatchID  string
	OwnerID  string
	Presence runtime.Presence // nil while the owner is disconnected
	Tick     int64

	App      *app.Service
	Game     *domain.State // nil until the first start request
	Opponent *bot.Agent

	Receipts  *app.ReceiptService
	Results   ports.ResultsPort
	WinReward int64

	RevealDelay int64 // ticks between the computer's plays and round_end
	RevealAt    int64 // tick at which the pending reveal fires; 0 when none is pending
	EmptySince  int64 // tick the match became empty; 0 while the owner is connected
}

type matchHandler struct {
	receipts *app.ReceiptService
	results  ports.ResultsPort
}

func newMatchHandler(receipts *app.ReceiptService, results ports.ResultsPort) *matchHandler {
	return &matchHandler{receipts: receipts, results: results}
}

func newMatchState(matchID, ownerID string, rng *rand.Rand, cfg *config.GameConfig, opponent *bot.Agent) (*MatchState, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	return &MatchState{
		MatchID:     matchID,
		OwnerID:     ownerID,
		App:         app.NewService(rng, rules, cfg.Catalog),
		Opponent:    opponent,
		WinReward:   cfg.WinReward,
		RevealDelay: int64(cfg.RevealDelayTicks),
	}, nil
}

// newOpponent seats identity with the strategy the configured ruleset plays with.
// An identity without a difficulty takes the config's opponent_difficulty.
func newOpponent(identity bot.OpponentIdentity, cfg *config.GameConfig, rng *rand.Rand) (*bot.Agent, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	if identity.Difficulty == "" {
		identity.Difficulty = cfg.OpponentDifficulty
	}
	identity.Difficulty = string(bot.DifficultyForRules(bot.Difficulty(identity.Difficulty), rules))
	return bot.NewAgent(identity, rng)
}

// seedFromParams reads an optional "seed" match parameter, used for reproducible matches.
func seedFromParams(params map[string]interface{}) int64 {
	switch v := params["seed"].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return time.Now().UnixNano()
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	ownerID, _ := params["owner"].(string)
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	rng := rand.New(rand.NewSource(seedFromParams(params)))
	cfg := config.GetGameConfig()

	identity := bot.GetIdentity(rng.Intn(1 << 16))
	opponent, err := newOpponent(identity, cfg, rng)
	if err != nil {
		logger.Error("MatchInit: Failed to create opponent %s: %v", identity.UserID, err)
		return nil, 0, ""
	}

	state, err := newMatchState(matchID, ownerID, rng, cfg, opponent)
	if err != nil {
		logger.Error("MatchInit: Invalid game config: %v", err)
		return nil, 0, ""
	}
	state.Receipts = mh.receipts
	state.Results = mh.results

	label, err := encodeStruct(labelFields(state))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	logger.Debug("MatchInit: owner=%s opponent=%s", ownerID, opponent.Name)
	return state, tickRate, string(label)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if bot.IsOpponent(presence.GetUserId()) {
		return state, false, "reserved account"
	}
	if matchState.OwnerID != "" && presence.GetUserId() != matchState.OwnerID {
		return state, false, "match belongs to another player"
	}
	if matchState.Presence != nil {
		return state, false, "already connected"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if matchState.OwnerID == "" {
			matchState.OwnerID = p.GetUserId()
		}
		if p.GetUserId() != matchState.OwnerID {
			continue
		}
		matchState.Presence = p
		matchState.EmptySince = 0
		logger.Debug("MatchJoin: Owner %s connected.", p.GetUserId())
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, logger, nil)
	return matchState
}

// MatchLeave keeps the game so the owner can resume it through quick_match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		if p.GetUserId() == matchState.OwnerID {
			matchState.Presence = nil
			matchState.EmptySince = tick
			logger.Debug("MatchLeave: Owner %s left at tick %d.", p.GetUserId(), tick)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		mh.handleMessage(ctx, matchState, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), msg.GetData())
	}

	mh.processReveal(ctx, matchState, dispatcher, logger)

	if matchState.Presence == nil {
		if matchState.EmptySince == 0 {
			matchState.EmptySince = tick
		}
		if tick-matchState.EmptySince >= emptyTimeoutTicks {
			logger.Info("MatchLoop: Terminating match %s after %d idle ticks.", matchState.MatchID, emptyTimeoutTicks)
			return nil
		}
	}

	return matchState
}

func (mh *matchHandler) handleMessage(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, opCode int64, data []byte) {
	if senderID != state.OwnerID {
		logger.Warn("MatchLoop: Ignoring message from non-owner %s", senderID)
		return
	}

	switch opCode {
	case OpStartGame:
		mh.handleStartGame(ctx, state, dispatcher, logger)
	case OpPlayCard:
		mh.handlePlayCard(ctx, state, dispatcher, logger, data)
	case OpConfirm:
		mh.handleConfirm(ctx, state, dispatcher, logger)
	case OpNextRound:
		mh.handleNextRound(ctx, state, dispatcher, logger)
	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", opCode)
	}
}

// handleStartGame deals a new game. It doubles as replay from any phase.
func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game := state.Game
	if game == nil {
		game = &domain.State{}
	}

	events, err := state.App.StartGame(game)
	if err != nil {
		mh.sendRejection(state, dispatcher, logger, err)
		return
	}
	state.Game = game
	state.RevealAt = 0

	logger.Info("StartGame: %s started a %s game against %s.", state.OwnerID, game.Rules.Name, opponentName(state))
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, data []byte) {
	request, err := decodePlayCard(data)
	if err != nil {
		logger.Warn("handlePlayCard: %v", err)
		mh.sendRejection(state, dispatcher, logger, err)
		return
	}

	events, err := state.App.PlayCard(state.Game, request.CardID, request.Lane)
	if err != nil {
		logger.Debug("handlePlayCard: %s could not play %s into lane %d: %v", state.OwnerID, request.CardID, request.Lane, err)
		mh.sendRejection(state, dispatcher, logger, err)
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleConfirm(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var brain bot.Brain
	if state.Opponent != nil {
		brain = state.Opponent
	}

	events, err := state.App.ConfirmRound(state.Game, brain)
	if err != nil {
		mh.sendRejection(state, dispatcher, logger, err)
		return
	}

	if state.Game.Phase == domain.PhaseComputerTurn {
		if state.RevealDelay <= 0 {
			revealed, err := state.App.RevealRound(state.Game)
			if err != nil {
				logger.Error("handleConfirm: Immediate reveal failed: %v", err)
			}
			events = append(events, revealed...)
		} else {
			state.RevealAt = state.Tick + state.RevealDelay
		}
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleNextRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	events, err := state.App.NextRound(state.Game)
	if err != nil {
		mh.sendRejection(state, dispatcher, logger, err)
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// processReveal moves a resolved computer turn to round_end once its delay has elapsed.
func (mh *matchHandler) processReveal(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.RevealAt == 0 || state.Tick < state.RevealAt {
		return
	}
	state.RevealAt = 0

	events, err := state.App.RevealRound(state.Game)
	if err != nil {
		logger.Warn("processReveal: %v", err)
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// dispatchEvents pushes the new snapshot and settles a finished game.
func (mh *matchHandler) dispatchEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastSnapshot(state, dispatcher, logger, events)

	for _, ev := range events {
		if ev.Kind == app.EventGameEnded {
			mh.finishGame(ctx, state, dispatcher, logger)
		}
	}
}

// finishGame signs a receipt, records the result and announces the outcome.
// Storage or wallet failures are logged; the match carries on.
func (mh *matchHandler) finishGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game := state.Game
	receipt := app.NewReceipt(state.MatchID, state.OwnerID, *game)
	receipt.ID = uuid.NewString()

	var token string
	if state.Receipts.Enabled() {
		signed, err := state.Receipts.Sign(receipt)
		if err != nil {
			logger.Error("finishGame: Failed to sign receipt: %v", err)
		} else {
			token = signed
		}
	}

	if state.Results != nil {
		var reward int64
		if game.Winner == domain.WinnerPlayer {
			reward = state.WinReward
		}
		err := state.Results.RecordResult(ctx, ports.GameResult{
			ID:       receipt.ID,
			UserID:   state.OwnerID,
			MatchID:  state.MatchID,
			Ruleset:  game.Rules.Name,
			Winner:   string(game.Winner),
			Outright: game.Outright,
			Rounds:   game.Round,
			Marker:   game.Marker.Position,
			Reward:   reward,
		})
		if err != nil {
			logger.Error("finishGame: Failed to record result for %s: %v", state.OwnerID, err)
		}
	}

	data, err := encodeStruct(gameEndedFields(game, token))
	if err != nil {
		logger.Error("finishGame: Failed to marshal game ended: %v", err)
		return
	}
	logger.Info("finishGame: %s game over, winner=%s outright=%t round=%d", state.MatchID, game.Winner, game.Outright, game.Round)
	if err := dispatcher.BroadcastMessage(OpGameEnded, data, nil, nil, true); err != nil {
		logger.Error("finishGame: Failed to broadcast: %v", err)
	}
}

func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	data, err := encodeStruct(snapshotFields(state, events))
	if err != nil {
		logger.Error("broadcastSnapshot: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpSnapshot, data, nil, nil, true); err != nil {
		logger.Error("broadcastSnapshot: Failed to broadcast: %v", err)
	}
}

// sendRejection reports a refused action to the owner only.
func (mh *matchHandler) sendRejection(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, cause error) {
	code := rejectionCode(cause)
	data, err := encodeStruct(rejectionFields(code, cause.Error()))
	if err != nil {
		logger.Error("sendRejection: Failed to marshal: %v", err)
		return
	}
	if state.Presence == nil {
		logger.Warn("sendRejection: Owner %s not connected, dropping %s", state.OwnerID, code)
		return
	}
	if err := dispatcher.BroadcastMessage(OpRejected, data, []runtime.Presence{state.Presence}, nil, true); err != nil {
		logger.Error("sendRejection: Failed to send: %v", err)
	}
}

func rejectionCode(err error) string {
	var reason domain.RejectReason
	switch {
	case errors.As(err, &reason):
		return string(reason)
	case errors.Is(err, app.ErrNoGame):
		return "no_game"
	case errors.Is(err, app.ErrNoOpponent), errors.Is(err, app.ErrNotConfigured):
		return "not_configured"
	default:
		return "bad_request"
	}
}

func opponentName(state *MatchState) string {
	if state.Opponent == nil {
		return "nobody"
	}
	return state.Opponent.Name
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := encodeStruct(labelFields(state))
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(label)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated, grace %d seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
