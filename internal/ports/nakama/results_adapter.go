package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"

	"partition/internal/ports"
)

// NakamaResultsAdapter stores finished games and pays rewards with one multi-update.
type NakamaResultsAdapter struct {
	nk  runtime.NakamaModule
	now func() time.Time
}

// NewNakamaResultsAdapter creates a new results adapter.
func NewNakamaResultsAdapter(nk runtime.NakamaModule) *NakamaResultsAdapter {
	return &NakamaResultsAdapter{nk: nk, now: time.Now}
}

type storedResult struct {
	MatchID    string `json:"match_id"`
	Ruleset    string `json:"ruleset"`
	Winner     string `json:"winner"`
	Outright   bool   `json:"outright"`
	Rounds     int    `json:"rounds"`
	Marker     int    `json:"marker"`
	Reward     int64  `json:"reward"`
	FinishedAt string `json:"finished_at"`
}

// RecordResult writes the result object and, for a positive reward, the wallet payout.
func (a *NakamaResultsAdapter) RecordResult(ctx context.Context, result ports.GameResult) error {
	if result.UserID == "" {
		return fmt.Errorf("userID is required")
	}
	if result.ID == "" {
		result.ID = uuid.NewString()
	}

	value, err := json.Marshal(storedResult{
		MatchID:    result.MatchID,
		Ruleset:    result.Ruleset,
		Winner:     result.Winner,
		Outright:   result.Outright,
		Rounds:     result.Rounds,
		Marker:     result.Marker,
		Reward:     result.Reward,
		FinishedAt: a.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal game result: %w", err)
	}

	storageWrites := []*runtime.StorageWrite{
		{
			Collection:      resultsCollection,
			Key:             result.ID,
			UserID:          result.UserID,
			Value:           string(value),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}

	var walletUpdates []*runtime.WalletUpdate
	if result.Reward > 0 {
		walletUpdates = append(walletUpdates, &runtime.WalletUpdate{
			UserID:    result.UserID,
			Changeset: map[string]int64{walletCurrency: result.Reward},
			Metadata: map[string]interface{}{
				"reason":    "game_reward",
				"match_id":  result.MatchID,
				"result_id": result.ID,
			},
		})
	}

	if _, _, err := a.nk.MultiUpdate(ctx, nil, storageWrites, nil, walletUpdates, true); err != nil {
		return fmt.Errorf("failed to record game result: %w", err)
	}
	return nil
}

var _ ports.ResultsPort = (*NakamaResultsAdapter)(nil)
