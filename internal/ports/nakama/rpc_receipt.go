package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"

	"partition/internal/app"
)

type verifyReceiptRequest struct {
	Receipt string `json:"receipt"`
}

// VerifyReceiptResponse echoes the claims of a valid receipt.
type VerifyReceiptResponse struct {
	ID       string `json:"id"`
	MatchID  string `json:"match_id"`
	UserID   string `json:"user_id"`
	Ruleset  string `json:"ruleset"`
	Winner   string `json:"winner"`
	Outright bool   `json:"outright"`
	Round    int    `json:"round"`
	Marker   int    `json:"marker"`
	IssuedAt int64  `json:"issued_at"`
}

// rpcVerifyReceipt handles {"receipt": "<token>"}.
func rpcVerifyReceipt(receipts *app.ReceiptService) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		if !receipts.Enabled() {
			return "", runtime.NewError("Receipts are not enabled", 9) // FAILED_PRECONDITION
		}

		var req verifyReceiptRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil || req.Receipt == "" {
			return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
		}

		receipt, err := receipts.Verify(req.Receipt)
		if err != nil {
			logger.Debug("verify_receipt: %v", err)
			return "", runtime.NewError("Invalid receipt", 3)
		}

		b, err := json.Marshal(VerifyReceiptResponse{
			ID:       receipt.ID,
			MatchID:  receipt.MatchID,
			UserID:   receipt.UserID,
			Ruleset:  receipt.Ruleset,
			Winner:   string(receipt.Winner),
			Outright: receipt.Outright,
			Round:    receipt.Round,
			Marker:   receipt.Marker,
			IssuedAt: receipt.IssuedAt.Unix(),
		})
		if err != nil {
			return "", runtime.NewError("Internal error", 13) // INTERNAL
		}
		return string(b), nil
	}
}
