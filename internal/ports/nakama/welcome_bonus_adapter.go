package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"partition/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	welcomeCollection = "partition_onboarding"
	welcomeKey        = "welcome_coins"
)

// NakamaWelcomeBonusAdapter grants the welcome coins once, guarded by a create-only storage marker.
type NakamaWelcomeBonusAdapter struct {
	nk  runtime.NakamaModule
	now func() time.Time
}

// NewNakamaWelcomeBonusAdapter creates a new welcome bonus adapter.
func NewNakamaWelcomeBonusAdapter(nk runtime.NakamaModule) *NakamaWelcomeBonusAdapter {
	return &NakamaWelcomeBonusAdapter{nk: nk, now: time.Now}
}

type welcomeMarker struct {
	Amount    int64  `json:"amount"`
	GrantedAt string `json:"granted_at"`
}

// GrantWelcomeBonusOnce writes the marker and the wallet change in one multi-update.
// A version conflict on the marker means the coins were already granted.
func (a *NakamaWelcomeBonusAdapter) GrantWelcomeBonusOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("userID is required")
	}
	if amount <= 0 {
		return false, fmt.Errorf("amount must be positive")
	}

	value, err := json.Marshal(welcomeMarker{
		Amount:    amount,
		GrantedAt: a.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal welcome marker: %w", err)
	}

	storageWrites := []*runtime.StorageWrite{{
		Collection:      welcomeCollection,
		Key:             welcomeKey,
		UserID:          userID,
		Value:           string(value),
		Version:         "*",
		PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
		PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
	}}
	walletUpdates := []*runtime.WalletUpdate{{
		UserID:    userID,
		Changeset: map[string]int64{walletCurrency: amount},
		Metadata:  metadata,
	}}

	if _, _, err := a.nk.MultiUpdate(ctx, nil, storageWrites, nil, walletUpdates, true); err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to grant welcome coins: %w", err)
	}
	return true, nil
}

var _ ports.WelcomeBonusPort = (*NakamaWelcomeBonusAdapter)(nil)
