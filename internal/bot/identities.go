package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// OpponentIdentity is the persona shown for the scripted opponent.
type OpponentIdentity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "standard"
	AvatarIndex int    `json:"avatar_index"`
}

var (
	identities  []OpponentIdentity
	identityMap map[string]OpponentIdentity
	loadOnce    sync.Once
	loadErr     error
)

// LoadIdentities loads the opponent profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read opponent identities: %w", err)
			return
		}

		parsed, err := ParseIdentities(data)
		if err != nil {
			loadErr = err
			return
		}

		identities = parsed
		identityMap = make(map[string]OpponentIdentity, len(parsed))
		for _, identity := range parsed {
			identityMap[identity.UserID] = identity
		}
	})
	return loadErr
}

// ParseIdentities decodes and validates an identity list.
func ParseIdentities(data []byte) ([]OpponentIdentity, error) {
	var parsed []OpponentIdentity
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal opponent identities: %w", err)
	}
	for i, identity := range parsed {
		if identity.UserID == "" {
			return nil, fmt.Errorf("opponent identity %d: user_id is required", i)
		}
		if _, err := NewBrain(Difficulty(identity.Difficulty), nil); err != nil {
			return nil, fmt.Errorf("opponent identity %s: %w", identity.UserID, err)
		}
	}
	return parsed, nil
}

// GetIdentity returns an identity by index (mod pool size).
// Without a loaded pool it returns a placeholder with no difficulty set.
func GetIdentity(index int) OpponentIdentity {
	if len(identities) == 0 {
		return OpponentIdentity{
			UserID:      fmt.Sprintf("opponent-%d", index),
			DisplayName: fmt.Sprintf("Senator %d", index),
		}
	}
	return identities[poolIndex(index, len(identities))]
}

// poolIndex wraps any index, negative ones included, into [0, n).
func poolIndex(index, n int) int {
	return ((index % n) + n) % n
}

// IsOpponent reports whether the given user ID belongs to the opponent pool.
func IsOpponent(userID string) bool {
	_, ok := identityMap[userID]
	return ok
}
