package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when requesting their match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// quickMatchQuery finds Partition matches owned by userID.
func quickMatchQuery(userID string) string {
	return fmt.Sprintf("+label.game:%s +label.owner:%q", labelGame, userID)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Authentication required", 16) // UNAUTHENTICATED
	}

	limit := 1
	authoritative := true
	minSize := 0
	maxSize := 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, quickMatchQuery(userID))
	if err != nil {
		logger.Error("quick_match [User:%s]: MatchList error: %v", userID, err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}

	resp := QuickMatchResponse{}
	if len(matches) > 0 {
		resp.MatchID = matches[0].MatchId
		logger.Debug("quick_match [User:%s]: Resuming match %s", userID, resp.MatchID)
	} else {
		matchID, err := nk.MatchCreate(ctx, MatchNamePartition, map[string]interface{}{"owner": userID})
		if err != nil {
			logger.Error("quick_match [User:%s]: MatchCreate error: %v", userID, err)
			return "", runtime.NewError("Internal error", 13)
		}
		resp.MatchID = matchID
		resp.IsNew = true
		logger.Info("quick_match [User:%s]: Created match %s", userID, matchID)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", runtime.NewError("Internal error", 13)
	}
	return string(b), nil
}
