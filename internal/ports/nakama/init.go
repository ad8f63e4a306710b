package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"partition/internal/app"
	"partition/internal/bot"
	"partition/internal/config"
)

// InitModule wires RPCs, hooks and the match handler for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	configPath := envOrDefault(env, EnvConfigPath, defaultConfigPath)
	if err := config.LoadGameConfig(configPath); err != nil {
		logger.Warn("InitModule: Could not load game config %s, using defaults: %v", configPath, err)
	}
	opponentsPath := envOrDefault(env, EnvOpponentsPath, defaultOpponents)
	if err := bot.LoadIdentities(opponentsPath); err != nil {
		logger.Warn("InitModule: Could not load opponent identities %s: %v", opponentsPath, err)
	}
	cfg := config.GetGameConfig()

	receipts := app.NewReceiptService(env[EnvReceiptSecret], "")
	if !receipts.Enabled() {
		logger.Warn("InitModule: %s not set, game receipts are disabled.", EnvReceiptSecret)
	}

	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcVerifyReceipt, rpcVerifyReceipt(receipts)); err != nil {
		return err
	}
	if err := initializer.RegisterAfterAuthenticateDevice(afterAuthenticateDevice(cfg.WelcomeBonus)); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNamePartition, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(receipts, NewNakamaResultsAdapter(nk)), nil
	}); err != nil {
		return err
	}

	logger.Info("Partition Go module loaded (ruleset=%s).", cfg.Ruleset)
	return nil
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v := env[key]; v != "" {
		return v
	}
	return fallback
}
