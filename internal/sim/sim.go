// Package sim plays seeded bot-versus-bot Partition games through the app service.
package sim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/caarlos0/env/v11"
	"github.com/heroiclabs/nakama-common/runtime"

	"partition/internal/app"
	"partition/internal/bot"
	"partition/internal/config"
	"partition/internal/domain"
)

// Settings configures a simulation run from SIM_* environment variables.
type Settings struct {
	Games              int    `env:"SIM_GAMES"               envDefault:"100"`
	Seed               int64  `env:"SIM_SEED"                envDefault:"1"`
	Ruleset            string `env:"SIM_RULESET"             envDefault:"standard"`
	PlayerDifficulty   string `env:"SIM_PLAYER_DIFFICULTY"   envDefault:"standard"`
	OpponentDifficulty string `env:"SIM_OPPONENT_DIFFICULTY" envDefault:"standard"`
	ConfigPath         string `env:"SIM_CONFIG_PATH"`
	LogLevel           string `env:"SIM_LOG_LEVEL"           envDefault:"info"`
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// Tally summarizes a run.
type Tally struct {
	Games        int
	PlayerWins   int
	ComputerWins int
	Ties         int
	Outright     int
	Rounds       int
}

func (t *Tally) add(game domain.State) {
	t.Games++
	t.Rounds += game.Round
	if game.Outright {
		t.Outright++
	}
	switch game.Winner {
	case domain.WinnerPlayer:
		t.PlayerWins++
	case domain.WinnerComputer:
		t.ComputerWins++
	default:
		t.Ties++
	}
}

// Run plays s.Games games with cfg's catalog and the ruleset named in s.
// The same settings and config always produce the same tally.
func Run(ctx context.Context, s Settings, cfg *config.GameConfig, logger runtime.Logger) (Tally, error) {
	if s.Games <= 0 {
		return Tally{}, fmt.Errorf("games must be positive, got %d", s.Games)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	resolved := *cfg
	if s.Ruleset != "" {
		resolved.Ruleset = s.Ruleset
	}
	rules, err := resolved.Rules()
	if err != nil {
		return Tally{}, err
	}

	rng := rand.New(rand.NewSource(s.Seed))
	player, err := bot.NewBrain(bot.Difficulty(s.PlayerDifficulty), rng)
	if err != nil {
		return Tally{}, fmt.Errorf("player brain: %w", err)
	}
	opponent, err := bot.NewBrain(bot.DifficultyForRules(bot.Difficulty(s.OpponentDifficulty), rules), rng)
	if err != nil {
		return Tally{}, fmt.Errorf("opponent brain: %w", err)
	}
	service := app.NewService(rng, rules, resolved.Catalog)

	var tally Tally
	for i := 0; i < s.Games; i++ {
		if err := ctx.Err(); err != nil {
			return tally, err
		}
		game, err := playGame(service, player, opponent)
		if err != nil {
			return tally, fmt.Errorf("game %d: %w", i+1, err)
		}
		tally.add(game)
		logger.WithFields(map[string]interface{}{
			"game":     i + 1,
			"winner":   string(game.Winner),
			"outright": game.Outright,
			"round":    game.Round,
		}).Debug("Game finished with marker at %d", game.Marker.Position)
	}

	logger.Info("Simulated %d %s games: player=%d computer=%d tie=%d outright=%d avg_rounds=%.2f",
		tally.Games, rules.Name, tally.PlayerWins, tally.ComputerWins, tally.Ties, tally.Outright,
		float64(tally.Rounds)/float64(tally.Games))
	return tally, nil
}

func playGame(service *app.Service, player, opponent bot.Brain) (domain.State, error) {
	game := &domain.State{}
	if _, err := service.StartGame(game); err != nil {
		return domain.State{}, err
	}

	maxRounds := service.Rules().MaxRounds
	for round := 0; round <= maxRounds; round++ {
		if _, err := service.PlayRound(game, player, opponent); err != nil {
			return *game, err
		}
		if game.Phase == domain.PhaseGameOver {
			return *game, nil
		}
		if _, err := service.RevealRound(game); err != nil {
			return *game, err
		}
		if _, err := service.NextRound(game); err != nil {
			return *game, err
		}
		if game.Phase == domain.PhaseGameOver {
			return *game, nil
		}
	}
	return *game, fmt.Errorf("game did not finish within %d rounds", maxRounds)
}
