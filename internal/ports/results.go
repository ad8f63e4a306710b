package ports

import "context"

// GameResult is the persisted summary of one finished game.
type GameResult struct {
	ID       string
	UserID   string
	MatchID  string
	Ruleset  string
	Winner   string
	Outright bool
	Rounds   int
	Marker   int
	// Reward is the coin payout for this game; zero for losses and ties.
	Reward int64
}

// ResultsPort records finished games.
type ResultsPort interface {
	// RecordResult stores the result and pays its reward in one atomic update.
	RecordResult(ctx context.Context, result GameResult) error
}
