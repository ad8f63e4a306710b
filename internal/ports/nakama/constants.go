package nakama

const (
	// RpcQuickMatch returns the caller's resumable match, creating one when none exists.
	RpcQuickMatch = "quick_match"
	// RpcVerifyReceipt validates a game receipt and returns its claims.
	RpcVerifyReceipt = "verify_receipt"

	// MatchNamePartition is the authoritative match handler name registered with Nakama.
	MatchNamePartition = "partition_match"

	// labelGame tags match labels so quick_match only finds Partition matches.
	labelGame = "partition"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpPlayCard  int64 = 2
	OpConfirm   int64 = 3
	OpNextRound int64 = 4

	// Server -> Client
	OpSnapshot  int64 = 100
	OpRejected  int64 = 101 // sent to the sender only
	OpGameEnded int64 = 102
)

// Runtime env keys.
const (
	EnvConfigPath     = "partition_config_path"
	EnvOpponentsPath  = "partition_opponents_path"
	EnvReceiptSecret  = "partition_receipt_secret"
	defaultConfigPath = "data/game_config.yaml"
	defaultOpponents  = "data/opponents.json"
)

// Storage.
const (
	resultsCollection = "partition_results"
	walletCurrency    = "coins"
)

const (
	tickRate = 1
	// emptyTimeoutTicks keeps an abandoned match alive for resume before terminating it.
	emptyTimeoutTicks = 300
)
