package engine

// Cascade trigger names, used as metric labels
const (
	TriggerResultChanged = "result_changed"
	TriggerBetPlaced     = "bet_placed"
	TriggerBetUpdated    = "bet_updated"
	TriggerBetDeleted    = "bet_deleted"
)

// Error messages
const (
	ErrMsgBeginCascadeFailed  = "failed to begin cascade: %w"
	ErrMsgCommitCascadeFailed = "failed to commit cascade: %w"
)

// Log messages
const (
	LogMsgResultPropagated = "Result propagated"
	LogMsgBetPropagated    = "Bet change propagated"
	LogMsgCascadeAborted   = "Cascade aborted"
)
