package bettable

const (
	LogMsgBettableCreated = "Bettable created"
	LogMsgBettableDeleted = "Bettable deleted"

	ErrMsgInvalidBettable = "invalid bettable"
	ErrMsgFailedToCreate  = "failed to create bettable"
	ErrMsgFailedToGet     = "failed to get bettable"
	ErrMsgFailedToList    = "failed to list bettables"
	ErrMsgFailedToDelete  = "failed to delete bettable"
	ErrMsgFailedToGetBets = "failed to get bets"
)
