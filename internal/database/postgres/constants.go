package postgres

// Unique-violation SQLSTATE, raised when a second bet for the same
// (user, bettable) pair or a duplicate username is inserted
const pgCodeUniqueViolation = "23505"

const (
	ErrMsgFailedToBeginTx  = "failed to begin transaction"
	ErrMsgFailedToCommitTx = "failed to commit transaction"
)
