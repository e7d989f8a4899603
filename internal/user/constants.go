package user

const (
	// MaxUsernameLength bounds usernames at registration
	MaxUsernameLength = 50

	LogMsgUserRegistered = "User registered"

	ErrMsgInvalidUsername    = "invalid username"
	ErrMsgFailedToCreateUser = "failed to create user"
	ErrMsgFailedToGetUser    = "failed to get user"
	ErrMsgFailedToListUsers  = "failed to list users"
	ErrMsgFailedToGetBets    = "failed to get user bets"
)
