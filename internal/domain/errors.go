package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgUserNotFound     = "user not found"
	ErrMsgBettableNotFound = "bettable not found"
	ErrMsgBetNotFound      = "bet not found"

	ErrMsgDuplicateBet      = "bet already exists for this user and bettable"
	ErrMsgDuplicateUsername = "username already taken"

	ErrMsgDeadlinePassed = "betting deadline has passed"

	ErrMsgInvalidScore  = "goal counts must both be set or both be unset"
	ErrMsgInvalidKind   = "operation does not apply to this bettable kind"
	ErrMsgInvalidChoice = "answer is not one of the bettable's choices"

	ErrMsgDatabaseError = "database error"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	ErrUserNotFound     = errors.New(ErrMsgUserNotFound)
	ErrBettableNotFound = errors.New(ErrMsgBettableNotFound)
	ErrBetNotFound      = errors.New(ErrMsgBetNotFound)

	ErrDuplicateBet      = errors.New(ErrMsgDuplicateBet)
	ErrDuplicateUsername = errors.New(ErrMsgDuplicateUsername)

	ErrDeadlinePassed = errors.New(ErrMsgDeadlinePassed)

	ErrInvalidScore  = errors.New(ErrMsgInvalidScore)
	ErrInvalidKind   = errors.New(ErrMsgInvalidKind)
	ErrInvalidChoice = errors.New(ErrMsgInvalidChoice)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
