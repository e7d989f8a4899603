package concurrency

import "github.com/google/uuid"

// Lock key builders. Every writer of a resource must build its key the
// same way, so the builders live here rather than in any one service.
// "bettable:" sorts before "stats:", which gives LockOrdered callers a
// global bettable-before-user acquisition order.

// BettableKey names the lock serializing cascades on one bettable
func BettableKey(bettableID uuid.UUID) string {
	return "bettable:" + bettableID.String()
}

// UserStatsKey names the lock serializing statistics writes for one user
func UserStatsKey(userID uuid.UUID) string {
	return "stats:" + userID.String()
}
