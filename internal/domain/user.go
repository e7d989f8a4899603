package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the owner of bets and statistics. Authentication lives in the
// calling layer; the engine only needs a stable identity and a display name.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
