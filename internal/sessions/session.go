package sessions

import "time"

// RefreshRecord is the single persisted refresh-token row for a user.
// Logging in overwrites it, logout flips IsRevoked; the row is never deleted,
// so a superseded or revoked token keeps failing validation even while its
// own signature is still good.
type RefreshRecord struct {
	UserID    int64     `bson:"userID" json:"userID"`
	Token     string    `bson:"token" json:"token"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	IsRevoked bool      `bson:"isRevoked" json:"isRevoked"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
