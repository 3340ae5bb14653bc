package models

import "time"

// User is an account in the lock-system backend. The password is stored as a
// bcrypt hash; the raw value never leaves the login handler.
type User struct {
	ID           int64     `bson:"userID" json:"userID"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Active       bool      `bson:"active" json:"active"`
	FullName     string    `bson:"fullName,omitempty" json:"fullName,omitempty"`
	PhoneNo      string    `bson:"phoneNo,omitempty" json:"phoneNo,omitempty"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	DepartmentID int64     `bson:"departmentID,omitempty" json:"departmentID,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Identity is the claim payload embedded in an access token. It is immutable
// once a token is signed; a fresh Identity is materialized on every refresh.
type Identity struct {
	UserID   int64  `json:"id"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

// Identity returns the token claim set for this user.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Email: u.Email, FullName: u.FullName}
}
