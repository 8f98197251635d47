package entities

import "time"

// Identity is the authenticated caller of a lifecycle operation.
//
// The lifecycle treats it as opaque: only UserID takes part in ownership checks.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

func (i Identity) IsZero() bool { return i.UserID == "" }

// Same reports whether both identities denote the same user.
func (i Identity) Same(other Identity) bool {
	return i.UserID != "" && i.UserID == other.UserID
}

// User is a registered account of the identity provider.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (email-index): email
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Email: u.Email}
}
