package entity

import "time"

// Subscription tiers accepted by the API.
const (
	SubscriptionStarter  = "starter"
	SubscriptionPro      = "pro"
	SubscriptionBusiness = "business"
)

// User is the aggregate root for the auth domain. Password holds a bcrypt
// hash and is never serialized. Token is the single live session token:
// login overwrites it, logout clears it, and the auth middleware compares
// it against the presented bearer token.
type User struct {
	ID                string
	Email             string
	Password          string
	Subscription      string
	Token             *string
	AvatarURL         string
	Verify            bool
	VerificationToken *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PublicProfile is the projection of a user that is safe to return to
// clients: no password hash, no tokens, no internal id.
type PublicProfile struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
	AvatarURL    string `json:"avatarURL,omitempty"`
}

// Public returns the client-facing projection of u.
func (u *User) Public() PublicProfile {
	return PublicProfile{Email: u.Email, Subscription: u.Subscription, AvatarURL: u.AvatarURL}
}
