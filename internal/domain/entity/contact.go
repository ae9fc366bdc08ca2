package entity

import "time"

// Contact is a phone-book entry owned by exactly one user. Every read and
// mutation is scoped by Owner so contacts never leak across accounts.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Favorite  bool      `json:"favorite"`
	Owner     string    `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
