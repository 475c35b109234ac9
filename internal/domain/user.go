package domain

import "time"

// User is an authenticated account capable of submitting queries and reading
// history. The password is stored only as a bcrypt hash — never in cleartext
// and never serialized into a response.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}
