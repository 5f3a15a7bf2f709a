package accounts

import "time"

// Account is the public view of a stored account. It never carries
// credential material.
type Account struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the persisted record of the authenticated account.
type Session struct {
	Account
	StartedAt time.Time `json:"startedAt"`
}

// record is the stored form of an account.
type record struct {
	Account
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

// AdminDefaults describes the administrator created on first start.
type AdminDefaults struct {
	Username string
	Email    string
	Password string
}

// DefaultAdmin returns the built-in administrator credentials.
func DefaultAdmin() AdminDefaults {
	return AdminDefaults{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "admin123",
	}
}
