package model

import "time"

// Roles recognized by the API. Reads require any authenticated role,
// writes require RoleAdmin.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account row in the `users` table. PasswordHash holds
// the bcrypt digest of the password; the plaintext is never stored and the
// hash is never serialized in API responses (note the json:"-" tag).
type User struct {
	ID           string    `json:"id"`        // users.id (UUID)
	Email        string    `json:"email"`     // users.email, unique
	PasswordHash string    `json:"-"`         // users.password
	Role         string    `json:"role"`      // users.role (admin|user)
	CreatedAt    time.Time `json:"createdAt"` // users.created_at
	UpdatedAt    time.Time `json:"updatedAt"` // users.updated_at
}
