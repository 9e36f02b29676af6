package model

import "time"

// Roles carried in the `role` claim of access tokens.
const (
	RoleAdmin       = "ADMIN"
	RoleFacilitator = "FACILITATOR"
)

// Admin represents a back-office operator account.
//
// Fields:
//   - ID: primary key (uuid string)
//   - Email: unique login
//   - PasswordHash: bcrypt hash, never serialised
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Subscriber is a newsletter subscription.
type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
