package ds

import "time"

// Role is informational only; the client never gates behaviour on it.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleMarketplace Role = "marketplace"
)

type User struct {
	ID         string    `json:"id" validate:"required"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
