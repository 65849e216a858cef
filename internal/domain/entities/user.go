package entities

import "time"

// Role gates what a user may do. Authentication itself is external; requests
// arrive with a verified username+role pair.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User identifies an invoice submitter.
//
// Storage model (DynamoDB):
//   - PK: id (number)
//   - GSI username-index: username
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
