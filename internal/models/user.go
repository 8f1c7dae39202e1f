package models

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
	RoleGuest UserRole = "guest"
)

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser || r == RoleGuest
}

// UserProfile is keyed by the caller principal issued by the identity provider.
type UserProfile struct {
	Principal string    `json:"principal"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
