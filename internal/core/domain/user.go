package domain

import "time"

// Role is the fixed privilege tier attached to a user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMember   Role = "member"
	RoleMerchant Role = "merchant"
)

// DefaultRole is assigned to every self-registered account.
const DefaultRole = RoleMember

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleMerchant:
		return true
	}
	return false
}

// User models an account owned by the identity subsystem.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	MerchantID   string    `json:"merchant,omitempty"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated,omitempty"`
}
