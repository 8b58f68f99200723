package domain

import "time"

// Role is the account type that gates every view affordance.
type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// SelfAssignable reports whether a visitor may pick r when signing up.
func (r Role) SelfAssignable() bool {
	return r == RoleUser || r == RoleOwner
}

// User models an account as returned by the remote API.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Status    Status    `json:"status,omitempty"`
	CreatedOn time.Time `json:"created_on,omitempty"`
	UpdatedOn time.Time `json:"updated_on,omitempty"`
}

func (u User) EntityID() string     { return u.ID }
func (u User) EntityStatus() Status { return u.Status }
func (u User) WithStatus(s Status) User {
	u.Status = s
	return u
}
