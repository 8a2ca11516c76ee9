package models

// Role is the marketplace role attached to a user account.
type Role string

const (
	RoleCreative Role = "creative"
	RoleClient   Role = "client"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCreative, RoleClient, RoleAdmin:
		return true
	}
	return false
}

// Registrable reports whether r may be chosen at sign-up. Admins are provisioned out of band.
func (r Role) Registrable() bool {
	return r == RoleCreative || r == RoleClient
}
