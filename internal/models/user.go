package models

// User is the minimal identity record the client keeps next to the access token.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// IsCreative reports whether the user sells services on the marketplace.
func (u User) IsCreative() bool {
	return u.Role == RoleCreative
}
