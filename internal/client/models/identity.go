// Package models defines the client-side data shapes exchanged with the
// document portal backend.
package models

// RoleRef is a role attached to a user as returned by the backend.
// Only the name is meaningful to the client.
type RoleRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Identity is the authenticated user's profile as returned by /login and /user.
//
// Roles is ordered; the first entry is the canonical role used for all
// capability resolution. Additional roles are ignored.
type Identity struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Roles      []RoleRef   `json:"roles"`
	Department *Department `json:"department,omitempty"`
}

// PrimaryRole returns the name of roles[0], or "" when the identity
// carries no roles.
func (i *Identity) PrimaryRole() string {
	if i == nil || len(i.Roles) == 0 {
		return ""
	}
	return i.Roles[0].Name
}
