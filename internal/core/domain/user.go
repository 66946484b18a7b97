package domain

import (
	"strings"
	"time"
)

// User models a marketplace user record. The same shape serves two distinct
// purposes: the session identity resolved from the credential, and the
// managed records administered through the user directory. Ownership of the
// data lies with the upstream API; this service only holds transient copies.
type User struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	IsVerified bool      `json:"isVerified,omitempty"`
}

// FullName joins the name fields, tolerating either being empty.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns up to two uppercase initials for avatar display,
// or "??" when no name is set.
func (u User) Initials() string {
	names := strings.Fields(u.FullName())
	switch len(names) {
	case 0:
		return "??"
	case 1:
		if len(names[0]) == 1 {
			return strings.ToUpper(names[0])
		}
		return strings.ToUpper(names[0][:2])
	default:
		first := names[0][:1]
		last := names[len(names)-1][:1]
		return strings.ToUpper(first + last)
	}
}
