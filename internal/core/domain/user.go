package domain

import (
	"slices"
	"strings"
)

// ProviderDetails is the provider-only part of a User, collected on the
// second signup step.
type ProviderDetails struct {
	Services []string `json:"services"`
	Bio      string   `json:"bio"`
	Price    string   `json:"price"`
}

// User is the session record. Provider is non-nil iff Roles has RoleProvider.
// A User is always replaced as a whole, never patched.
type User struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Roles    RoleSet          `json:"roles"`
	Provider *ProviderDetails `json:"provider"`
}

// HasRole reports whether the user holds r. Safe on a nil receiver.
func (u *User) HasRole(r Role) bool {
	return u != nil && u.Roles.Has(r)
}

// Valid reports whether u could have been produced by a signup: it needs a
// name, an email and at least one role.
func (u *User) Valid() bool {
	return u != nil &&
		strings.TrimSpace(u.Name) != "" &&
		strings.TrimSpace(u.Email) != "" &&
		!u.Roles.IsEmpty()
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Provider != nil {
		p := *u.Provider
		p.Services = slices.Clone(u.Provider.Services)
		c.Provider = &p
	}
	return &c
}
