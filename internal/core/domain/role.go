package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is a capability a user signs up with.
type Role string

const (
	RoleProvider Role = "provider"
	RoleClient   Role = "client"
)

// knownRoles fixes both the set of valid roles and their serialisation order.
var knownRoles = []Role{RoleProvider, RoleClient}

func (r Role) bit() RoleSet {
	for i, k := range knownRoles {
		if k == r {
			return 1 << i
		}
	}
	return 0
}

// ParseRole converts a raw role name into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r.bit() == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// RoleSet is a value-type set of roles. The zero value is the empty set.
type RoleSet uint8

// NewRoleSet builds a set from the given roles; unknown roles are ignored.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s = s.Add(r)
	}
	return s
}

// ParseRoleSet parses role names, rejecting anything outside the known roles.
func ParseRoleSet(names []string) (RoleSet, error) {
	var s RoleSet
	for _, n := range names {
		r, err := ParseRole(n)
		if err != nil {
			return 0, err
		}
		s = s.Add(r)
	}
	return s, nil
}

func (s RoleSet) Has(r Role) bool       { b := r.bit(); return b != 0 && s&b != 0 }
func (s RoleSet) Add(r Role) RoleSet    { return s | r.bit() }
func (s RoleSet) Remove(r Role) RoleSet { return s &^ r.bit() }
func (s RoleSet) IsEmpty() bool         { return s == 0 }

// Toggle flips membership of r.
func (s RoleSet) Toggle(r Role) RoleSet {
	if s.Has(r) {
		return s.Remove(r)
	}
	return s.Add(r)
}

// Only reports whether r is the single member of the set.
func (s RoleSet) Only(r Role) bool {
	return s.Has(r) && s.Len() == 1
}

func (s RoleSet) Len() int {
	n := 0
	for _, r := range knownRoles {
		if s.Has(r) {
			n++
		}
	}
	return n
}

// Slice returns the members in canonical order (provider, client).
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(knownRoles))
	for _, r := range knownRoles {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s RoleSet) String() string {
	parts := make([]string, 0, len(knownRoles))
	for _, r := range s.Slice() {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ",")
}

// MarshalJSON encodes the set as an array of role names.
func (s RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON decodes an array of role names. Unknown names are dropped so a
// stored record written by a newer build still loads.
func (s *RoleSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out RoleSet
	for _, n := range names {
		if r, err := ParseRole(n); err == nil {
			out = out.Add(r)
		}
	}
	*s = out
	return nil
}
