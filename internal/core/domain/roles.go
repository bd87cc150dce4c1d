package domain

import (
	"encoding/json"
	"sort"
)

// RoleSet is an unordered, duplicate-free set of role names. It serializes
// as a sorted JSON array.
type RoleSet map[string]struct{}

// NewRoleSet builds a RoleSet from the given role names.
func NewRoleSet(roles ...string) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		if r != "" {
			s[r] = struct{}{}
		}
	}
	return s
}

// Has reports membership of a single role.
func (s RoleSet) Has(role string) bool {
	_, ok := s[role]
	return ok
}

// Intersects reports whether the two sets share at least one role.
func (s RoleSet) Intersects(other RoleSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for r := range small {
		if _, ok := large[r]; ok {
			return true
		}
	}
	return false
}

// Values returns the roles as a sorted slice.
func (s RoleSet) Values() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

func (s RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *RoleSet) UnmarshalJSON(data []byte) error {
	var roles []string
	if err := json.Unmarshal(data, &roles); err != nil {
		return err
	}
	*s = NewRoleSet(roles...)
	return nil
}
