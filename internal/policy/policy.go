// Package policy implements the restricted-user denylist. The set is
// configuration data loaded at startup, never compiled in.
package policy

import "strings"

type Set struct {
	names map[string]struct{}
}

func New(usernames []string) *Set {
	names := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		u = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(u, "@")))
		if u != "" {
			names[u] = struct{}{}
		}
	}
	return &Set{names: names}
}

// IsRestricted reports whether username is denied command access.
// A leading "@" is ignored and matching is case-insensitive.
func (s *Set) IsRestricted(username string) bool {
	username = strings.ToLower(strings.TrimPrefix(username, "@"))
	_, ok := s.names[username]
	return ok
}
