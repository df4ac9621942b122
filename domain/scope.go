package domain

import "strings"

// Scope names a single permission unit, organized as <action>.<resource>.
type Scope string

const (
	ScopeReadProfile     Scope = "read.profile"
	ScopeReadFriends     Scope = "read.friends"
	ScopeReadPosts       Scope = "read.posts"
	ScopeWriteFriends    Scope = "write.friends"
	ScopeWriteFriendship Scope = "write.friendship"
	ScopeWriteApps       Scope = "write.apps"
	ScopeDevAdmin        Scope = "dev.admin"
)

// scopeRegistry is the process-wide catalog of valid scopes, keyed by the
// scope string itself. It is populated once and never mutated.
var scopeRegistry = map[Scope]struct{}{
	ScopeReadProfile:     {},
	ScopeReadFriends:     {},
	ScopeReadPosts:       {},
	ScopeWriteFriends:    {},
	ScopeWriteFriendship: {},
	ScopeWriteApps:       {},
	ScopeDevAdmin:        {},
}

// DefaultLoginScopes is the bundle granted on direct (first-party) login,
// where no authorization code mediates the grant.
func DefaultLoginScopes() []Scope {
	return []Scope{
		ScopeReadFriends,
		ScopeReadProfile,
		ScopeReadPosts,
		ScopeWriteFriendship,
		ScopeWriteApps,
		ScopeWriteFriends,
	}
}

// ResolveScope maps a raw scope string to its registered Scope constant.
func ResolveScope(name string) (Scope, bool) {
	s := Scope(name)
	_, ok := scopeRegistry[s]
	return s, ok
}

// ValidScope reports whether s names a registered scope.
func ValidScope(s Scope) bool {
	_, ok := scopeRegistry[s]
	return ok
}

// ContainsScope reports whether set includes s.
func ContainsScope(set []Scope, s Scope) bool {
	for _, have := range set {
		if have == s {
			return true
		}
	}
	return false
}

// JoinScopes renders a scope set as the comma-separated form used in grant
// responses.
func JoinScopes(set []Scope) string {
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}
