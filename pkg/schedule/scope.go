package schedule

import (
	"fmt"
	"strings"
)

// ScopeKind selects whose schedule a view shows.
type ScopeKind string

const (
	// ScopeSelf is the signed-in user's own schedule (the main view).
	ScopeSelf ScopeKind = "self"
	// ScopeMember is a share contact's schedule (the shared view).
	ScopeMember ScopeKind = "member"
)

// Scope identifies the schedule owner for fetches.
type Scope struct {
	Kind     ScopeKind
	MemberID string
}

// Self returns the main-view scope.
func Self() Scope {
	return Scope{Kind: ScopeSelf}
}

// Member returns the shared-view scope for the given member.
func Member(id string) Scope {
	return Scope{Kind: ScopeMember, MemberID: strings.TrimSpace(id)}
}

// Shared reports whether the scope looks at another member's schedule.
func (s Scope) Shared() bool {
	return s.Kind == ScopeMember
}

// Validate rejects member scopes with no member id.
func (s Scope) Validate() error {
	switch s.Kind {
	case ScopeSelf, "":
		return nil
	case ScopeMember:
		if s.MemberID == "" {
			return fmt.Errorf("schedule: member scope requires a member id")
		}
		return nil
	default:
		return fmt.Errorf("schedule: unknown scope %q", s.Kind)
	}
}

// Resolve returns the member id to query, using self for the main view.
func (s Scope) Resolve(self string) string {
	if s.Shared() {
		return s.MemberID
	}
	return self
}

func (s Scope) String() string {
	if s.Shared() {
		return "member/" + s.MemberID
	}
	return string(ScopeSelf)
}
