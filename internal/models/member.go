package models

import "fmt"

// Role is a member's permission level on a trip.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

var roleRank = map[Role]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleOwner:  3,
}

// ParseRole validates a role name. An empty name means viewer.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleViewer, nil
	}
	r := Role(s)
	if _, ok := roleRank[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Allows reports whether r grants at least the permissions of required.
func (r Role) Allows(required Role) bool {
	return roleRank[r] >= roleRank[required]
}

// Member represents a person on a trip.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// TripID is the trip this member belongs to.
	TripID string

	// UserID links the member to a registered account. Empty for people
	// tracked on the trip who have no account.
	UserID string

	// DisplayName labels the member in expenses and settlements.
	DisplayName string

	// Role is the member's permission level.
	Role Role

	// JoinedAt is the Unix timestamp when the member was added.
	JoinedAt int64
}
