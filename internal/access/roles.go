// Package access computes, from a session's role, which route subtree
// may be entered and where the user lands by default.
package access

import "strings"

// Role is the server-assigned role of an application user. The set is
// closed; anything else parses to RoleUnknown, which routes exactly like
// an unauthenticated session.
type Role string

const (
	RoleStudent  Role = "STUDENT"
	RoleEmployer Role = "EMPLOYER"
	RoleStaff    Role = "STAFF"
	RoleFaculty  Role = "FACULTY"

	// RoleUnknown is the explicit variant for missing or unrecognized
	// roles; it is never a fallthrough default.
	RoleUnknown Role = ""
)

// ParseRole maps a backend role string onto the closed Role set.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent
	case RoleEmployer:
		return RoleEmployer
	case RoleStaff:
		return RoleStaff
	case RoleFaculty:
		return RoleFaculty
	default:
		return RoleUnknown
	}
}
