package auth

import "errors"

// Role is an operator tier.
type Role string

const (
	// RoleViewer can watch but not play.
	RoleViewer Role = "viewer"

	// RoleOperator plays pads and cues.
	RoleOperator Role = "operator"

	// RoleDirector controls the whole show, including the global pause.
	RoleDirector Role = "director"
)

// ValidRoles lists every role a token may carry.
var ValidRoles = []Role{RoleViewer, RoleOperator, RoleDirector}

// IsValidRole returns true if r is a known role.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrInvalidRole  = errors.New("invalid role")
	ErrForbidden    = errors.New("insufficient permissions")
	ErrWeakSecret   = errors.New("signing secret too short")
)
