package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims accepted by the credit service. The subject
// identifies the calling user or client application.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// HasRole reports whether the claims carry role. Admins hold every role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role) || slices.Contains(c.Roles, RoleAdmin)
}

const (
	RoleAdmin       = "admin"
	RoleLoanOfficer = "loan_officer"
	RoleUnderwriter = "underwriter"
	RoleServicing   = "servicing"
	RoleAuditor     = "auditor"
)
