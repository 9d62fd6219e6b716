package domain

import "time"

const (
	// RoleInvestee is the data-producing role: owns exactly one organization
	// and uploads its revenue datasets.
	RoleInvestee = "investee"
	// RoleInvestor is the data-consuming role: subscribes to organizations
	// and reads their analytics.
	RoleInvestor = "investor"
)

// User models an authenticated actor in the system.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	OrgName      string    `json:"org_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidRole reports whether role is one of the two supported roles.
func ValidRole(role string) bool {
	return role == RoleInvestee || role == RoleInvestor
}
