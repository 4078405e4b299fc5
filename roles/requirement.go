package roles

import (
	"github.com/axent-pl/authz/common"
)

// DefaultRoleClaimType is the claim type role values are read from unless a
// requirement names another one.
const DefaultRoleClaimType = "roles"

// RolesRequirement demands that the principal hold at least one of the
// allowed roles, carried as claims of the role claim type.
type RolesRequirement struct {
	roleClaimType string
	allowed       []string
}

var _ common.Requirement = RolesRequirement{}

func (r RolesRequirement) Kind() common.Kind {
	return common.Roles
}

func (r RolesRequirement) RoleClaimType() string {
	return r.roleClaimType
}

// AllowedRoles returns a copy of the allowed role list.
func (r RolesRequirement) AllowedRoles() []string {
	allowed := make([]string, len(r.allowed))
	copy(allowed, r.allowed)
	return allowed
}
