package roles

import (
	"fmt"

	"github.com/axent-pl/authz/common"
)

// NewRolesRequirement builds a requirement satisfied when the principal holds
// any of the allowed roles under DefaultRoleClaimType.
func NewRolesRequirement(allowedRoles ...string) (RolesRequirement, error) {
	return NewRolesRequirementForClaim(DefaultRoleClaimType, allowedRoles...)
}

// NewRolesRequirementForClaim builds a requirement reading role values from
// claims of the given type.
func NewRolesRequirementForClaim(roleClaimType string, allowedRoles ...string) (RolesRequirement, error) {
	if roleClaimType == "" {
		return RolesRequirement{}, fmt.Errorf("%w: empty role claim type", common.ErrInvalidRequirement)
	}
	if len(allowedRoles) == 0 {
		return RolesRequirement{}, fmt.Errorf("%w: no allowed roles", common.ErrInvalidRequirement)
	}
	allowed := make([]string, len(allowedRoles))
	for i, role := range allowedRoles {
		if role == "" {
			return RolesRequirement{}, fmt.Errorf("%w: empty role", common.ErrInvalidRequirement)
		}
		allowed[i] = role
	}
	return RolesRequirement{
		roleClaimType: roleClaimType,
		allowed:       allowed,
	}, nil
}
