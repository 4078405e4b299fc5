package roles

import (
	"context"

	"github.com/axent-pl/authz/common"
	"github.com/axent-pl/authz/logx"
)

type RolesEvaluator struct{}

var _ common.Evaluator = RolesEvaluator{}

func (e RolesEvaluator) Kind() common.Kind {
	return common.Roles
}

// Satisfies reports whether, for every requirement, the principal holds at
// least one of its allowed roles.
func (e RolesEvaluator) Satisfies(ctx context.Context, principal common.Principal, requirements []common.Requirement) (bool, error) {
	for _, requirement := range requirements {
		rolesRequirement, ok := requirement.(RolesRequirement)
		if !ok {
			logx.L().Debug("could not cast Requirement to RolesRequirement", "context", ctx)
			return false, common.ErrInvalidInput
		}
		if !holdsAnyRole(principal, rolesRequirement) {
			logx.L().Debug("roles requirement not satisfied", "roleClaimType", rolesRequirement.RoleClaimType())
			return false, nil
		}
	}
	return true, nil
}

func holdsAnyRole(principal common.Principal, requirement RolesRequirement) bool {
	for _, claim := range principal.Claims {
		if claim.Type != requirement.roleClaimType {
			continue
		}
		for _, role := range requirement.allowed {
			if claim.Value == role {
				return true
			}
		}
	}
	return false
}
