package claims

import (
	"context"

	"github.com/axent-pl/authz/common"
	"github.com/axent-pl/authz/logx"
)

type ClaimsEvaluator struct{}

var _ common.Evaluator = ClaimsEvaluator{}

func (e ClaimsEvaluator) Kind() common.Kind {
	return common.Claims
}

// Satisfies reports whether every requirement is met by at least one of the
// principal's claims. An empty requirement list is trivially satisfied.
func (e ClaimsEvaluator) Satisfies(ctx context.Context, principal common.Principal, requirements []common.Requirement) (bool, error) {
	for _, requirement := range requirements {
		claimRequirement, ok := requirement.(ClaimRequirement)
		if !ok {
			logx.L().Debug("could not cast Requirement to ClaimRequirement", "context", ctx)
			return false, common.ErrInvalidInput
		}
		if !claimSatisfies(principal, claimRequirement) {
			logx.L().Debug("claim requirement not satisfied", "claimType", claimRequirement.ClaimType())
			return false, nil
		}
	}
	return true, nil
}

func claimSatisfies(principal common.Principal, requirement ClaimRequirement) bool {
	requiredValue, exact := requirement.Value()
	for _, claim := range principal.Claims {
		if claim.Type != requirement.ClaimType() {
			continue
		}
		if !exact || claim.Value == requiredValue {
			return true
		}
	}
	return false
}
