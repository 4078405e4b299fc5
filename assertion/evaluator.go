package assertion

import (
	"context"

	"github.com/axent-pl/authz/common"
	"github.com/axent-pl/authz/logx"
)

type AssertionEvaluator struct{}

var _ common.Evaluator = AssertionEvaluator{}

func (e AssertionEvaluator) Kind() common.Kind {
	return common.Assertion
}

// Satisfies reports whether every assertion holds for the principal.
func (e AssertionEvaluator) Satisfies(ctx context.Context, principal common.Principal, requirements []common.Requirement) (bool, error) {
	for _, requirement := range requirements {
		assertionRequirement, ok := requirement.(AssertionRequirement)
		if !ok {
			logx.L().Debug("could not cast Requirement to AssertionRequirement", "context", ctx)
			return false, common.ErrInvalidInput
		}
		if !assertionRequirement.Assert(ctx, principal) {
			logx.L().Debug("assertion not satisfied", "name", assertionRequirement.Name())
			return false, nil
		}
	}
	return true, nil
}
