package subject

import (
	"context"

	"github.com/axent-pl/authz/common"
	"github.com/axent-pl/authz/logx"
)

type SubjectEvaluator struct{}

var _ common.Evaluator = SubjectEvaluator{}

func (e SubjectEvaluator) Kind() common.Kind {
	return common.Subject
}

// Satisfies reports whether the principal's subject matches every
// requirement exactly.
func (e SubjectEvaluator) Satisfies(ctx context.Context, principal common.Principal, requirements []common.Requirement) (bool, error) {
	for _, requirement := range requirements {
		subjectRequirement, ok := requirement.(SubjectRequirement)
		if !ok {
			logx.L().Debug("could not cast Requirement to SubjectRequirement", "context", ctx)
			return false, common.ErrInvalidInput
		}
		if principal.Subject != subjectRequirement.subject {
			logx.L().Debug("subject requirement not satisfied", "subject", principal.Subject)
			return false, nil
		}
	}
	return true, nil
}
