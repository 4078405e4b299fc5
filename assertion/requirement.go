package assertion

import (
	"context"

	"github.com/axent-pl/authz/common"
)

// Assertion is a caller-supplied predicate over the principal. Assertions
// must be pure with respect to their inputs; they run on every check.
type Assertion func(ctx context.Context, principal common.Principal) bool

// AssertionRequirement wraps an assertion so it can be declared alongside
// other requirement kinds.
type AssertionRequirement struct {
	name   string
	assert Assertion
}

var _ common.Requirement = AssertionRequirement{}

func (r AssertionRequirement) Kind() common.Kind {
	return common.Assertion
}

func (r AssertionRequirement) Name() string {
	return r.name
}

// Assert runs the wrapped assertion. A zero-value requirement asserts false.
func (r AssertionRequirement) Assert(ctx context.Context, principal common.Principal) bool {
	if r.assert == nil {
		return false
	}
	return r.assert(ctx, principal)
}
