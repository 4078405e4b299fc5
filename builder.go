package authz

import (
	"errors"
	"fmt"

	"github.com/axent-pl/authz/assertion"
	"github.com/axent-pl/authz/claims"
	"github.com/axent-pl/authz/common"
	"github.com/axent-pl/authz/roles"
	"github.com/axent-pl/authz/subject"
)

// PolicyBuilder accumulates requirements for one named policy. Construction
// errors are collected and reported together by Build, so calls chain
// without per-step error handling.
type PolicyBuilder struct {
	name         string
	requirements []common.Requirement
	errs         []error
}

func NewPolicyBuilder(name string) *PolicyBuilder {
	return &PolicyBuilder{name: name}
}

// RequireClaim demands a claim of the given type with any value.
func (b *PolicyBuilder) RequireClaim(claimType string) *PolicyBuilder {
	requirement, err := claims.NewClaimRequirement(claimType)
	return b.add(requirement, err)
}

// RequireClaimValue demands a claim matching type and value exactly.
func (b *PolicyBuilder) RequireClaimValue(claimType string, value string) *PolicyBuilder {
	requirement, err := claims.NewClaimRequirementWithValue(claimType, value)
	return b.add(requirement, err)
}

// RequireRole demands any of the allowed roles under the default role claim
// type.
func (b *PolicyBuilder) RequireRole(allowedRoles ...string) *PolicyBuilder {
	requirement, err := roles.NewRolesRequirement(allowedRoles...)
	return b.add(requirement, err)
}

// RequireRoleForClaim demands any of the allowed roles carried as claims of
// the given type.
func (b *PolicyBuilder) RequireRoleForClaim(roleClaimType string, allowedRoles ...string) *PolicyBuilder {
	requirement, err := roles.NewRolesRequirementForClaim(roleClaimType, allowedRoles...)
	return b.add(requirement, err)
}

// RequireSubject demands one specific principal.
func (b *PolicyBuilder) RequireSubject(s common.SubjectID) *PolicyBuilder {
	requirement, err := subject.NewSubjectRequirement(s)
	return b.add(requirement, err)
}

// RequireAssertion demands that the given predicate holds.
func (b *PolicyBuilder) RequireAssertion(assert assertion.Assertion) *PolicyBuilder {
	requirement, err := assertion.NewAssertionRequirement(assert)
	return b.add(requirement, err)
}

// Require appends prebuilt requirements.
func (b *PolicyBuilder) Require(requirements ...common.Requirement) *PolicyBuilder {
	for _, requirement := range requirements {
		if requirement == nil {
			b.errs = append(b.errs, fmt.Errorf("%w: nil requirement", common.ErrInvalidRequirement))
			continue
		}
		b.requirements = append(b.requirements, requirement)
	}
	return b
}

func (b *PolicyBuilder) add(requirement common.Requirement, err error) *PolicyBuilder {
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.requirements = append(b.requirements, requirement)
	return b
}

// Build returns the policy, or every construction error collected so far.
func (b *PolicyBuilder) Build() (Policy, error) {
	if len(b.errs) > 0 {
		return Policy{}, errors.Join(b.errs...)
	}
	return NewPolicy(b.name, b.requirements...)
}
