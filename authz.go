// Package authz evaluates declared requirements against the claims an
// authenticated principal holds. It takes no part in authentication:
// callers bring a Principal from wherever their identity layer produced
// one (the jwtclaims subpackage maps verified JWT claims into one) and
// ask whether that principal satisfies the requirements bound to a
// resource, registered under a policy name, or passed in directly.
//
// Requirements come in kinds, each implemented by its own subpackage
// (claims, roles, subject, assertion) and evaluated by the matching
// Evaluator. All comparisons are exact and case sensitive.
//
//	registry := authz.NewRegistry()
//	policy, _ := authz.NewPolicyBuilder("engineering-only").
//		RequireClaimValue("Dept", "Eng").
//		Build()
//	_ = registry.RegisterPolicy(policy)
//	_ = registry.BindResource("reports:quarterly", authz.Binding{Policies: []string{"engineering-only"}})
//
//	authorizer := authz.NewAuthorizer(registry)
//	decision, err := authorizer.Authorize(ctx, principal, "reports:quarterly")
package authz

import (
	"errors"

	"github.com/axent-pl/authz/common"
)

type (
	Kind        = common.Kind
	Claim       = common.Claim
	SubjectID   = common.SubjectID
	Principal   = common.Principal
	Requirement = common.Requirement
	Evaluator   = common.Evaluator
)

var (
	ErrInvalidRequirement = common.ErrInvalidRequirement
	ErrResourceNotBound   = common.ErrResourceNotBound
	ErrPolicyNotFound     = common.ErrPolicyNotFound
)

var ErrInvalidPolicy = errors.New("invalid policy")
var ErrPolicyExists = errors.New("policy already registered")
var ErrResourceExists = errors.New("resource already bound")
var ErrNoEvaluator = errors.New("no evaluator for requirement kind")
var ErrNoPolicyProvider = errors.New("no policy provider")

// Decision is the outcome of one authorization check. A denial carries a
// short reason; denials are decisions, not errors.
type Decision struct {
	Allowed bool
	Reason  string
}
