package authz

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/axent-pl/authz/assertion"
	"github.com/axent-pl/authz/audit"
	"github.com/axent-pl/authz/claims"
	"github.com/axent-pl/authz/common"
	"github.com/axent-pl/authz/logx"
	"github.com/axent-pl/authz/roles"
	"github.com/axent-pl/authz/subject"
)

var tracer = otel.Tracer("authz")

// Authorizer answers authorization checks. It resolves requirements through
// the provider, groups them by kind and lets each kind's evaluator decide.
// Every requirement must be satisfied for a check to pass.
type Authorizer struct {
	provider   common.RequirementProvider
	policies   common.PolicyProvider
	evaluators map[common.Kind]common.Evaluator
	sink       audit.Sink
}

type AuthorizerOption func(*Authorizer)

// WithEvaluator registers an evaluator, replacing the default one of its
// kind.
func WithEvaluator(evaluator common.Evaluator) AuthorizerOption {
	return func(a *Authorizer) {
		a.evaluators[evaluator.Kind()] = evaluator
	}
}

// WithAuditSink records every decision to the sink. Sink failures are
// logged and never change the decision.
func WithAuditSink(sink audit.Sink) AuthorizerOption {
	return func(a *Authorizer) {
		a.sink = sink
	}
}

// WithPolicyProvider sets the provider AuthorizePolicy resolves names
// through, when it is not the requirement provider itself.
func WithPolicyProvider(policies common.PolicyProvider) AuthorizerOption {
	return func(a *Authorizer) {
		a.policies = policies
	}
}

// NewAuthorizer builds an authorizer over the provider with the default
// evaluators. The provider may be nil when only AuthorizeRequirements is
// used. When the provider also resolves policy names, AuthorizePolicy works
// out of the box.
func NewAuthorizer(provider common.RequirementProvider, options ...AuthorizerOption) *Authorizer {
	a := &Authorizer{
		provider: provider,
		evaluators: map[common.Kind]common.Evaluator{
			common.Claims:    claims.ClaimsEvaluator{},
			common.Roles:     roles.RolesEvaluator{},
			common.Subject:   subject.SubjectEvaluator{},
			common.Assertion: assertion.AssertionEvaluator{},
		},
	}
	if policies, ok := provider.(common.PolicyProvider); ok {
		a.policies = policies
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Authorize checks the principal against the requirements bound to the
// resource. Unknown resources fail closed with ErrResourceNotBound.
func (a *Authorizer) Authorize(ctx context.Context, principal common.Principal, resource string) (Decision, error) {
	ctx, span := tracer.Start(ctx, "Authorizer.Authorize")
	defer span.End()
	span.SetAttributes(attribute.String("Resource", resource))

	if a.provider == nil {
		return Decision{Reason: "no requirement provider"}, fmt.Errorf("%w: no requirement provider", common.ErrInvalidInput)
	}
	requirements, err := a.provider.RequirementsFor(ctx, resource)
	if err != nil {
		span.RecordError(err)
		decision := Decision{Reason: "requirements not resolved"}
		a.record(ctx, principal, resource, "", decision)
		return decision, err
	}

	decision, err := a.evaluate(ctx, principal, requirements)
	if err != nil {
		span.RecordError(err)
	}
	span.SetAttributes(attribute.Bool("Allowed", decision.Allowed))
	a.record(ctx, principal, resource, "", decision)
	return decision, err
}

// AuthorizePolicy checks the principal against one named policy.
func (a *Authorizer) AuthorizePolicy(ctx context.Context, principal common.Principal, name string) (Decision, error) {
	ctx, span := tracer.Start(ctx, "Authorizer.AuthorizePolicy")
	defer span.End()
	span.SetAttributes(attribute.String("Policy", name))

	if a.policies == nil {
		return Decision{Reason: "no policy provider"}, ErrNoPolicyProvider
	}
	requirements, err := a.policies.PolicyRequirements(ctx, name)
	if err != nil {
		span.RecordError(err)
		decision := Decision{Reason: "policy not resolved"}
		a.record(ctx, principal, "", name, decision)
		return decision, err
	}

	decision, err := a.evaluate(ctx, principal, requirements)
	if err != nil {
		span.RecordError(err)
	}
	span.SetAttributes(attribute.Bool("Allowed", decision.Allowed))
	a.record(ctx, principal, "", name, decision)
	return decision, err
}

// AuthorizeRequirements checks the principal against requirements the
// caller already holds.
func (a *Authorizer) AuthorizeRequirements(ctx context.Context, principal common.Principal, requirements ...common.Requirement) (Decision, error) {
	ctx, span := tracer.Start(ctx, "Authorizer.AuthorizeRequirements")
	defer span.End()

	decision, err := a.evaluate(ctx, principal, requirements)
	if err != nil {
		span.RecordError(err)
	}
	span.SetAttributes(attribute.Bool("Allowed", decision.Allowed))
	a.record(ctx, principal, "", "", decision)
	return decision, err
}

// evaluate groups requirements by kind, keeping first-occurrence order, and
// asks each kind's evaluator. The first unsatisfied group denies.
func (a *Authorizer) evaluate(ctx context.Context, principal common.Principal, requirements []common.Requirement) (Decision, error) {
	var kinds []common.Kind
	grouped := make(map[common.Kind][]common.Requirement)
	for _, requirement := range requirements {
		if requirement == nil {
			return Decision{Reason: "nil requirement"}, fmt.Errorf("%w: nil requirement", common.ErrInvalidInput)
		}
		kind := requirement.Kind()
		if _, seen := grouped[kind]; !seen {
			kinds = append(kinds, kind)
		}
		grouped[kind] = append(grouped[kind], requirement)
	}

	for _, kind := range kinds {
		evaluator, ok := a.evaluators[kind]
		if !ok {
			return Decision{Reason: fmt.Sprintf("no evaluator for kind %s", kind)}, fmt.Errorf("%w: %s", ErrNoEvaluator, kind)
		}
		satisfied, err := evaluator.Satisfies(ctx, principal, grouped[kind])
		if err != nil {
			return Decision{Reason: "evaluation failed"}, err
		}
		if !satisfied {
			return Decision{Reason: fmt.Sprintf("%s requirements not satisfied", kind)}, nil
		}
	}
	return Decision{Allowed: true}, nil
}

func (a *Authorizer) record(ctx context.Context, principal common.Principal, resource string, policy string, decision Decision) {
	if a.sink == nil {
		return
	}
	record := audit.Record{
		ID:       xid.New().String(),
		Time:     time.Now().UTC(),
		Subject:  string(principal.Subject),
		Resource: resource,
		Policy:   policy,
		Allowed:  decision.Allowed,
		Reason:   decision.Reason,
	}
	if err := a.sink.Write(ctx, record); err != nil {
		logx.L().Warn("could not write audit record", "error", err)
	}
}
