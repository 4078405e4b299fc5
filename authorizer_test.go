package authz_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	authz "github.com/axent-pl/authz"
	"github.com/axent-pl/authz/audit"
	"github.com/axent-pl/authz/common"
	"github.com/axent-pl/authz/roles"
)

func newTestRegistry(t *testing.T) *authz.Registry {
	t.Helper()
	registry := authz.NewRegistry()

	engineering, err := authz.NewPolicyBuilder("engineering-only").
		RequireClaimValue("Dept", "Eng").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := registry.RegisterPolicy(engineering); err != nil {
		t.Fatalf("RegisterPolicy() error = %v", err)
	}
	if err := registry.RegisterPolicyFunc("has-customer-id", func(ctx context.Context, principal authz.Principal) bool {
		return principal.HasClaim("customer_id")
	}); err != nil {
		t.Fatalf("RegisterPolicyFunc() error = %v", err)
	}

	if err := registry.BindResource("reports:quarterly", authz.Binding{Policies: []string{"engineering-only"}}); err != nil {
		t.Fatalf("BindResource() error = %v", err)
	}
	if err := registry.BindResource("status", authz.Binding{}); err != nil {
		t.Fatalf("BindResource() error = %v", err)
	}
	return registry
}

func TestAuthorize(t *testing.T) {
	authorizer := authz.NewAuthorizer(newTestRegistry(t))

	alice := authz.Principal{Subject: "alice", Claims: []authz.Claim{{Type: "Dept", Value: "Eng"}}}
	bob := authz.Principal{Subject: "bob", Claims: []authz.Claim{{Type: "Dept", Value: "Sales"}}}

	tests := []struct {
		name      string
		principal authz.Principal
		resource  string
		want      bool
	}{
		{name: "satisfied", principal: alice, resource: "reports:quarterly", want: true},
		{name: "not satisfied", principal: bob, resource: "reports:quarterly", want: false},
		{name: "open resource", principal: bob, resource: "status", want: true},
		{name: "open resource, no claims", principal: authz.Principal{}, resource: "status", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := authorizer.Authorize(context.Background(), tt.principal, tt.resource)
			if err != nil {
				t.Fatalf("Authorize() error = %v", err)
			}
			if decision.Allowed != tt.want {
				t.Errorf("Authorize().Allowed = %v, want %v", decision.Allowed, tt.want)
			}
			if !decision.Allowed && decision.Reason == "" {
				t.Error("denial carries no reason")
			}
		})
	}
}

func TestAuthorizeUnknownResource(t *testing.T) {
	authorizer := authz.NewAuthorizer(newTestRegistry(t))
	decision, err := authorizer.Authorize(context.Background(), authz.Principal{Subject: "alice"}, "unknown:resource")
	if !errors.Is(err, authz.ErrResourceNotBound) {
		t.Errorf("Authorize() error = %v, want %v", err, authz.ErrResourceNotBound)
	}
	if decision.Allowed {
		t.Error("Authorize().Allowed = true for unknown resource, want false")
	}
}

func TestAuthorizePolicy(t *testing.T) {
	authorizer := authz.NewAuthorizer(newTestRegistry(t))

	customer := authz.Principal{Subject: "carol", Claims: []authz.Claim{{Type: "customer_id", Value: "c-100"}}}
	decision, err := authorizer.AuthorizePolicy(context.Background(), customer, "has-customer-id")
	if err != nil {
		t.Fatalf("AuthorizePolicy() error = %v", err)
	}
	if !decision.Allowed {
		t.Errorf("AuthorizePolicy().Allowed = false, want true (reason %q)", decision.Reason)
	}

	decision, err = authorizer.AuthorizePolicy(context.Background(), authz.Principal{Subject: "dave"}, "has-customer-id")
	if err != nil {
		t.Fatalf("AuthorizePolicy() error = %v", err)
	}
	if decision.Allowed {
		t.Error("AuthorizePolicy().Allowed = true, want false")
	}

	if _, err := authorizer.AuthorizePolicy(context.Background(), customer, "missing"); !errors.Is(err, authz.ErrPolicyNotFound) {
		t.Errorf("AuthorizePolicy(missing) error = %v, want %v", err, authz.ErrPolicyNotFound)
	}
}

type requirementsOnlyProvider struct{}

func (requirementsOnlyProvider) RequirementsFor(ctx context.Context, resource string) ([]common.Requirement, error) {
	return nil, fmt.Errorf("%w: %s", common.ErrResourceNotBound, resource)
}

func TestAuthorizePolicyWithoutPolicyProvider(t *testing.T) {
	authorizer := authz.NewAuthorizer(requirementsOnlyProvider{})
	_, err := authorizer.AuthorizePolicy(context.Background(), authz.Principal{}, "any")
	if !errors.Is(err, authz.ErrNoPolicyProvider) {
		t.Errorf("AuthorizePolicy() error = %v, want %v", err, authz.ErrNoPolicyProvider)
	}
}

func TestAuthorizeRequirements(t *testing.T) {
	authorizer := authz.NewAuthorizer(nil)

	operators, err := roles.NewRolesRequirementForClaim("realm_access.roles", "operator")
	if err != nil {
		t.Fatalf("NewRolesRequirementForClaim() error = %v", err)
	}
	deptEng, err := authz.NewPolicyBuilder("inline").RequireClaimValue("Dept", "Eng").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	principal := authz.Principal{
		Subject: "alice",
		Claims: []authz.Claim{
			{Type: "Dept", Value: "Eng"},
			{Type: "realm_access.roles", Value: "operator"},
		},
	}

	requirements := append(deptEng.Requirements(), operators)
	decision, err := authorizer.AuthorizeRequirements(context.Background(), principal, requirements...)
	if err != nil {
		t.Fatalf("AuthorizeRequirements() error = %v", err)
	}
	if !decision.Allowed {
		t.Errorf("AuthorizeRequirements().Allowed = false, want true (reason %q)", decision.Reason)
	}

	stranger := authz.Principal{Subject: "bob", Claims: []authz.Claim{{Type: "Dept", Value: "Eng"}}}
	decision, err = authorizer.AuthorizeRequirements(context.Background(), stranger, requirements...)
	if err != nil {
		t.Fatalf("AuthorizeRequirements() error = %v", err)
	}
	if decision.Allowed {
		t.Error("AuthorizeRequirements().Allowed = true, want false")
	}
	if decision.Reason == "" {
		t.Error("denial carries no reason")
	}
}

func TestAuthorizeNilProvider(t *testing.T) {
	authorizer := authz.NewAuthorizer(nil)
	_, err := authorizer.Authorize(context.Background(), authz.Principal{}, "anything")
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("Authorize() error = %v, want %v", err, common.ErrInvalidInput)
	}
}

type customRequirement struct{}

func (customRequirement) Kind() authz.Kind { return authz.Kind("custom") }

type customEvaluator struct {
	allow bool
}

func (e customEvaluator) Kind() authz.Kind { return authz.Kind("custom") }

func (e customEvaluator) Satisfies(ctx context.Context, principal common.Principal, requirements []common.Requirement) (bool, error) {
	return e.allow, nil
}

func TestAuthorizeRequirementsNoEvaluator(t *testing.T) {
	authorizer := authz.NewAuthorizer(nil)
	decision, err := authorizer.AuthorizeRequirements(context.Background(), authz.Principal{}, customRequirement{})
	if !errors.Is(err, authz.ErrNoEvaluator) {
		t.Errorf("AuthorizeRequirements() error = %v, want %v", err, authz.ErrNoEvaluator)
	}
	if decision.Allowed {
		t.Error("AuthorizeRequirements().Allowed = true without an evaluator, want false")
	}
}

func TestWithEvaluator(t *testing.T) {
	authorizer := authz.NewAuthorizer(nil, authz.WithEvaluator(customEvaluator{allow: true}))
	decision, err := authorizer.AuthorizeRequirements(context.Background(), authz.Principal{}, customRequirement{})
	if err != nil {
		t.Fatalf("AuthorizeRequirements() error = %v", err)
	}
	if !decision.Allowed {
		t.Error("AuthorizeRequirements().Allowed = false, want true")
	}
}

func TestWithAuditSink(t *testing.T) {
	var records []audit.Record
	sink := audit.SinkFunc(func(ctx context.Context, record audit.Record) error {
		records = append(records, record)
		return nil
	})
	authorizer := authz.NewAuthorizer(newTestRegistry(t), authz.WithAuditSink(sink))

	alice := authz.Principal{Subject: "alice", Claims: []authz.Claim{{Type: "Dept", Value: "Eng"}}}
	if _, err := authorizer.Authorize(context.Background(), alice, "reports:quarterly"); err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if _, err := authorizer.Authorize(context.Background(), authz.Principal{Subject: "bob"}, "reports:quarterly"); err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].ID == "" || records[0].ID == records[1].ID {
		t.Error("records carry no distinct IDs")
	}
	if records[0].Subject != "alice" || !records[0].Allowed {
		t.Errorf("first record = %+v, want allowed record for alice", records[0])
	}
	if records[1].Subject != "bob" || records[1].Allowed {
		t.Errorf("second record = %+v, want denied record for bob", records[1])
	}
	if records[1].Reason == "" {
		t.Error("denied record carries no reason")
	}
	if records[0].Resource != "reports:quarterly" {
		t.Errorf("record resource = %q, want %q", records[0].Resource, "reports:quarterly")
	}
}

func TestFailingAuditSinkDoesNotChangeDecision(t *testing.T) {
	sink := audit.SinkFunc(func(ctx context.Context, record audit.Record) error {
		return errors.New("sink down")
	})
	authorizer := authz.NewAuthorizer(newTestRegistry(t), authz.WithAuditSink(sink))

	alice := authz.Principal{Subject: "alice", Claims: []authz.Claim{{Type: "Dept", Value: "Eng"}}}
	decision, err := authorizer.Authorize(context.Background(), alice, "reports:quarterly")
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if !decision.Allowed {
		t.Error("Authorize().Allowed = false, want true despite failing sink")
	}
}
