package authz

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/axent-pl/authz/assertion"
	"github.com/axent-pl/authz/common"
	"github.com/axent-pl/authz/policyfile"
)

// Binding ties a resource to requirements, policy names, or both. Resolution
// order is the binding's own requirements first, then the requirements of
// each named policy in the order the names were given.
type Binding struct {
	Requirements []common.Requirement
	Policies     []string
}

// Registry holds named policies and resource bindings. Registration happens
// once at startup; resolution is concurrent and read-only.
type Registry struct {
	mu        sync.RWMutex
	policies  map[string]Policy
	resources map[string]Binding
}

var _ common.RequirementProvider = &Registry{}
var _ common.PolicyProvider = &Registry{}

func NewRegistry() *Registry {
	return &Registry{
		policies:  make(map[string]Policy),
		resources: make(map[string]Binding),
	}
}

// RegisterPolicy stores the policy under its name. Names are unique; a
// second registration fails with ErrPolicyExists.
func (r *Registry) RegisterPolicy(policy Policy) error {
	if policy.name == "" {
		return fmt.Errorf("%w: empty policy name", ErrInvalidPolicy)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.policies[policy.name]; exists {
		return fmt.Errorf("%w: %s", ErrPolicyExists, policy.name)
	}
	r.policies[policy.name] = policy
	return nil
}

// RegisterPolicyFunc registers a single-assertion policy under the given
// name.
func (r *Registry) RegisterPolicyFunc(name string, assert assertion.Assertion) error {
	requirement, err := assertion.NewNamedAssertionRequirement(name, assert)
	if err != nil {
		return err
	}
	policy, err := NewPolicy(name, requirement)
	if err != nil {
		return err
	}
	return r.RegisterPolicy(policy)
}

// Policy returns the policy registered under the name.
func (r *Registry) Policy(name string) (Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	policy, ok := r.policies[name]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %s", ErrPolicyNotFound, name)
	}
	return policy, nil
}

// PolicyNames returns the registered policy names, sorted.
func (r *Registry) PolicyNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// BindResource ties the resource to the binding. Resources bind once; a
// second binding fails with ErrResourceExists. An empty binding is valid and
// makes the resource open to every principal.
func (r *Registry) BindResource(resource string, binding Binding) error {
	if resource == "" {
		return fmt.Errorf("%w: empty resource", common.ErrInvalidInput)
	}
	stored := Binding{
		Requirements: make([]common.Requirement, len(binding.Requirements)),
		Policies:     make([]string, len(binding.Policies)),
	}
	for i, requirement := range binding.Requirements {
		if requirement == nil {
			return fmt.Errorf("%w: nil requirement for resource %q", ErrInvalidRequirement, resource)
		}
		stored.Requirements[i] = requirement
	}
	for i, name := range binding.Policies {
		if name == "" {
			return fmt.Errorf("%w: empty policy name for resource %q", ErrInvalidPolicy, resource)
		}
		stored.Policies[i] = name
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.resources[resource]; exists {
		return fmt.Errorf("%w: %s", ErrResourceExists, resource)
	}
	r.resources[resource] = stored
	return nil
}

// RequirementsFor resolves the resource's binding to the full ordered
// requirement list. Unknown resources fail with ErrResourceNotBound; a
// binding naming an unregistered policy fails with ErrPolicyNotFound.
func (r *Registry) RequirementsFor(ctx context.Context, resource string) ([]common.Requirement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	binding, ok := r.resources[resource]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotBound, resource)
	}
	requirements := make([]common.Requirement, 0, len(binding.Requirements))
	requirements = append(requirements, binding.Requirements...)
	for _, name := range binding.Policies {
		policy, ok := r.policies[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s (resource %q)", ErrPolicyNotFound, name, resource)
		}
		requirements = append(requirements, policy.requirements...)
	}
	return requirements, nil
}

// PolicyRequirements resolves a policy name to its requirement list.
func (r *Registry) PolicyRequirements(ctx context.Context, name string) ([]common.Requirement, error) {
	policy, err := r.Policy(name)
	if err != nil {
		return nil, err
	}
	return policy.Requirements(), nil
}

// LoadDocument registers every policy and resource binding the document
// declares. Registrations made before a failing entry remain in place.
func (r *Registry) LoadDocument(document policyfile.Document) error {
	for _, policyDef := range document.Policies {
		requirements, err := policyfile.BuildRequirements(policyDef.Requirements)
		if err != nil {
			return fmt.Errorf("policy %q: %w", policyDef.Name, err)
		}
		policy, err := NewPolicy(policyDef.Name, requirements...)
		if err != nil {
			return err
		}
		if err := r.RegisterPolicy(policy); err != nil {
			return err
		}
	}
	for _, resourceDef := range document.Resources {
		requirements, err := policyfile.BuildRequirements(resourceDef.Requirements)
		if err != nil {
			return fmt.Errorf("resource %q: %w", resourceDef.Resource, err)
		}
		binding := Binding{Requirements: requirements, Policies: resourceDef.Policies}
		if err := r.BindResource(resourceDef.Resource, binding); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile reads a policy document from disk and loads it.
func (r *Registry) LoadFile(path string) error {
	document, err := policyfile.Load(path)
	if err != nil {
		return err
	}
	return r.LoadDocument(document)
}
