package common

import "context"

// RequirementProvider resolves a resource name to the ordered requirements
// bound to it. Implementations return ErrResourceNotBound (or a wrapper) for
// resources they know nothing about.
type RequirementProvider interface {
	RequirementsFor(ctx context.Context, resource string) ([]Requirement, error)
}

// PolicyProvider resolves a policy name to the ordered requirements
// registered under it.
type PolicyProvider interface {
	PolicyRequirements(ctx context.Context, name string) ([]Requirement, error)
}

// RequirementProviderSet merges several providers. A resource resolves when
// at least one provider knows it; the merged list keeps provider order.
type RequirementProviderSet struct {
	Providers []RequirementProvider
}

func (s *RequirementProviderSet) RequirementsFor(ctx context.Context, resource string) ([]Requirement, error) {
	var lastErr error
	var resolved bool
	requirements := make([]Requirement, 0)
	for _, provider := range s.Providers {
		providerRequirements, err := provider.RequirementsFor(ctx, resource)
		if err != nil {
			lastErr = err
			continue
		}
		resolved = true
		requirements = append(requirements, providerRequirements...)
	}
	if !resolved {
		if lastErr == nil {
			lastErr = ErrResourceNotBound
		}
		return nil, lastErr
	}
	return requirements, nil
}

var _ RequirementProvider = &RequirementProviderSet{}
