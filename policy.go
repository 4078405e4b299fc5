package authz

import (
	"fmt"

	"github.com/axent-pl/authz/common"
)

// Policy is a named, ordered list of requirements. Policies are immutable
// once built; registering one under its name makes it available to resource
// bindings and to AuthorizePolicy.
type Policy struct {
	name         string
	requirements []common.Requirement
}

func NewPolicy(name string, requirements ...common.Requirement) (Policy, error) {
	if name == "" {
		return Policy{}, fmt.Errorf("%w: empty policy name", ErrInvalidPolicy)
	}
	reqs := make([]common.Requirement, len(requirements))
	for i, requirement := range requirements {
		if requirement == nil {
			return Policy{}, fmt.Errorf("%w: nil requirement in policy %q", ErrInvalidPolicy, name)
		}
		reqs[i] = requirement
	}
	return Policy{name: name, requirements: reqs}, nil
}

func (p Policy) Name() string {
	return p.name
}

// Requirements returns a copy of the policy's requirement list.
func (p Policy) Requirements() []common.Requirement {
	requirements := make([]common.Requirement, len(p.requirements))
	copy(requirements, p.requirements)
	return requirements
}
