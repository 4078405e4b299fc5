package assertion

import (
	"fmt"

	"github.com/axent-pl/authz/common"
)

// NewAssertionRequirement wraps an anonymous assertion.
func NewAssertionRequirement(assert Assertion) (AssertionRequirement, error) {
	if assert == nil {
		return AssertionRequirement{}, fmt.Errorf("%w: nil assertion", common.ErrInvalidRequirement)
	}
	return AssertionRequirement{assert: assert}, nil
}

// NewNamedAssertionRequirement wraps an assertion under a name, so denials
// can point at the failing assertion.
func NewNamedAssertionRequirement(name string, assert Assertion) (AssertionRequirement, error) {
	if name == "" {
		return AssertionRequirement{}, fmt.Errorf("%w: empty assertion name", common.ErrInvalidRequirement)
	}
	if assert == nil {
		return AssertionRequirement{}, fmt.Errorf("%w: nil assertion", common.ErrInvalidRequirement)
	}
	return AssertionRequirement{name: name, assert: assert}, nil
}
