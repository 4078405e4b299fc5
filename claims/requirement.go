package claims

import (
	"github.com/axent-pl/authz/common"
)

// ClaimRequirement demands that the principal hold at least one claim of the
// given type. A requirement built with a value is met only by a claim whose
// value matches exactly; a requirement built without one is met by any claim
// of the type.
type ClaimRequirement struct {
	claimType string
	value     string
	anyValue  bool
}

var _ common.Requirement = ClaimRequirement{}

func (r ClaimRequirement) Kind() common.Kind {
	return common.Claims
}

func (r ClaimRequirement) ClaimType() string {
	return r.claimType
}

// Value returns the required claim value. ok is false when any value of the
// claim type satisfies the requirement.
func (r ClaimRequirement) Value() (value string, ok bool) {
	return r.value, !r.anyValue
}
