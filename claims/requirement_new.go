package claims

import (
	"fmt"

	"github.com/axent-pl/authz/common"
)

// NewClaimRequirement builds a requirement satisfied by any claim of the
// given type, regardless of value.
func NewClaimRequirement(claimType string) (ClaimRequirement, error) {
	if claimType == "" {
		return ClaimRequirement{}, fmt.Errorf("%w: empty claim type", common.ErrInvalidRequirement)
	}
	return ClaimRequirement{
		claimType: claimType,
		anyValue:  true,
	}, nil
}

// NewClaimRequirementWithValue builds a requirement satisfied only by a claim
// matching both type and value exactly.
func NewClaimRequirementWithValue(claimType string, value string) (ClaimRequirement, error) {
	if claimType == "" {
		return ClaimRequirement{}, fmt.Errorf("%w: empty claim type", common.ErrInvalidRequirement)
	}
	return ClaimRequirement{
		claimType: claimType,
		value:     value,
	}, nil
}
