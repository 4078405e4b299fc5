package jwtclaims

import (
	"fmt"

	jwtx "github.com/golang-jwt/jwt/v5"

	"github.com/axent-pl/authz/claimpath"
	"github.com/axent-pl/authz/common"
)

// Mapping extracts the claim values a path selects and emits them under the
// claim type.
type Mapping struct {
	ClaimType string
	Path      string
}

// FromMapClaimsMapped builds a principal from selected claim paths only,
// instead of flattening the whole claim set. The subject is still read from
// "sub". Use it when tokens carry large or irregular claim documents and the
// requirements only ever look at a few spots.
func FromMapClaimsMapped(mapClaims jwtx.MapClaims, mappings []Mapping) (common.Principal, error) {
	principal := common.Principal{}
	if sub, ok := mapClaims["sub"].(string); ok {
		principal.Subject = common.SubjectID(sub)
	}
	for _, mapping := range mappings {
		if mapping.ClaimType == "" {
			return common.Principal{}, fmt.Errorf("%w: empty claim type in mapping", common.ErrInvalidRequirement)
		}
		values, err := claimpath.Values(map[string]any(mapClaims), mapping.Path)
		if err != nil {
			return common.Principal{}, fmt.Errorf("%w: mapping %q: %v", common.ErrInvalidInput, mapping.ClaimType, err)
		}
		for _, value := range values {
			principal.Claims = append(principal.Claims, common.Claim{Type: mapping.ClaimType, Value: value})
		}
	}
	return principal, nil
}
