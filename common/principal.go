package common

type SubjectID string

// Claim is a single statement about a principal. Two claims are equal iff
// both type and value match exactly, including case.
type Claim struct {
	Type  string
	Value string
}

// Principal is the authenticated entity one authorization check runs for.
// The claim set is unordered and may carry several claims of the same type.
// Principals are supplied by the caller and never mutated here.
type Principal struct {
	Subject SubjectID
	Claims  []Claim
}

// HasClaim reports whether the principal holds any claim of the given type.
func (p Principal) HasClaim(claimType string) bool {
	for _, claim := range p.Claims {
		if claim.Type == claimType {
			return true
		}
	}
	return false
}

// HasClaimValue reports whether the principal holds the exact claim.
func (p Principal) HasClaimValue(claimType string, value string) bool {
	for _, claim := range p.Claims {
		if claim.Type == claimType && claim.Value == value {
			return true
		}
	}
	return false
}

// ClaimValues returns the values of every claim of the given type in the
// order they appear in the claim set.
func (p Principal) ClaimValues(claimType string) []string {
	var values []string
	for _, claim := range p.Claims {
		if claim.Type == claimType {
			values = append(values, claim.Value)
		}
	}
	return values
}
