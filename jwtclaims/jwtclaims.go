// Package jwtclaims maps the claims of an already-verified JWT into a
// principal. It performs no signature or lifetime validation; verify tokens
// before mapping them.
//
// Nested claim objects flatten into dot-separated claim types, so a
// Keycloak-style {"realm_access": {"roles": ["admin"]}} yields claims of
// type "realm_access.roles". Array values yield one claim per element.
package jwtclaims

import (
	"encoding/json"
	"fmt"
	"strconv"

	jwtx "github.com/golang-jwt/jwt/v5"

	"github.com/axent-pl/authz/common"
)

// FromToken maps a parsed token's claims. The token must already be
// verified.
func FromToken(token *jwtx.Token) (common.Principal, error) {
	if token == nil {
		return common.Principal{}, fmt.Errorf("%w: nil token", common.ErrInvalidInput)
	}
	switch tokenClaims := token.Claims.(type) {
	case jwtx.MapClaims:
		return FromMapClaims(tokenClaims), nil
	case *jwtx.RegisteredClaims:
		return FromRegisteredClaims(tokenClaims), nil
	default:
		return fromClaims(token.Claims)
	}
}

// FromMapClaims maps arbitrary claims. The subject is read from "sub" when
// it is a string.
func FromMapClaims(mapClaims jwtx.MapClaims) common.Principal {
	principal := common.Principal{}
	if sub, ok := mapClaims["sub"].(string); ok {
		principal.Subject = common.SubjectID(sub)
	}
	flatten("", map[string]any(mapClaims), func(claim common.Claim) {
		principal.Claims = append(principal.Claims, claim)
	})
	return principal
}

// FromRegisteredClaims maps the registered claim set.
func FromRegisteredClaims(registered *jwtx.RegisteredClaims) common.Principal {
	if registered == nil {
		return common.Principal{}
	}
	principal := common.Principal{Subject: common.SubjectID(registered.Subject)}
	add := func(claimType string, value string) {
		if value == "" {
			return
		}
		principal.Claims = append(principal.Claims, common.Claim{Type: claimType, Value: value})
	}
	add("sub", registered.Subject)
	add("iss", registered.Issuer)
	add("jti", registered.ID)
	for _, audience := range registered.Audience {
		add("aud", audience)
	}
	if registered.ExpiresAt != nil {
		add("exp", strconv.FormatInt(registered.ExpiresAt.Unix(), 10))
	}
	if registered.IssuedAt != nil {
		add("iat", strconv.FormatInt(registered.IssuedAt.Unix(), 10))
	}
	if registered.NotBefore != nil {
		add("nbf", strconv.FormatInt(registered.NotBefore.Unix(), 10))
	}
	return principal
}

// fromClaims maps any other claims implementation through the registered
// claim accessors.
func fromClaims(tokenClaims jwtx.Claims) (common.Principal, error) {
	subject, err := tokenClaims.GetSubject()
	if err != nil {
		return common.Principal{}, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	issuer, err := tokenClaims.GetIssuer()
	if err != nil {
		return common.Principal{}, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	audience, err := tokenClaims.GetAudience()
	if err != nil {
		return common.Principal{}, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	expiresAt, err := tokenClaims.GetExpirationTime()
	if err != nil {
		return common.Principal{}, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	issuedAt, err := tokenClaims.GetIssuedAt()
	if err != nil {
		return common.Principal{}, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	notBefore, err := tokenClaims.GetNotBefore()
	if err != nil {
		return common.Principal{}, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	registered := jwtx.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		Audience:  audience,
		ExpiresAt: expiresAt,
		IssuedAt:  issuedAt,
		NotBefore: notBefore,
	}
	return FromRegisteredClaims(&registered), nil
}

func flatten(prefix string, value any, emit func(common.Claim)) {
	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			claimType := key
			if prefix != "" {
				claimType = prefix + "." + key
			}
			flatten(claimType, nested, emit)
		}
	case []any:
		for _, item := range v {
			flatten(prefix, item, emit)
		}
	case []string:
		for _, item := range v {
			emit(common.Claim{Type: prefix, Value: item})
		}
	case string:
		emit(common.Claim{Type: prefix, Value: v})
	case bool:
		emit(common.Claim{Type: prefix, Value: strconv.FormatBool(v)})
	case float64:
		emit(common.Claim{Type: prefix, Value: strconv.FormatFloat(v, 'f', -1, 64)})
	case int:
		emit(common.Claim{Type: prefix, Value: strconv.Itoa(v)})
	case int64:
		emit(common.Claim{Type: prefix, Value: strconv.FormatInt(v, 10)})
	case json.Number:
		emit(common.Claim{Type: prefix, Value: v.String()})
	}
}
