// Package policyfile loads declarative policy documents.
//
// A document declares named policies and resource bindings in YAML:
//
//	policies:
//	  - name: engineering-only
//	    requirements:
//	      - claim: Dept
//	        value: Eng
//	  - name: operators
//	    requirements:
//	      - roles: [admin, operator]
//	        roleClaim: realm_access.roles
//	resources:
//	  - resource: reports:quarterly
//	    policies: [engineering-only]
//	  - resource: profile:self
//	    requirements:
//	      - claim: customer_id
//
// A requirement sets exactly one of claim, roles or subject. A claim entry
// without a value accepts any value of the claim type. Assertion policies
// carry functions and cannot be declared in a document; register those in
// code.
package policyfile

import (
	"fmt"
	"os"

	"github.com/go-yaml/yaml"

	"github.com/axent-pl/authz/claims"
	"github.com/axent-pl/authz/common"
	"github.com/axent-pl/authz/roles"
	"github.com/axent-pl/authz/subject"
)

type Document struct {
	Policies  []PolicyDef   `yaml:"policies"`
	Resources []ResourceDef `yaml:"resources"`
}

type PolicyDef struct {
	Name         string           `yaml:"name"`
	Requirements []RequirementDef `yaml:"requirements"`
}

type ResourceDef struct {
	Resource     string           `yaml:"resource"`
	Policies     []string         `yaml:"policies"`
	Requirements []RequirementDef `yaml:"requirements"`
}

// RequirementDef declares exactly one requirement. Value distinguishes an
// omitted value (any value of the claim type) from an explicit empty one.
type RequirementDef struct {
	Claim     string   `yaml:"claim,omitempty"`
	Value     *string  `yaml:"value,omitempty"`
	Roles     []string `yaml:"roles,omitempty"`
	RoleClaim string   `yaml:"roleClaim,omitempty"`
	Subject   string   `yaml:"subject,omitempty"`
}

// Load reads a document from disk.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("could not open policy document: %w", err)
	}
	defer f.Close()
	var document Document
	if err := yaml.NewDecoder(f).Decode(&document); err != nil {
		return Document{}, fmt.Errorf("could not decode policy document: %w", err)
	}
	return document, nil
}

// Parse decodes a document from raw YAML.
func Parse(data []byte) (Document, error) {
	var document Document
	if err := yaml.Unmarshal(data, &document); err != nil {
		return Document{}, fmt.Errorf("could not decode policy document: %w", err)
	}
	return document, nil
}

// BuildRequirements turns declarations into requirements, in order.
func BuildRequirements(defs []RequirementDef) ([]common.Requirement, error) {
	requirements := make([]common.Requirement, 0, len(defs))
	for i, def := range defs {
		requirement, err := buildRequirement(def)
		if err != nil {
			return nil, fmt.Errorf("requirement %d: %w", i, err)
		}
		requirements = append(requirements, requirement)
	}
	return requirements, nil
}

func buildRequirement(def RequirementDef) (common.Requirement, error) {
	set := 0
	if def.Claim != "" {
		set++
	}
	if len(def.Roles) > 0 {
		set++
	}
	if def.Subject != "" {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: exactly one of claim, roles or subject must be set", common.ErrInvalidRequirement)
	}
	if def.Value != nil && def.Claim == "" {
		return nil, fmt.Errorf("%w: value requires claim", common.ErrInvalidRequirement)
	}
	if def.RoleClaim != "" && len(def.Roles) == 0 {
		return nil, fmt.Errorf("%w: roleClaim requires roles", common.ErrInvalidRequirement)
	}

	switch {
	case def.Claim != "":
		if def.Value != nil {
			requirement, err := claims.NewClaimRequirementWithValue(def.Claim, *def.Value)
			if err != nil {
				return nil, err
			}
			return requirement, nil
		}
		requirement, err := claims.NewClaimRequirement(def.Claim)
		if err != nil {
			return nil, err
		}
		return requirement, nil
	case len(def.Roles) > 0:
		roleClaimType := def.RoleClaim
		if roleClaimType == "" {
			roleClaimType = roles.DefaultRoleClaimType
		}
		requirement, err := roles.NewRolesRequirementForClaim(roleClaimType, def.Roles...)
		if err != nil {
			return nil, err
		}
		return requirement, nil
	default:
		requirement, err := subject.NewSubjectRequirement(common.SubjectID(def.Subject))
		if err != nil {
			return nil, err
		}
		return requirement, nil
	}
}
