package common

import (
	"context"
)

// Evaluator decides whether a principal meets every requirement of its kind.
// Evaluators hold no state between calls; a false result is a decision, not
// an error. Satisfies returns an error only when a requirement of a foreign
// kind is passed in.
type Evaluator interface {
	Kind() Kind
	Satisfies(ctx context.Context, principal Principal, requirements []Requirement) (bool, error)
}
