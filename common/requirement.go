package common

type Kind string

const (
	Claims    Kind = "claims"
	Roles     Kind = "roles"
	Subject   Kind = "subject"
	Assertion Kind = "assertion"
)

// Requirement is a single declared condition a principal must meet. Concrete
// requirement types live in the per-kind packages and are built through
// validating constructors.
type Requirement interface {
	Kind() Kind
}
