package subject

import (
	"github.com/axent-pl/authz/common"
)

// SubjectRequirement demands that the check runs for one specific principal.
type SubjectRequirement struct {
	subject common.SubjectID
}

var _ common.Requirement = SubjectRequirement{}

func (r SubjectRequirement) Kind() common.Kind {
	return common.Subject
}

func (r SubjectRequirement) Subject() common.SubjectID {
	return r.subject
}
