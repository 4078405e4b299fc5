package subject

import (
	"fmt"

	"github.com/axent-pl/authz/common"
)

func NewSubjectRequirement(subject common.SubjectID) (SubjectRequirement, error) {
	if subject == "" {
		return SubjectRequirement{}, fmt.Errorf("%w: empty subject", common.ErrInvalidRequirement)
	}
	return SubjectRequirement{subject: subject}, nil
}
