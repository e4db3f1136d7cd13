// Package stack holds the desired state description of one voice live
// deployment. All resource names are derived from it, see service/key.
package stack

import (
	"github.com/giantswarm/microerror"
)

// Stack describes one deployment environment of the voice live service.
type Stack struct {
	// Environment is the human chosen environment name, e.g. "dev" or
	// "prod-eu". It does not need to be a valid Azure resource name, names
	// derived from it are sanitized.
	Environment string
	// Location is the Azure region resources are deployed to. The AI
	// services account ignores it, see key.AIServicesLocation.
	Location string
	// PrincipalID is the object ID of the principal running the voice live
	// server. It is granted data access on every provisioned resource.
	PrincipalID string
	// ResourceGroup optionally overrides the derived resource group name.
	ResourceGroup string
	// Suffix makes globally visible resource names unique, the same way the
	// original templates consumed a uniqueness suffix.
	Suffix string
	// Tags are applied to every resource of the stack.
	Tags map[string]string
}

func (s Stack) Validate() error {
	if s.Environment == "" {
		return microerror.Maskf(invalidStackError, "%T.Environment must not be empty", s)
	}
	if s.Location == "" {
		return microerror.Maskf(invalidStackError, "%T.Location must not be empty", s)
	}
	if s.PrincipalID == "" {
		return microerror.Maskf(invalidStackError, "%T.PrincipalID must not be empty", s)
	}
	if s.Suffix == "" {
		return microerror.Maskf(invalidStackError, "%T.Suffix must not be empty", s)
	}

	return nil
}
