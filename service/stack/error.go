package stack

import (
	"github.com/giantswarm/microerror"
)

var invalidStackError = &microerror.Error{
	Kind: "invalidStackError",
}

// IsInvalidStack asserts invalidStackError.
func IsInvalidStack(err error) bool {
	return microerror.Cause(err) == invalidStackError
}
