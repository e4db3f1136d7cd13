package project

import (
	"github.com/giantswarm/versionbundle"
)

func NewVersionBundle() versionbundle.Bundle {
	return versionbundle.Bundle{
		Changelogs: []versionbundle.Changelog{
			{
				Component:   Name(),
				Description: "Derive role assignment names from scope, principal and role so reapplied stacks no longer conflict.",
				Kind:        versionbundle.KindFixed,
			},
			{
				Component:   Name(),
				Description: "Probe the transcript data plane after provisioning.",
				Kind:        versionbundle.KindAdded,
			},
		},
		Name:    Name(),
		Version: Version(),
	}
}
