package deployment

import (
	"github.com/giantswarm/voicelive-operator/flag/service/deployment/principal"
)

type Deployment struct {
	Environment   string
	Principal     principal.Principal
	ResourceGroup string
	ResyncPeriod  string
	Suffix        string
	Tags          string
	Teardown      string
}
