package communication

import (
	"github.com/Azure/azure-sdk-for-go/services/communication/mgmt/2020-08-20/communication"
	"github.com/Azure/go-autorest/autorest/to"

	"github.com/giantswarm/voicelive-operator/service/key"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

// newService computes the desired communication services account. The
// resource location is always "global" while the data location selects the
// geography call records are stored in.
func newService(s stack.Stack) communication.ServiceResource {
	return communication.ServiceResource{
		Location: to.StringPtr(key.CommunicationLocation()),
		ServiceProperties: &communication.ServiceProperties{
			DataLocation: to.StringPtr(key.CommunicationDataLocation()),
		},
		Tags: key.StackTags(s),
	}
}
