package aiservices

import (
	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/mgmt/2021-04-30/cognitiveservices"
	"github.com/Azure/go-autorest/autorest/to"

	"github.com/giantswarm/voicelive-operator/service/key"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

const (
	accountKind = "AIServices"
	accountSKU  = "S0"
)

// newAccount computes the desired AI services account. The account is bound
// to the stack's user assigned identity and pinned to the one region the
// voice live API supports. The custom subdomain equals the account name,
// which is what makes the endpoint URL stable.
func newAccount(subscriptionID string, s stack.Stack) cognitiveservices.Account {
	return cognitiveservices.Account{
		Kind:     to.StringPtr(accountKind),
		Location: to.StringPtr(key.AIServicesLocation()),
		Sku: &cognitiveservices.Sku{
			Name: to.StringPtr(accountSKU),
		},
		Identity: &cognitiveservices.Identity{
			Type: cognitiveservices.ResourceIdentityTypeUserAssigned,
			UserAssignedIdentities: map[string]*cognitiveservices.UserAssignedIdentity{
				key.IdentityID(subscriptionID, s): {},
			},
		},
		Properties: &cognitiveservices.AccountProperties{
			CustomSubDomainName: to.StringPtr(key.AIServicesName(s)),
			PublicNetworkAccess: cognitiveservices.PublicNetworkAccessEnabled,
		},
		Tags: key.StackTags(s),
	}
}
