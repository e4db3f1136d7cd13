package aiservices

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/mgmt/2021-04-30/cognitiveservices"

	"github.com/giantswarm/voicelive-operator/service/key"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

func Test_newAccount(t *testing.T) {
	subscriptionID := "5ec06d78-3bbd-411b-9af3-6c2f06bdf9b6"
	s := stack.Stack{
		Environment: "dev",
		Location:    "westeurope",
		PrincipalID: "2869cee5-50c1-4d29-b372-0e30b6fe5b5e",
		Suffix:      "x7k2p",
	}

	account := newAccount(subscriptionID, s)

	if *account.Kind != "AIServices" {
		t.Fatalf("got kind %q, want AIServices", *account.Kind)
	}
	if *account.Sku.Name != "S0" {
		t.Fatalf("got sku %q, want S0", *account.Sku.Name)
	}

	// The voice live API is only served from one region, regardless of where
	// the rest of the stack runs.
	if *account.Location != "eastus2" {
		t.Fatalf("got location %q, want eastus2", *account.Location)
	}

	if *account.Properties.CustomSubDomainName != key.AIServicesName(s) {
		t.Fatalf("got subdomain %q, want %q", *account.Properties.CustomSubDomainName, key.AIServicesName(s))
	}

	if account.Identity.Type != cognitiveservices.ResourceIdentityTypeUserAssigned {
		t.Fatalf("got identity type %q, want user assigned", account.Identity.Type)
	}
	if _, ok := account.Identity.UserAssignedIdentities[key.IdentityID(subscriptionID, s)]; !ok {
		t.Fatalf("identity %q is not assigned", key.IdentityID(subscriptionID, s))
	}
}
