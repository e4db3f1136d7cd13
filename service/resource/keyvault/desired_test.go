package keyvault

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/services/keyvault/mgmt/2021-10-01/keyvault"
	uuid "github.com/gofrs/uuid"

	"github.com/giantswarm/voicelive-operator/service/stack"
)

func Test_newVault(t *testing.T) {
	s := stack.Stack{
		Environment: "dev",
		Location:    "westeurope",
		PrincipalID: "2869cee5-50c1-4d29-b372-0e30b6fe5b5e",
		Suffix:      "x7k2p",
	}
	tenantID := uuid.Must(uuid.FromString("d79cae35-8e89-4a33-9b6a-72b21f4e5f9e"))

	params := newVault("westeurope", tenantID, s)

	props := params.Properties
	if props == nil {
		t.Fatal("got nil properties")
	}
	if props.TenantID == nil || *props.TenantID != tenantID {
		t.Fatalf("got tenant %v, want %v", props.TenantID, tenantID)
	}
	if props.Sku.Name != keyvault.SkuNameStandard {
		t.Fatalf("got sku %q, want standard", props.Sku.Name)
	}
	if props.EnableRbacAuthorization == nil || !*props.EnableRbacAuthorization {
		t.Fatal("rbac authorization is not enabled")
	}
	if props.EnableSoftDelete == nil || !*props.EnableSoftDelete {
		t.Fatal("soft delete is not enabled")
	}
	if props.EnablePurgeProtection == nil || !*props.EnablePurgeProtection {
		t.Fatal("purge protection is not enabled")
	}
	if props.AccessPolicies == nil || len(*props.AccessPolicies) != 0 {
		t.Fatalf("got access policies %v, want none", props.AccessPolicies)
	}
}
