package keyvault

import (
	"github.com/Azure/azure-sdk-for-go/services/keyvault/mgmt/2021-10-01/keyvault"
	"github.com/Azure/go-autorest/autorest/to"
	uuid "github.com/gofrs/uuid"

	"github.com/giantswarm/voicelive-operator/service/key"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

// newVault computes the desired vault. Access goes through RBAC role
// assignments instead of access policies. Soft delete and purge protection
// stay on so a deleted vault can be recovered within the retention window.
func newVault(location string, tenantID uuid.UUID, s stack.Stack) keyvault.VaultCreateOrUpdateParameters {
	return keyvault.VaultCreateOrUpdateParameters{
		Location: to.StringPtr(location),
		Properties: &keyvault.VaultProperties{
			TenantID: &tenantID,
			Sku: &keyvault.Sku{
				Family: to.StringPtr("A"),
				Name:   keyvault.SkuNameStandard,
			},
			AccessPolicies:          &[]keyvault.AccessPolicyEntry{},
			EnableRbacAuthorization: to.BoolPtr(true),
			EnableSoftDelete:        to.BoolPtr(true),
			EnablePurgeProtection:   to.BoolPtr(true),
		},
		Tags: key.StackTags(s),
	}
}
