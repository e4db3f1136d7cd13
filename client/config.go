package client

import (
	"github.com/Azure/go-autorest/autorest/azure"
	"github.com/Azure/go-autorest/autorest/azure/auth"
	"github.com/giantswarm/microerror"
)

// AzureClientSetConfig contains the credentials needed to construct the
// management API clients for one subscription.
type AzureClientSetConfig struct {
	// ClientID is the ID of the Active Directory Service Principal.
	ClientID string
	// ClientSecret is the secret of the Active Directory Service Principal.
	ClientSecret string
	// Cloud is the name of the Azure cloud environment, e.g.
	// AZUREPUBLICCLOUD. Used to resolve endpoints and DNS suffixes.
	Cloud string
	// PartnerID is the Azure Partner Program ID attached to the user agent.
	PartnerID string
	// SubscriptionID is the ID of the Azure subscription.
	SubscriptionID string
	// TenantID is the ID of the Active Directory tenant.
	TenantID string
}

func (c AzureClientSetConfig) Validate() error {
	if c.ClientID == "" {
		return microerror.Maskf(invalidConfigError, "%T.ClientID must not be empty", c)
	}
	if c.ClientSecret == "" {
		return microerror.Maskf(invalidConfigError, "%T.ClientSecret must not be empty", c)
	}
	if c.SubscriptionID == "" {
		return microerror.Maskf(invalidConfigError, "%T.SubscriptionID must not be empty", c)
	}
	if c.TenantID == "" {
		return microerror.Maskf(invalidConfigError, "%T.TenantID must not be empty", c)
	}

	return nil
}

// Environment resolves the autorest environment for the configured cloud.
// The empty string means the public cloud.
func (c AzureClientSetConfig) Environment() (azure.Environment, error) {
	if c.Cloud == "" {
		return azure.PublicCloud, nil
	}

	env, err := azure.EnvironmentFromName(c.Cloud)
	if err != nil {
		return azure.Environment{}, microerror.Mask(err)
	}

	return env, nil
}

func (c AzureClientSetConfig) credentials() (auth.ClientCredentialsConfig, error) {
	env, err := c.Environment()
	if err != nil {
		return auth.ClientCredentialsConfig{}, microerror.Mask(err)
	}

	credentials := auth.NewClientCredentialsConfig(c.ClientID, c.ClientSecret, c.TenantID)
	credentials.AADEndpoint = env.ActiveDirectoryEndpoint
	credentials.Resource = env.ResourceManagerEndpoint

	return credentials, nil
}
