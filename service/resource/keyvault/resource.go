package keyvault

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/keyvault/mgmt/2021-10-01/keyvault"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	uuid "github.com/gofrs/uuid"

	"github.com/giantswarm/voicelive-operator/client"
	"github.com/giantswarm/voicelive-operator/service/key"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

const (
	// Name is the identifier of the resource.
	Name = "keyvault"
)

type Config struct {
	ClientSet *client.AzureClientSet
	Logger    micrologger.Logger

	Location string
}

// Resource manages the key vault and the secrets inside it. The secret
// values are never configured anywhere. They are read back from the sibling
// accounts via their list keys operations on every loop, so rotating a key
// on the account side converges into the vault automatically.
type Resource struct {
	clientSet *client.AzureClientSet
	logger    micrologger.Logger

	location string
}

func New(config Config) (*Resource, error) {
	if config.ClientSet == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.ClientSet must not be empty", config)
	}
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}
	if config.Location == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.Location must not be empty", config)
	}

	r := &Resource{
		clientSet: config.ClientSet,
		logger:    config.Logger,

		location: config.Location,
	}

	return r, nil
}

// EnsureCreated ensures the vault exists and holds the current account keys
// as secrets.
func (r *Resource) EnsureCreated(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	err = r.ensureVault(ctx, s)
	if err != nil {
		return microerror.Mask(err)
	}

	secrets, err := r.collectSecrets(ctx, s)
	if err != nil {
		return microerror.Mask(err)
	}

	for name, value := range secrets {
		err = r.ensureSecret(ctx, s, name, value)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	return nil
}

// EnsureDeleted ensures the vault is deleted. Secrets go down with the
// vault.
func (r *Resource) EnsureDeleted(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring key vault deletion")

	resp, err := r.clientSet.VaultsClient.Delete(ctx, key.ResourceGroupName(s), key.VaultName(s))
	if client.ResponseWasNotFound(resp) {
		// fall through
	} else if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured key vault deletion")

	return nil
}

// Name returns the resource name.
func (r *Resource) Name() string {
	return Name
}

func (r *Resource) ensureVault(ctx context.Context, s stack.Stack) error {
	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring key vault is created")

	tenantID, err := uuid.FromString(r.clientSet.TenantID)
	if err != nil {
		return microerror.Mask(err)
	}

	params := newVault(r.location, tenantID, s)

	future, err := r.clientSet.VaultsClient.CreateOrUpdate(ctx, key.ResourceGroupName(s), key.VaultName(s), params)
	if err != nil {
		return microerror.Mask(err)
	}

	err = future.WaitForCompletionRef(ctx, r.clientSet.VaultsClient.Client)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured key vault is created")

	return nil
}

// collectSecrets reads the current keys of the AI services account, the
// communication services account and the document database account.
func (r *Resource) collectSecrets(ctx context.Context, s stack.Stack) (map[string]string, error) {
	secrets := map[string]string{}

	{
		keys, err := r.clientSet.CognitiveAccountsClient.ListKeys(ctx, key.ResourceGroupName(s), key.AIServicesName(s))
		if err != nil {
			return nil, microerror.Mask(err)
		}
		if keys.Key1 == nil {
			return nil, microerror.Maskf(missingOutputValueError, "ai services account has no key")
		}
		secrets[key.SecretNameVoiceLiveAPIKey] = *keys.Key1
	}

	{
		keys, err := r.clientSet.CommunicationClient.ListKeys(ctx, key.ResourceGroupName(s), key.CommunicationName(s))
		if err != nil {
			return nil, microerror.Mask(err)
		}
		if keys.PrimaryConnectionString == nil {
			return nil, microerror.Maskf(missingOutputValueError, "communication services account has no connection string")
		}
		secrets[key.SecretNameACSConnectionString] = *keys.PrimaryConnectionString
	}

	{
		keys, err := r.clientSet.DatabaseAccountsClient.ListKeys(ctx, key.ResourceGroupName(s), key.CosmosAccountName(s))
		if err != nil {
			return nil, microerror.Mask(err)
		}
		if keys.PrimaryMasterKey == nil {
			return nil, microerror.Maskf(missingOutputValueError, "document database account has no primary key")
		}
		secrets[key.SecretNameCosmosDBKey] = *keys.PrimaryMasterKey
	}

	return secrets, nil
}

func (r *Resource) ensureSecret(ctx context.Context, s stack.Stack, name string, value string) error {
	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring secret is created", "secret", name)

	params := keyvault.SecretCreateOrUpdateParameters{
		Properties: &keyvault.SecretProperties{
			Attributes: &keyvault.SecretAttributes{
				Enabled: to.BoolPtr(true),
			},
			Value: to.StringPtr(value),
		},
	}
	_, err := r.clientSet.SecretsClient.CreateOrUpdate(ctx, key.ResourceGroupName(s), key.VaultName(s), name, params)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured secret is created", "secret", name)

	return nil
}
