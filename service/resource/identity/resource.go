package identity

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/msi/mgmt/2018-11-30/msi"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"

	"github.com/giantswarm/voicelive-operator/client"
	"github.com/giantswarm/voicelive-operator/service/key"
)

const (
	// Name is the identifier of the resource.
	Name = "identity"
)

type Config struct {
	ClientSet *client.AzureClientSet
	Logger    micrologger.Logger

	Location string
}

// Resource manages the user assigned managed identity the AI services
// account runs under.
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

// EnsureCreated ensures the user assigned identity exists.
func (r *Resource) EnsureCreated(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring user assigned identity is created")

	identity := msi.Identity{
		Location: to.StringPtr(r.location),
		Tags:     key.StackTags(s),
	}
	_, err = r.clientSet.IdentitiesClient.CreateOrUpdate(ctx, key.ResourceGroupName(s), key.IdentityName(s), identity)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured user assigned identity is created")

	return nil
}

// EnsureDeleted ensures the user assigned identity is deleted.
func (r *Resource) EnsureDeleted(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring user assigned identity deletion")

	resp, err := r.clientSet.IdentitiesClient.Delete(ctx, key.ResourceGroupName(s), key.IdentityName(s))
	if client.ResponseWasNotFound(resp) {
		// fall through
	} else if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured user assigned identity deletion")

	return nil
}

// Name returns the resource name.
func (r *Resource) Name() string {
	return Name
}
