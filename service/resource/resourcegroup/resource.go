package resourcegroup

import (
	"context"

	azureresource "github.com/Azure/azure-sdk-for-go/services/resources/mgmt/2019-05-01/resources"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"

	"github.com/giantswarm/voicelive-operator/client"
	"github.com/giantswarm/voicelive-operator/pkg/project"
	"github.com/giantswarm/voicelive-operator/service/key"
)

const (
	// Name is the identifier of the resource.
	Name = "resourcegroup"
)

type Config struct {
	ClientSet *client.AzureClientSet
	Logger    micrologger.Logger

	Location string
}

// Resource manages the resource group every other resource of the stack
// lives in.
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

// EnsureCreated ensures the resource group is created via the Azure API.
func (r *Resource) EnsureCreated(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring resource group is created")

	resourceGroup := azureresource.Group{
		Name:      to.StringPtr(key.ResourceGroupName(s)),
		Location:  to.StringPtr(r.location),
		ManagedBy: to.StringPtr(project.Name()),
		Tags:      key.StackTags(s),
	}
	_, err = r.clientSet.GroupsClient.CreateOrUpdate(ctx, *resourceGroup.Name, resourceGroup)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured resource group is created")

	return nil
}

// EnsureDeleted ensures the resource group is deleted via the Azure API.
// Deleting the group takes every contained resource with it.
func (r *Resource) EnsureDeleted(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring resource group deletion")

	resourceGroup, err := r.clientSet.GroupsClient.Get(ctx, key.ResourceGroupName(s))
	if client.ResponseWasNotFound(resourceGroup.Response) {
		r.logger.LogCtx(ctx, "level", "debug", "message", "ensured resource group deletion")
		return nil
	} else if err != nil {
		return microerror.Mask(err)
	}

	future, err := r.clientSet.GroupsClient.Delete(ctx, key.ResourceGroupName(s))
	if err != nil {
		return microerror.Mask(err)
	}

	err = future.WaitForCompletionRef(ctx, r.clientSet.GroupsClient.Client)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured resource group deletion")

	return nil
}

// Name returns the resource name.
func (r *Resource) Name() string {
	return Name
}
