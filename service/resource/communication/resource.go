package communication

import (
	"context"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"

	"github.com/giantswarm/voicelive-operator/client"
	"github.com/giantswarm/voicelive-operator/service/key"
)

const (
	// Name is the identifier of the resource.
	Name = "communication"
)

type Config struct {
	ClientSet *client.AzureClientSet
	Logger    micrologger.Logger
}

// Resource manages the communication services account used for telephony.
type Resource struct {
	clientSet *client.AzureClientSet
	logger    micrologger.Logger
}

func New(config Config) (*Resource, error) {
	if config.ClientSet == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.ClientSet must not be empty", config)
	}
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	r := &Resource{
		clientSet: config.ClientSet,
		logger:    config.Logger,
	}

	return r, nil
}

// EnsureCreated ensures the communication services account exists.
func (r *Resource) EnsureCreated(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring communication services account is created")

	service := newService(s)

	future, err := r.clientSet.CommunicationClient.CreateOrUpdate(ctx, key.ResourceGroupName(s), key.CommunicationName(s), &service)
	if err != nil {
		return microerror.Mask(err)
	}

	err = future.WaitForCompletionRef(ctx, r.clientSet.CommunicationClient.Client)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured communication services account is created")

	return nil
}

// EnsureDeleted ensures the communication services account is deleted.
func (r *Resource) EnsureDeleted(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring communication services account deletion")

	service, err := r.clientSet.CommunicationClient.Get(ctx, key.ResourceGroupName(s), key.CommunicationName(s))
	if client.ResponseWasNotFound(service.Response) {
		r.logger.LogCtx(ctx, "level", "debug", "message", "ensured communication services account deletion")
		return nil
	} else if err != nil {
		return microerror.Mask(err)
	}

	future, err := r.clientSet.CommunicationClient.Delete(ctx, key.ResourceGroupName(s), key.CommunicationName(s))
	if err != nil {
		return microerror.Mask(err)
	}

	err = future.WaitForCompletionRef(ctx, r.clientSet.CommunicationClient.Client)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured communication services account deletion")

	return nil
}

// Name returns the resource name.
func (r *Resource) Name() string {
	return Name
}
