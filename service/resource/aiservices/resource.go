package aiservices

import (
	"context"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"

	"github.com/giantswarm/voicelive-operator/client"
	"github.com/giantswarm/voicelive-operator/service/key"
)

const (
	// Name is the identifier of the resource.
	Name = "aiservices"
)

type Config struct {
	ClientSet *client.AzureClientSet
	Logger    micrologger.Logger
}

// Resource manages the cognitive services account serving the voice live
// API.
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

// EnsureCreated ensures the AI services account exists in its desired shape.
func (r *Resource) EnsureCreated(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring ai services account is created")

	account := newAccount(r.clientSet.SubscriptionID, s)

	future, err := r.clientSet.CognitiveAccountsClient.Create(ctx, key.ResourceGroupName(s), key.AIServicesName(s), account)
	if err != nil {
		return microerror.Mask(err)
	}

	err = future.WaitForCompletionRef(ctx, r.clientSet.CognitiveAccountsClient.Client)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured ai services account is created")

	return nil
}

// EnsureDeleted ensures the AI services account is deleted.
func (r *Resource) EnsureDeleted(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring ai services account deletion")

	account, err := r.clientSet.CognitiveAccountsClient.Get(ctx, key.ResourceGroupName(s), key.AIServicesName(s))
	if client.ResponseWasNotFound(account.Response) {
		r.logger.LogCtx(ctx, "level", "debug", "message", "ensured ai services account deletion")
		return nil
	} else if err != nil {
		return microerror.Mask(err)
	}

	future, err := r.clientSet.CognitiveAccountsClient.Delete(ctx, key.ResourceGroupName(s), key.AIServicesName(s))
	if err != nil {
		return microerror.Mask(err)
	}

	err = future.WaitForCompletionRef(ctx, r.clientSet.CognitiveAccountsClient.Client)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured ai services account deletion")

	return nil
}

// Name returns the resource name.
func (r *Resource) Name() string {
	return Name
}
