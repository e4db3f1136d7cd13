package cosmosdb

import (
	"context"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"

	"github.com/giantswarm/voicelive-operator/client"
	"github.com/giantswarm/voicelive-operator/service/key"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

const (
	// Name is the identifier of the resource.
	Name = "cosmosdb"
)

type Config struct {
	ClientSet *client.AzureClientSet
	Logger    micrologger.Logger

	Location string
}

// Resource manages the serverless document database account holding the
// conversation transcripts, together with its SQL database and container.
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

// EnsureCreated ensures the document database account, the database and the
// transcripts container exist. Account creation can take several minutes so
// the LRO is awaited before the database and container are touched.
func (r *Resource) EnsureCreated(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	err = r.ensureAccount(ctx, s)
	if err != nil {
		return microerror.Mask(err)
	}

	err = r.ensureDatabase(ctx, s)
	if err != nil {
		return microerror.Mask(err)
	}

	err = r.ensureContainer(ctx, s)
	if err != nil {
		return microerror.Mask(err)
	}

	return nil
}

// EnsureDeleted ensures the document database account is deleted. The
// database and container go down with the account.
func (r *Resource) EnsureDeleted(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring document database account deletion")

	account, err := r.clientSet.DatabaseAccountsClient.Get(ctx, key.ResourceGroupName(s), key.CosmosAccountName(s))
	if client.ResponseWasNotFound(account.Response) {
		r.logger.LogCtx(ctx, "level", "debug", "message", "ensured document database account deletion")
		return nil
	} else if err != nil {
		return microerror.Mask(err)
	}

	future, err := r.clientSet.DatabaseAccountsClient.Delete(ctx, key.ResourceGroupName(s), key.CosmosAccountName(s))
	if err != nil {
		return microerror.Mask(err)
	}

	err = future.WaitForCompletionRef(ctx, r.clientSet.DatabaseAccountsClient.Client)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured document database account deletion")

	return nil
}

// Name returns the resource name.
func (r *Resource) Name() string {
	return Name
}

func (r *Resource) ensureAccount(ctx context.Context, s stack.Stack) error {
	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring document database account is created")

	params := newDatabaseAccount(r.location, s)

	future, err := r.clientSet.DatabaseAccountsClient.CreateOrUpdate(ctx, key.ResourceGroupName(s), key.CosmosAccountName(s), params)
	if err != nil {
		return microerror.Mask(err)
	}

	err = future.WaitForCompletionRef(ctx, r.clientSet.DatabaseAccountsClient.Client)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured document database account is created")

	return nil
}

func (r *Resource) ensureDatabase(ctx context.Context, s stack.Stack) error {
	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring sql database is created")

	params := newDatabase()

	future, err := r.clientSet.SQLResourcesClient.CreateUpdateSQLDatabase(ctx, key.ResourceGroupName(s), key.CosmosAccountName(s), key.DatabaseName, params)
	if err != nil {
		return microerror.Mask(err)
	}

	err = future.WaitForCompletionRef(ctx, r.clientSet.SQLResourcesClient.Client)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured sql database is created")

	return nil
}

func (r *Resource) ensureContainer(ctx context.Context, s stack.Stack) error {
	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring sql container is created")

	params := newContainer()

	future, err := r.clientSet.SQLResourcesClient.CreateUpdateSQLContainer(ctx, key.ResourceGroupName(s), key.CosmosAccountName(s), key.DatabaseName, key.ContainerName, params)
	if err != nil {
		return microerror.Mask(err)
	}

	err = future.WaitForCompletionRef(ctx, r.clientSet.SQLResourcesClient.Client)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured sql container is created")

	return nil
}
