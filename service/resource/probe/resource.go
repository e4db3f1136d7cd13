package probe

import (
	"context"
	"time"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"

	"github.com/giantswarm/voicelive-operator/client"
	"github.com/giantswarm/voicelive-operator/pkg/transcript"
	"github.com/giantswarm/voicelive-operator/service/key"
)

const (
	// Name is the identifier of the resource.
	Name = "probe"

	// probeSessionID is the reserved session the probe round trip writes
	// under. The document is deleted right after reading it back.
	probeSessionID = "00000000-probe"
)

type Config struct {
	ClientSet *client.AzureClientSet
	Logger    micrologger.Logger
}

// Resource verifies the data plane end to end once the control plane
// resources are in place. It connects to the transcripts container with the
// account key the application will read from the vault, so a failing probe
// means the application would fail too.
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

// EnsureCreated checks the transcripts container is reachable.
func (r *Resource) EnsureCreated(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "probing transcript data plane")

	account, err := r.clientSet.DatabaseAccountsClient.Get(ctx, key.ResourceGroupName(s), key.CosmosAccountName(s))
	if err != nil {
		return microerror.Mask(err)
	}
	if account.DatabaseAccountGetProperties == nil || account.DatabaseAccountGetProperties.DocumentEndpoint == nil {
		return microerror.Maskf(executionFailedError, "document database account has no endpoint")
	}

	keys, err := r.clientSet.DatabaseAccountsClient.ListKeys(ctx, key.ResourceGroupName(s), key.CosmosAccountName(s))
	if err != nil {
		return microerror.Mask(err)
	}
	if keys.PrimaryMasterKey == nil {
		return microerror.Maskf(executionFailedError, "document database account has no primary key")
	}

	var store *transcript.Store
	{
		c := transcript.Config{
			Logger: r.logger,

			Container: key.ContainerName,
			Database:  key.DatabaseName,
			Endpoint:  *account.DatabaseAccountGetProperties.DocumentEndpoint,
			Key:       *keys.PrimaryMasterKey,
		}

		store, err = transcript.New(c)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	err = store.Ping(ctx)
	if err != nil {
		return microerror.Mask(err)
	}

	err = r.roundTrip(ctx, store)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "probed transcript data plane")

	return nil
}

// roundTrip writes a probe conversation, reads it back and deletes it. This
// exercises partition key routing with the session ID the same way the
// application does.
func (r *Resource) roundTrip(ctx context.Context, store *transcript.Store) error {
	now := time.Now().UTC()
	probe := transcript.NewConversation(probeSessionID, now, now, []transcript.Message{
		{Role: "user", Content: "probe"},
	})

	err := store.StoreConversation(ctx, probe)
	if err != nil {
		return microerror.Mask(err)
	}

	read, err := store.GetConversation(ctx, probeSessionID)
	if err != nil {
		return microerror.Mask(err)
	}
	if read.SessionID != probeSessionID {
		return microerror.Maskf(executionFailedError, "probe read returned session %q", read.SessionID)
	}

	err = store.DeleteConversation(ctx, probeSessionID)
	if err != nil {
		return microerror.Mask(err)
	}

	return nil
}

// EnsureDeleted is a no-op. The probe owns no resources.
func (r *Resource) EnsureDeleted(ctx context.Context, obj interface{}) error {
	return nil
}

// Name returns the resource name.
func (r *Resource) Name() string {
	return Name
}
