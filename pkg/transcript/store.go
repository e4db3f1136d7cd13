package transcript

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
)

type Config struct {
	Logger micrologger.Logger

	Container string
	Database  string
	Endpoint  string
	Key       string
}

// Store reads and writes conversation documents in the transcripts
// container.
type Store struct {
	logger micrologger.Logger

	container *azcosmos.ContainerClient
}

func New(config Config) (*Store, error) {
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}
	if config.Container == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.Container must not be empty", config)
	}
	if config.Database == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.Database must not be empty", config)
	}
	if config.Endpoint == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.Endpoint must not be empty", config)
	}
	if config.Key == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.Key must not be empty", config)
	}

	credential, err := azcosmos.NewKeyCredential(config.Key)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	client, err := azcosmos.NewClientWithKey(config.Endpoint, credential, nil)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	container, err := client.NewContainer(config.Database, config.Container)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	s := &Store{
		logger: config.Logger,

		container: container,
	}

	return s, nil
}

// Ping verifies the container is reachable with the configured credentials.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.container.Read(ctx, nil)
	if err != nil {
		return microerror.Mask(err)
	}

	return nil
}

// StoreConversation upserts the transcript document for its session.
func (s *Store) StoreConversation(ctx context.Context, c Conversation) error {
	b, err := json.Marshal(c)
	if err != nil {
		return microerror.Mask(err)
	}

	pk := azcosmos.NewPartitionKeyString(c.SessionID)

	_, err = s.container.UpsertItem(ctx, pk, b, nil)
	if err != nil {
		return microerror.Mask(err)
	}

	return nil
}

// GetConversation reads the transcript document of one session.
func (s *Store) GetConversation(ctx context.Context, sessionID string) (Conversation, error) {
	pk := azcosmos.NewPartitionKeyString(sessionID)

	resp, err := s.container.ReadItem(ctx, pk, sessionID, nil)
	if isStatusCode(err, 404) {
		return Conversation{}, microerror.Maskf(notFoundError, "session %q", sessionID)
	} else if err != nil {
		return Conversation{}, microerror.Mask(err)
	}

	var c Conversation
	err = json.Unmarshal(resp.Value, &c)
	if err != nil {
		return Conversation{}, microerror.Mask(err)
	}

	return c, nil
}

// ListConversations returns all transcript documents, newest first. The
// query fans out across partitions.
func (s *Store) ListConversations(ctx context.Context) ([]Conversation, error) {
	var conversations []Conversation

	query := "SELECT * FROM c ORDER BY c.timestamp DESC"
	pager := s.container.NewQueryItemsPager(query, azcosmos.PartitionKey{}, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, microerror.Mask(err)
		}

		for _, item := range page.Items {
			var c Conversation
			err = json.Unmarshal(item, &c)
			if err != nil {
				return nil, microerror.Mask(err)
			}
			conversations = append(conversations, c)
		}
	}

	return conversations, nil
}

// DeleteConversation removes the transcript document of one session.
// Deleting a session that does not exist is not an error.
func (s *Store) DeleteConversation(ctx context.Context, sessionID string) error {
	pk := azcosmos.NewPartitionKeyString(sessionID)

	_, err := s.container.DeleteItem(ctx, pk, sessionID, nil)
	if isStatusCode(err, 404) {
		return nil
	} else if err != nil {
		return microerror.Mask(err)
	}

	return nil
}

func isStatusCode(err error, code int) bool {
	var responseError *azcore.ResponseError
	if errors.As(err, &responseError) {
		return responseError.StatusCode == code
	}

	return false
}
