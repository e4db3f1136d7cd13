package collector

import (
	"context"
	"sync"
	"time"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/voicelive-operator/client"
	"github.com/giantswarm/voicelive-operator/service/key"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

const (
	labelResource = "resource"
	labelState    = "state"

	statesCacheKey = "states"
	statesCacheTTL = 5 * time.Minute
)

var (
	provisioningStateDesc = prometheus.NewDesc(
		prometheus.BuildFQName("voicelive_operator", "stack", "provisioning_state"),
		"Provisioning state of the stack's Azure resources.",
		[]string{
			labelResource,
			labelState,
		},
		nil,
	)

	gaugeValue float64 = 1
)

type StackConfig struct {
	ClientSet *client.AzureClientSet
	Logger    micrologger.Logger

	Stack stack.Stack
}

// Stack reports the provisioning state of every resource the operator
// manages. States are cached between scrapes to keep the scrape path off
// the Azure API rate limits.
type Stack struct {
	clientSet *client.AzureClientSet
	logger    micrologger.Logger

	cache *gocache.Cache
	stack stack.Stack
}

type resourceState struct {
	resource string
	state    string
}

func NewStack(config StackConfig) (*Stack, error) {
	if config.ClientSet == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.ClientSet must not be empty", config)
	}
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	err := config.Stack.Validate()
	if err != nil {
		return nil, microerror.Mask(err)
	}

	s := &Stack{
		clientSet: config.ClientSet,
		logger:    config.Logger,

		cache: gocache.New(statesCacheTTL, 2*statesCacheTTL),
		stack: config.Stack,
	}

	return s, nil
}

func (s *Stack) Collect(ch chan<- prometheus.Metric) error {
	states, err := s.states(context.Background())
	if err != nil {
		return microerror.Mask(err)
	}

	for _, rs := range states {
		ch <- prometheus.MustNewConstMetric(
			provisioningStateDesc,
			prometheus.GaugeValue,
			gaugeValue,
			rs.resource,
			rs.state,
		)
	}

	return nil
}

func (s *Stack) Describe(ch chan<- *prometheus.Desc) error {
	ch <- provisioningStateDesc
	return nil
}

func (s *Stack) states(ctx context.Context) ([]resourceState, error) {
	cached, ok := s.cache.Get(statesCacheKey)
	if ok {
		return cached.([]resourceState), nil
	}

	states, err := s.fetchStates(ctx)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	s.cache.SetDefault(statesCacheKey, states)

	return states, nil
}

// fetchStates queries the state of every resource in parallel. A missing
// resource is reported as not found rather than failing the scrape, since
// the deployer may simply not have created it yet.
func (s *Stack) fetchStates(ctx context.Context) ([]resourceState, error) {
	var mutex sync.Mutex
	var states []resourceState

	add := func(resource string, state string) {
		mutex.Lock()
		defer mutex.Unlock()
		states = append(states, resourceState{resource: resource, state: state})
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		group, err := s.clientSet.GroupsClient.Get(ctx, key.ResourceGroupName(s.stack))
		if client.ResponseWasNotFound(group.Response) {
			add("resourcegroup", "NotFound")
			return nil
		} else if err != nil {
			return microerror.Mask(err)
		}

		state := ""
		if group.Properties != nil && group.Properties.ProvisioningState != nil {
			state = *group.Properties.ProvisioningState
		}
		add("resourcegroup", state)

		return nil
	})

	g.Go(func() error {
		account, err := s.clientSet.CognitiveAccountsClient.Get(ctx, key.ResourceGroupName(s.stack), key.AIServicesName(s.stack))
		if client.ResponseWasNotFound(account.Response) {
			add("aiservices", "NotFound")
			return nil
		} else if err != nil {
			return microerror.Mask(err)
		}

		state := ""
		if account.Properties != nil {
			state = string(account.Properties.ProvisioningState)
		}
		add("aiservices", state)

		return nil
	})

	g.Go(func() error {
		service, err := s.clientSet.CommunicationClient.Get(ctx, key.ResourceGroupName(s.stack), key.CommunicationName(s.stack))
		if client.ResponseWasNotFound(service.Response) {
			add("communication", "NotFound")
			return nil
		} else if err != nil {
			return microerror.Mask(err)
		}

		state := ""
		if service.ServiceProperties != nil {
			state = string(service.ServiceProperties.ProvisioningState)
		}
		add("communication", state)

		return nil
	})

	g.Go(func() error {
		account, err := s.clientSet.DatabaseAccountsClient.Get(ctx, key.ResourceGroupName(s.stack), key.CosmosAccountName(s.stack))
		if client.ResponseWasNotFound(account.Response) {
			add("cosmosdb", "NotFound")
			return nil
		} else if err != nil {
			return microerror.Mask(err)
		}

		state := ""
		if account.DatabaseAccountGetProperties != nil && account.DatabaseAccountGetProperties.ProvisioningState != nil {
			state = *account.DatabaseAccountGetProperties.ProvisioningState
		}
		add("cosmosdb", state)

		return nil
	})

	g.Go(func() error {
		vault, err := s.clientSet.VaultsClient.Get(ctx, key.ResourceGroupName(s.stack), key.VaultName(s.stack))
		if client.ResponseWasNotFound(vault.Response) {
			add("keyvault", "NotFound")
			return nil
		} else if err != nil {
			return microerror.Mask(err)
		}

		// The vaults API reports no provisioning state worth surfacing
		// beyond existence.
		add("keyvault", "Succeeded")

		return nil
	})

	err := g.Wait()
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return states, nil
}
