package collector

import (
	"github.com/giantswarm/exporterkit/collector"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"

	"github.com/giantswarm/voicelive-operator/client"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

type SetConfig struct {
	ClientSet *client.AzureClientSet
	Logger    micrologger.Logger

	APIMetricsCollector *AzureAPIMetricsCollector
	Stack               stack.Stack
}

// Set is basically only a wrapper for the operator's collector
// implementations. It eases the initialization and prevents some weird
// import mess so we do not have to alias packages.
type Set struct {
	*collector.Set
}

func NewSet(config SetConfig) (*Set, error) {
	var err error

	apiMetricsCollector := config.APIMetricsCollector
	if apiMetricsCollector == nil {
		c := AzureAPIMetricsConfig{
			Logger: config.Logger,
		}

		apiMetricsCollector, err = NewAzureAPIMetricsCollector(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var stackCollector *Stack
	{
		c := StackConfig{
			ClientSet: config.ClientSet,
			Logger:    config.Logger,

			Stack: config.Stack,
		}

		stackCollector, err = NewStack(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var collectorSet *collector.Set
	{
		c := collector.SetConfig{
			Collectors: []collector.Interface{
				apiMetricsCollector,
				stackCollector,
			},
			Logger: config.Logger,
		}

		collectorSet, err = collector.NewSet(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	s := &Set{
		Set: collectorSet,
	}

	return s, nil
}
