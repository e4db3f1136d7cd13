package senddecorator

import (
	"github.com/Azure/go-autorest/autorest"

	"github.com/giantswarm/voicelive-operator/pkg/backpressure"
)

// ConfigureClient configures given autorest Client instance with all local
// `autorest.SendDecorator` implementations in this package.
//
// Existing SendDecorators are preserved, but moved to end of slice.
func ConfigureClient(g *backpressure.Backpressure, c *autorest.Client, apiService, subscriptionID string, metrics AzureAPIMetrics) {
	decorators := []autorest.SendDecorator{
		// NOTE: Order matters here since these decorators are executed in
		// order. See: https://godoc.org/github.com/Azure/go-autorest/autorest#Client
		RateLimitCircuitBreaker(g),
	}
	if metrics != nil {
		decorators = append(decorators, MetricsDecorator(apiService, subscriptionID, metrics))
	}

	c.SendDecorators = append(decorators, c.SendDecorators...)
}
