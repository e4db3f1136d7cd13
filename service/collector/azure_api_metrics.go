package collector

import (
	"sync"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	"github.com/prometheus/client_golang/prometheus"
)

type AzureAPIMetricsConfig struct {
	Logger micrologger.Logger
}

// AzureAPIMetricsCollector exposes the counters and histograms the HTTP
// send decorators record for every Azure API call.
type AzureAPIMetricsCollector struct {
	logger micrologger.Logger

	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec

	mutex *sync.Mutex
}

func NewAzureAPIMetricsCollector(config AzureAPIMetricsConfig) (*AzureAPIMetricsCollector, error) {
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	c := AzureAPIMetricsCollector{
		logger: config.Logger,

		counters:   map[string]*prometheus.CounterVec{},
		histograms: map[string]*prometheus.HistogramVec{},
		mutex:      &sync.Mutex{},
	}

	return &c, nil
}

func (c *AzureAPIMetricsCollector) Describe(ch chan<- *prometheus.Desc) error {
	for _, counter := range c.counters {
		counter.Describe(ch)
	}

	for _, histogram := range c.histograms {
		histogram.Describe(ch)
	}

	return nil
}

func (c *AzureAPIMetricsCollector) Collect(ch chan<- prometheus.Metric) error {
	for _, counter := range c.counters {
		counter.Collect(ch)
	}

	for _, histogram := range c.histograms {
		histogram.Collect(ch)
	}

	return nil
}

// GetCounterVec returns the existing counter for the given opts or registers
// a new one.
func (c *AzureAPIMetricsCollector) GetCounterVec(opts prometheus.Opts, labelNames []string) *prometheus.CounterVec {
	k := opts.Namespace + "/" + opts.Name
	counter, exists := c.counters[k]
	if !exists {
		c.mutex.Lock()
		defer c.mutex.Unlock()

		counter, exists = c.counters[k]
		if !exists {
			counter = prometheus.NewCounterVec(prometheus.CounterOpts(opts), labelNames)
			c.counters[k] = counter
		}
	}

	return counter
}

// GetHistogramVec returns the existing histogram for the given opts or
// registers a new one.
func (c *AzureAPIMetricsCollector) GetHistogramVec(opts prometheus.Opts, labelNames []string) *prometheus.HistogramVec {
	k := opts.Namespace + "/" + opts.Name
	histogram, exists := c.histograms[k]
	if !exists {
		c.mutex.Lock()
		defer c.mutex.Unlock()

		histogram, exists = c.histograms[k]
		if !exists {
			o := prometheus.HistogramOpts{
				Namespace:   opts.Namespace,
				Name:        opts.Name,
				Help:        opts.Help,
				ConstLabels: opts.ConstLabels,
			}

			histogram = prometheus.NewHistogramVec(o, labelNames)
			c.histograms[k] = histogram
		}
	}

	return histogram
}
