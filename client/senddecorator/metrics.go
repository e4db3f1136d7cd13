package senddecorator

import (
	"net/http"
	"strings"
	"time"

	"github.com/Azure/go-autorest/autorest"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "voicelive_operator_azure_api"

// AzureAPIMetrics is the sink for per-call Azure API metrics. It is
// implemented by the operator's collector set.
type AzureAPIMetrics interface {
	GetCounterVec(opts prometheus.Opts, labelNames []string) *prometheus.CounterVec
	GetHistogramVec(opts prometheus.Opts, labelNames []string) *prometheus.HistogramVec
}

func MetricsDecorator(name, subscriptionID string, metricsCollector AzureAPIMetrics) autorest.SendDecorator {
	lowerName := strings.ToLower(name)

	totalCallsOpts := prometheus.Opts{Namespace: metricsNamespace, Name: "total_calls", Help: "Total number of API calls"}
	ratelimitedCallsOpts := prometheus.Opts{Namespace: metricsNamespace, Name: "ratelimited_calls", Help: "Total number of API calls ratelimited"}
	errorRespOpts := prometheus.Opts{Namespace: metricsNamespace, Name: "error_resp", Help: "Total number of API error responses"}
	callLatencyOpts := prometheus.Opts{Namespace: metricsNamespace, Name: "req_latency", Help: "API request latency"}

	labels := prometheus.Labels{
		"api_service":     lowerName,
		"subscription_id": subscriptionID,
	}

	var labelNames []string
	for k := range labels {
		labelNames = append(labelNames, k)
	}

	return func(s autorest.Sender) autorest.Sender {
		return autorest.SenderFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			// Pass the request to next SendDecorator.
			resp, err := s.Do(r)

			elapsed := time.Since(start)

			metricsCollector.GetCounterVec(totalCallsOpts, labelNames).With(labels).Inc()
			metricsCollector.GetHistogramVec(callLatencyOpts, labelNames).With(labels).Observe(elapsed.Seconds())

			if resp != nil && resp.StatusCode >= 400 {
				metricsCollector.GetCounterVec(errorRespOpts, labelNames).With(labels).Inc()

				if resp.StatusCode == http.StatusTooManyRequests {
					metricsCollector.GetCounterVec(ratelimitedCallsOpts, labelNames).With(labels).Inc()
				}
			}

			return resp, err
		})
	}
}
