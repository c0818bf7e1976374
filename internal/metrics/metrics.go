// Package metrics exposes the Prometheus collectors of the API.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/hlog"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// otherResource labels requests on paths matching no resource.
const otherResource = "other"

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "resource", "status_code"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "resource"},
	)

	FindErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_find_errors_total",
			Help: "Total number of failed resource finds by error kind",
		},
		[]string{"resource", "kind"},
	)

	ItemsFound = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_items_found",
			Help:    "Number of items returned per resource find",
			Buckets: []float64{0, 1, 5, 10, 30, 50, 100},
		},
		[]string{"resource"},
	)
)

// Middleware records the count and duration of the requests served under
// prefix. Requests are labeled with the resource named by the first path
// component after prefix when it is one of resources.
func Middleware(prefix string, resources []string) func(http.Handler) http.Handler {
	known := make(map[string]bool, len(resources))
	for _, r := range resources {
		known[r] = true
	}
	return hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		name := resourceLabel(r.URL.Path, prefix, known)
		RequestsTotal.WithLabelValues(r.Method, name, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(r.Method, name).Observe(duration.Seconds())
	})
}

func resourceLabel(path, prefix string, known map[string]bool) string {
	if !strings.HasPrefix(path, prefix) {
		return otherResource
	}
	path = strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/")
	if i := strings.IndexByte(path, '/'); i != -1 {
		path = path[:i]
	}
	if known[path] {
		return path
	}
	return otherResource
}

// FoundHook returns a resource hook recording the outcome of the finds of the
// resource named name.
func FoundHook(name string) resource.FoundEventHandlerFunc {
	return func(ctx context.Context, q *query.Query, list **resource.ItemList, err *error) {
		if *err != nil {
			FindErrors.WithLabelValues(name, errorKind(*err)).Inc()
			return
		}
		if *list != nil {
			ItemsFound.WithLabelValues(name).Observe(float64(len((*list).Items)))
		}
	}
}

func errorKind(err error) string {
	var qErr *query.Error
	switch {
	case errors.As(err, &qErr):
		return qErr.Kind.String()
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline_exceeded"
	default:
		return "storage"
	}
}

// Instrument attaches FoundHook to every resource of i.
func Instrument(i resource.Index) error {
	for _, r := range i.GetResources() {
		if err := r.Use(FoundHook(r.Name())); err != nil {
			return err
		}
	}
	return nil
}
