// Package metrics defines all custom Prometheus metrics for the storefront.
// It is the single source of truth for metric names, labels, and help
// strings; metrics self-register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// BackendRequestsTotal counts calls made through the API gateway client.
// Labels:
//   - endpoint: logical endpoint name (e.g. "admin_users")
//   - outcome: "ok", "rejected" (non-2xx with server message) or "error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of backend API calls, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// BackendRequestDuration measures backend call latency per endpoint.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend API calls from request to parsed response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// LoginsTotal counts login and registration attempts.
// Labels:
//   - flow: "login" or "register"
//   - result: "ok", "rejected" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login/registration attempts, by flow and result.",
	},
	[]string{"flow", "result"},
)

// SessionVerificationsTotal counts startup token verifications.
// Label:
//   - result: "ok" or "discarded"
var SessionVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_verifications_total",
		Help:      "Total number of persisted-token verifications, by result.",
	},
	[]string{"result"},
)

// RatingsSubmittedTotal counts star ratings sent to the backend.
var RatingsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of store ratings submitted.",
	},
)

// OwnerSearchTotal counts debounced owner-search outcomes.
// Label:
//   - result: "fired" (query reached the backend), "superseded" (a newer
//     keystroke won) or "error"
var OwnerSearchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "owner_search_total",
		Help:      "Total number of owner search attempts, by result.",
	},
	[]string{"result"},
)
