// Package metrics defines and registers the custom Prometheus metrics
// for the media tracker API. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics register with the default registry at import time via
// promauto; the /metrics endpoint and the HTTP-level metrics come from
// echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mediashelf"

// SignupsTotal counts created accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ListMutationsTotal counts successful list and membership mutations.
// Label:
//   - operation: "create_list", "rename_list", "delete_list",
//     "add_item", "update_item", "remove_item"
var ListMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_mutations_total",
		Help:      "Total number of successful list mutations, by operation.",
	},
	[]string{"operation"},
)

// ItemsCreatedTotal counts catalog items created by admins.
// Label:
//   - type: the item type (e.g. "movie")
var ItemsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_created_total",
		Help:      "Total number of catalog items created, by item type.",
	},
	[]string{"type"},
)
