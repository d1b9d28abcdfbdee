// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed through the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Listing metrics ───────────────────────────────────────────────────────────

// ListingRequestsTotal counts storefront listing requests.
// Label:
//   - result: "ok", "invalid_sort" or "error"
var ListingRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_requests_total",
		Help:      "Total number of storefront listing requests, by result.",
	},
	[]string{"result"},
)

// ListingDuration measures the time spent building one listing page.
var ListingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "listing_duration_seconds",
		Help:      "Duration of storefront listing requests from parsing to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests stopped by the auth chain.
// Label:
//   - reason: "unauthenticated" or "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or role checks.",
	},
	[]string{"reason"},
)

// RateLimitHitsTotal counts requests rejected by the rate limiter.
var RateLimitHitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_hits_total",
		Help:      "Total number of requests rejected by the rate limiter, by route.",
	},
	[]string{"route"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

var ProductsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products created.",
	},
)

// ImageCleanupsTotal counts background image removals.
// Label:
//   - result: "ok", "error" or "dropped" (queue full)
var ImageCleanupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_cleanups_total",
		Help:      "Total number of image cleanup jobs, by result.",
	},
	[]string{"result"},
)

// CleanupQueueDepth tracks the jobs waiting in each cleanup worker channel.
var CleanupQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cleanup_queue_depth",
		Help:      "Current number of image cleanup jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)
