// Package metrics defines and registers all custom Prometheus metrics for the
// ERP API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry at package
// init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "erp"

// ── Enquiry metrics ───────────────────────────────────────────────────────────

// EnquiriesCreatedTotal counts enquiries accepted through the public form.
var EnquiriesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enquiries_created_total",
		Help:      "Total number of enquiries created.",
	},
)

// SequenceFallbacksTotal counts display-id allocations that fell back to the
// legacy count+1 path because the atomic allocator was unavailable.
var SequenceFallbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sequence_fallbacks_total",
		Help:      "Total number of enquiry id allocations served by the non-atomic fallback.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Media metrics ─────────────────────────────────────────────────────────────

// UploadsTotal counts upload requests handled by the media relay.
// Label:
//   - outcome: "ok", "rejected" (failed pre-network validation) or "failed"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of media uploads, by outcome.",
	},
	[]string{"outcome"},
)

// UploadBytes observes the declared size of accepted uploads.
var UploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_bytes",
		Help:      "Declared size in bytes of uploads that passed validation.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 6), // 1KiB … 1GiB-ish cap
	},
)

// CleanupFailuresTotal counts best-effort media deletes that failed. Deletes
// are never fatal to the owning request; this counter is how they stay
// observable.
var CleanupFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_cleanup_failures_total",
		Help:      "Total number of failed background media asset deletions.",
	},
)
