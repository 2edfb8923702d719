package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "go_youtube"

// Package-level Prometheus metrics, auto-registered on the default registry.
var (
	apiCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "ytapi",
		Name:      "calls_total",
		Help:      "YouTube Data API calls by operation and status.",
	}, []string{"op", "status"})

	apiCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "ytapi",
		Name:      "call_duration_seconds",
		Help:      "Duration of YouTube Data API calls including retries.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"op"})

	apiRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "ytapi",
		Name:      "retries_total",
		Help:      "Retried YouTube Data API attempts by operation.",
	}, []string{"op"})

	quotaEstimatedUnits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "quota",
		Name:      "estimated_units_total",
		Help:      "Sum of accepted pre-flight quota estimates by strategy.",
	}, []string{"strategy"})

	quotaRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "quota",
		Name:      "rejections_total",
		Help:      "Plans rejected for exceeding the caller budget.",
	}, []string{"strategy"})

	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "channel",
		Name:      "resolutions_total",
		Help:      "Channel reference resolutions by reference kind and outcome.",
	}, []string{"kind", "outcome"})
)

// ObserveAPICall records one completed backend call. status is "ok" or an error kind.
func ObserveAPICall(op, status string, elapsed time.Duration) {
	apiCallsTotal.WithLabelValues(op, status).Inc()
	apiCallDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// Incrementors for sub-packages.
func IncrAPIRetry(op string)              { apiRetriesTotal.WithLabelValues(op).Inc() }
func IncrQuotaRejection(strategy string)  { quotaRejectionsTotal.WithLabelValues(strategy).Inc() }
func IncrResolution(kind, outcome string) { resolutionsTotal.WithLabelValues(kind, outcome).Inc() }

// AddEstimatedUnits accumulates an accepted quota estimate.
func AddEstimatedUnits(strategy string, units int) {
	quotaEstimatedUnits.WithLabelValues(strategy).Add(float64(units))
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
// Counters render as "name{labels} value"; histograms render their _count and _sum.
func FormatMetrics() string {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		slog.Warn("metrics gather failed", slog.Any("error", err))
	}

	var lines []string
	for _, mf := range families {
		name := mf.GetName()
		if !strings.HasPrefix(name, metricsNamespace+"_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			suffix := ""
			if len(labels) > 0 {
				suffix = "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s%s %g", name, suffix, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines,
					fmt.Sprintf("%s_count%s %d", name, suffix, h.GetSampleCount()),
					fmt.Sprintf("%s_sum%s %g", name, suffix, h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
