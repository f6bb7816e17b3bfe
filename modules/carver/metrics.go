package carver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "mp3carve"

var (
	metricFilesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "files_processed_total",
		Help:      "Input files carved, by outcome.",
	}, []string{"status"})

	metricStreamsExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "streams_extracted_total",
		Help:      "Streams recovered, by swap phase.",
	}, []string{"phase"})

	metricStreamBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "stream_bytes_total",
		Help:      "Bytes of recovered streams.",
	})

	metricCarveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "file_carve_duration_seconds",
		Help:      "Time spent carving a single file.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
	})
)
