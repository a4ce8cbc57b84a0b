package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PhotosProcessed *prometheus.CounterVec
	BatchesStarted  *prometheus.CounterVec
	BatchSeconds    *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		PhotosProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "seo_photos_processed_total",
			Help: "Total number of photos stamped with synthetic metadata.",
		}, []string{"status"}),
		BatchesStarted: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "seo_photo_batches_total",
			Help: "Total number of processing batches by kind.",
		}, []string{"kind"}),
		BatchSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "seo_photo_batch_duration_seconds",
			Help:    "Duration of one processing batch.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
}
