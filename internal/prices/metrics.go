package prices

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const countTimeout = 1 * time.Second

var recordsDesc = prometheus.NewDesc(
	"prices_records",
	"Number of price records currently held.",
	nil, nil,
)

// RecordsCollector reports the store size at scrape time.
type RecordsCollector struct {
	store Store
	log   *zap.Logger
}

func NewRecordsCollector(store Store, log *zap.Logger) *RecordsCollector {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecordsCollector{store: store, log: log}
}

func (c *RecordsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- recordsDesc
}

func (c *RecordsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), countTimeout)
	defer cancel()

	n, err := c.store.Count(ctx)
	if err != nil {
		c.log.Warn("count prices failed", zap.Error(err))
		ch <- prometheus.NewInvalidMetric(recordsDesc, err)
		return
	}
	ch <- prometheus.MustNewConstMetric(recordsDesc, prometheus.GaugeValue, float64(n))
}
