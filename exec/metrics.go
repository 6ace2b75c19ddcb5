package exec

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batchesProcessedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "copr_agg_batches_processed_total",
		Help: "counter for number of row batches processed by aggregation operators",
	})
	rowsProcessedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "copr_agg_rows_processed_total",
		Help: "counter for number of logical rows processed by aggregation operators",
	})
	groupsCreatedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "copr_agg_groups_created_total",
		Help: "counter for number of aggregation groups opened",
	})
	batchSizeHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "copr_agg_batch_size_rows",
		Help: "histogram measuring the number of logical rows per processed batch",
	})
)
