package topicquery

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("topicreview.topicquery")

var (
	queryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "topicquery_queries_total",
		Help: "Topic queries executed, by outcome",
	}, []string{"outcome"})

	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "topicquery_duration_seconds",
		Help:    "Time spent compiling and reading a topic query",
		Buckets: prometheus.DefBuckets,
	})

	sourceRestarts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "topicquery_source_restarts_total",
		Help: "Paginated source restarts issued after filtered candidates",
	})

	queryRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "topicquery_result_rows",
		Help:    "Rows returned per topic query",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})
)

const (
	outcomeOK          = "ok"
	outcomeParseError  = "parse_error"
	outcomeStoreError  = "store_error"
	outcomeUnsupported = "unsupported"
)

func startQuerySpan(ctx context.Context, name, text string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("topicquery.query", text)))
}
