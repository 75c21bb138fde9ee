// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordPersonCreated()
	RecordPersonDeleted()
	RecordLookup(found bool)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	personsCreated prometheus.Counter
	personsDeleted prometheus.Counter
	lookups        *prometheus.CounterVec
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		personsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "personstore_persons_created_total",
			Help: "登録された人物レコードの合計数",
		}),
		personsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "personstore_persons_deleted_total",
			Help: "削除された人物レコードの合計数",
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "personstore_lookups_total",
			Help: "ID検索の合計数（結果別）",
		}, []string{"outcome"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "personstore_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "personstore_request_latency_seconds",
			Help:    "HTTPリクエストのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.personsCreated,
		c.personsDeleted,
		c.lookups,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordPersonCreated は人物レコードの登録を記録する。
func (c *Collector) RecordPersonCreated() {
	c.personsCreated.Inc()
}

// RecordPersonDeleted は人物レコードの削除を記録する。
func (c *Collector) RecordPersonDeleted() {
	c.personsDeleted.Inc()
}

// RecordLookup はID検索の結果を記録する。
func (c *Collector) RecordLookup(found bool) {
	outcome := "found"
	if !found {
		outcome = "not_found"
	}
	c.lookups.WithLabelValues(outcome).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエストのレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
