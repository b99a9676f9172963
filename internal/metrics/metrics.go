// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	registrations prometheus.Counter
	logins        *prometheus.CounterVec
	tradesCreated prometheus.Counter
	tradesDeleted prometheus.Counter
	httpStatus    *prometheus.CounterVec
	httpDuration  prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradelog_registrations_total",
			Help: "ユーザー登録成功の合計数",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradelog_logins_total",
			Help: "結果（success/failure）別のログイン試行数",
		}, []string{"result"}),
		tradesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradelog_trades_created_total",
			Help: "作成されたトレード記録の合計数",
		}),
		tradesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradelog_trades_deleted_total",
			Help: "削除されたトレード記録の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradelog_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradelog_http_request_duration_seconds",
			Help:    "HTTPリクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.registrations,
		c.logins,
		c.tradesCreated,
		c.tradesDeleted,
		c.httpStatus,
		c.httpDuration,
	)

	return c
}

// RecordRegistration はユーザー登録成功を記録する。
func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

// RecordLogin はログイン試行の結果を記録する。resultは"success"または"failure"。
func (c *Collector) RecordLogin(result string) {
	c.logins.WithLabelValues(result).Inc()
}

// RecordTradeCreated はトレード作成を記録する。
func (c *Collector) RecordTradeCreated() {
	c.tradesCreated.Inc()
}

// RecordTradeDeleted はトレード削除を記録する。
func (c *Collector) RecordTradeDeleted() {
	c.tradesDeleted.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordHTTPDuration はHTTPリクエストの処理時間を記録する。
func (c *Collector) RecordHTTPDuration(duration time.Duration) {
	c.httpDuration.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
