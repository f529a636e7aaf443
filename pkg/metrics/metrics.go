// Package metrics 提供基于Prometheus的指标收集
//
// 指标类型:
// - Counter:只增不减的累计值(请求总数、变更事件总数)
// - Gauge:可增可减的瞬时值(正在处理的请求数)
// - Histogram:观测值分布(请求耗时,自动计算P50/P90/P99)
//
// 指标通过/metrics端点暴露,由Prometheus周期抓取
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化(防止重复注册)
	initialized bool

	// HTTP请求指标

	// HTTPRequestsTotal HTTP请求总数(Counter)
	// 标签:method(GET/POST)、path(/api/v1/books)、status(200/404)
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时(Histogram)
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数(Gauge)
	HTTPRequestsInProgress prometheus.Gauge

	// 目录业务指标

	// BooksCreatedTotal 图书创建总数(Counter)
	BooksCreatedTotal prometheus.Counter

	// BooksDeletedTotal 图书删除总数(Counter)
	BooksDeletedTotal prometheus.Counter

	// AuthorsCreatedTotal 作者创建总数(Counter)
	AuthorsCreatedTotal prometheus.Counter

	// CatalogListDuration 列表查询管线耗时(Histogram)
	// 标签:resource(books/authors)
	CatalogListDuration *prometheus.HistogramVec

	// 消息队列指标

	// MessagesPublishedTotal 目录事件发布总数(Counter)
	// 标签:routing_key(catalog.book.created等)
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesPublishFailedTotal 目录事件发布失败总数(Counter)
	MessagesPublishFailedTotal prometheus.Counter
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次,使用promauto自动注册到默认Registry
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时(秒)",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	BooksCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_books_created_total",
			Help: "图书创建总数",
		},
	)

	BooksDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_books_deleted_total",
			Help: "图书删除总数",
		},
	)

	AuthorsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_authors_created_total",
			Help: "作者创建总数",
		},
	)

	CatalogListDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_list_duration_seconds",
			Help:    "列表查询管线耗时(秒)",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"resource"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_messages_published_total",
			Help: "目录事件发布总数",
		},
		[]string{"routing_key"},
	)

	MessagesPublishFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_messages_publish_failed_total",
			Help: "目录事件发布失败总数",
		},
	)
}

// IncCounter 递增Counter(便捷函数)
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec(带标签)
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值(带标签)
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
