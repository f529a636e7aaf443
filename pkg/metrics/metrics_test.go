package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if HTTPRequestsInProgress == nil {
		t.Error("HTTPRequestsInProgress未初始化")
	}
	if BooksCreatedTotal == nil {
		t.Error("BooksCreatedTotal未初始化")
	}

	// 重复调用不应panic(promauto重复注册会panic,靠initialized标记防护)
	InitMetrics()

	t.Log("✅ 所有指标初始化成功")
}

// TestCounter 测试Counter指标
func TestCounter(t *testing.T) {
	InitMetrics()

	initialValue := getCounterValue(t, BooksCreatedTotal)

	IncCounter(BooksCreatedTotal)
	IncCounter(BooksCreatedTotal)
	IncCounter(BooksCreatedTotal)

	value := getCounterValue(t, BooksCreatedTotal)
	if value != initialValue+3 {
		t.Errorf("Counter值错误: expected=%f, got=%f", initialValue+3, value)
	}

	t.Log("✅ Counter测试通过")
}

// TestCounterVec 测试CounterVec指标
func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{
		"method": "GET",
		"path":   "/api/v1/books",
		"status": "200",
	}

	initialValue := getCounterVecValue(t, HTTPRequestsTotal, labels)

	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, map[string]string{
		"method": "POST",
		"path":   "/api/v1/books/create",
		"status": "201",
	})
	IncCounterVec(HTTPRequestsTotal, labels)

	value := getCounterVecValue(t, HTTPRequestsTotal, labels)
	if value != initialValue+2 {
		t.Errorf("CounterVec值错误: expected=%f, got=%f", initialValue+2, value)
	}

	t.Log("✅ CounterVec测试通过")
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()

	SetGauge(HTTPRequestsInProgress, 0)

	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	if value := getGaugeValue(t, HTTPRequestsInProgress); value != 2 {
		t.Errorf("Gauge递增后值错误: expected=2, got=%f", value)
	}

	DecGauge(HTTPRequestsInProgress)
	if value := getGaugeValue(t, HTTPRequestsInProgress); value != 1 {
		t.Errorf("Gauge递减后值错误: expected=1, got=%f", value)
	}

	SetGauge(HTTPRequestsInProgress, 10)
	if value := getGaugeValue(t, HTTPRequestsInProgress); value != 10 {
		t.Errorf("Gauge设置后值错误: expected=10, got=%f", value)
	}

	t.Log("✅ Gauge测试通过")
}

// TestHistogramVec 测试HistogramVec指标
func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"resource": "books"}
	initialCount := getHistogramVecCount(t, CatalogListDuration, labels)

	ObserveHistogramVec(CatalogListDuration, labels, 0.01)
	ObserveHistogramVec(CatalogListDuration, labels, 0.05)
	ObserveHistogramVec(CatalogListDuration, map[string]string{"resource": "authors"}, 0.02)

	count := getHistogramVecCount(t, CatalogListDuration, labels)
	if count != initialCount+2 {
		t.Errorf("HistogramVec观测次数错误: expected=%d, got=%d", initialCount+2, count)
	}

	t.Log("✅ HistogramVec测试通过")
}

// 辅助函数:获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数:获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	counter := counterVec.With(labels)
	if err := counter.(prometheus.Counter).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数:获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数:获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
