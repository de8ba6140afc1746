package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
)

const defaultMetricPrefix = "storefront"

// GaugeFunc reads a value at export time.
type GaugeFunc func() float64

type gauge struct {
	name string
	help string
	read GaugeFunc
}

// PrometheusExporter renders a collector in the Prometheus text exposition format.
//
// PrometheusExporter 以Prometheus文本格式导出指标。
type PrometheusExporter struct {
	metrics *Metrics
	prefix  string

	mu     sync.Mutex
	gauges []gauge
}

// NewPrometheusExporter creates an exporter for m.
//
// NewPrometheusExporter 为m创建一个导出器。
func NewPrometheusExporter(m *Metrics) *PrometheusExporter {
	return &PrometheusExporter{metrics: m, prefix: defaultMetricPrefix}
}

// AddGauge registers a value read on every export, e.g. live session count.
//
// AddGauge 注册一个在每次导出时读取的值，例如活跃会话数。
//
// Parameters:
//   - name: Metric name without prefix
//   - help: HELP text
//   - read: Function returning the current value
func (p *PrometheusExporter) AddGauge(name, help string, read GaugeFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gauges = append(p.gauges, gauge{name: name, help: help, read: read})
}

// Export returns the current metrics as Prometheus text.
func (p *PrometheusExporter) Export() string {
	s := p.metrics.Snapshot()
	var buf bytes.Buffer

	p.writeCounter(&buf, "http_requests_total", "Handled HTTP requests", s.Requests)
	p.writeCounter(&buf, "http_client_errors_total", "HTTP responses with a 4xx status", s.ClientErrors)
	p.writeCounter(&buf, "http_server_errors_total", "HTTP responses with a 5xx status", s.ServerErrors)
	p.writeGauge(&buf, "http_latency_avg_seconds", "Average request latency", s.LatencyAvg.Seconds())

	p.writeCounter(&buf, "cart_lines_added_total", "Products added as a new cart line", s.CartAdded)
	p.writeCounter(&buf, "cart_increments_total", "Cart line quantity increments", s.CartIncrements)
	p.writeCounter(&buf, "cart_contact_routed_total", "Add attempts for contact-priced products", s.ContactRouted)
	p.writeCounter(&buf, "cart_stock_rejected_total", "Add attempts rejected for insufficient stock", s.StockRejected)

	p.writeCounter(&buf, "orders_total", "Submitted orders", s.Orders)
	p.writeCounter(&buf, "order_failures_total", "Checkouts that did not submit an order", s.OrderFailures)
	p.writeGauge(&buf, "order_value_total", "Sum of submitted order final totals", s.OrderValue.InexactFloat64())

	p.mu.Lock()
	for _, g := range p.gauges {
		p.writeGauge(&buf, g.name, g.help, g.read())
	}
	p.mu.Unlock()

	if s.Latency != nil {
		p.writeHistogram(&buf, "http_latency_seconds", "Request latency distribution", s.Latency)
	}
	return buf.String()
}

func (p *PrometheusExporter) writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	metricName := p.prefix + "_" + name
	fmt.Fprintf(buf, "# HELP %s %s\n", metricName, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", metricName)
	fmt.Fprintf(buf, "%s %d\n", metricName, value)
}

func (p *PrometheusExporter) writeGauge(buf *bytes.Buffer, name, help string, value float64) {
	metricName := p.prefix + "_" + name
	fmt.Fprintf(buf, "# HELP %s %s\n", metricName, help)
	fmt.Fprintf(buf, "# TYPE %s gauge\n", metricName)
	fmt.Fprintf(buf, "%s %g\n", metricName, value)
}

// writeHistogram emits cumulative buckets in seconds.
func (p *PrometheusExporter) writeHistogram(buf *bytes.Buffer, name, help string, h *HistogramSnapshot) {
	metricName := p.prefix + "_" + name
	fmt.Fprintf(buf, "# HELP %s %s\n", metricName, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", metricName)

	var cum uint64
	for i, bound := range h.Bounds {
		cum += h.Counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%g\"} %d\n", metricName, float64(bound)/1e9, cum)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", metricName, h.Count)
	fmt.Fprintf(buf, "%s_sum %g\n", metricName, float64(h.Sum)/1e9)
	fmt.Fprintf(buf, "%s_count %d\n", metricName, h.Count)
}

// ServeHTTP implements http.Handler.
func (p *PrometheusExporter) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	_, _ = w.Write([]byte(p.Export()))
}
