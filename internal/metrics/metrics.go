// Package metrics collects storefront runtime metrics: HTTP traffic, cart
// activity and checkout outcomes.
// Package metrics 采集商店运行时指标：HTTP流量、购物车活动和结账结果。
//
// Counters are updated with atomic operations so recording stays off the
// request path's critical section. A Detailed collector additionally keeps a
// request latency histogram.
//
// 计数器使用原子操作更新，记录操作不会占用请求路径的临界区。
// Detailed 级别的收集器额外维护请求延迟直方图。
package metrics

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// Level defines the metrics collection level.
// Level 定义指标采集级别。
type Level int

const (
	// Disabled turns every Record call into a no-op.
	// Disabled 表示禁用指标采集。
	Disabled Level = iota

	// Basic collects counters only.
	// Basic 仅采集计数器。
	Basic

	// Detailed adds the request latency histogram.
	// Detailed 额外采集请求延迟直方图。
	Detailed
)

// ParseLevel maps a configuration string to a Level.
//
// ParseLevel 将配置字符串映射为Level。
//
// Parameters:
//   - s: "disabled", "basic" or "detailed"
//
// Returns:
//   - Level: The parsed level
//   - error: Non-nil for any other value
func ParseLevel(s string) (Level, error) {
	switch s {
	case "disabled":
		return Disabled, nil
	case "basic":
		return Basic, nil
	case "detailed":
		return Detailed, nil
	default:
		return Disabled, fmt.Errorf("metrics: unknown level %q", s)
	}
}

// Metrics is the storefront metrics collector. The zero value is not usable;
// construct with New.
//
// Metrics 是商店指标收集器。零值不可用，请使用New创建。
type Metrics struct {
	level Level

	// HTTP
	requests      uint64 // Handled requests / 已处理请求数
	clientErrors  uint64 // 4xx responses / 4xx响应数
	serverErrors  uint64 // 5xx responses / 5xx响应数
	latencySumNs  uint64
	latencyBucket *Histogram

	// Cart
	added         uint64 // New cart lines / 新增购物车行
	incremented   uint64 // Quantity increments / 数量递增
	contactRouted uint64 // Contact-priced add attempts / 询价商品添加尝试
	stockRejected uint64 // Adds rejected by stock / 因库存被拒绝的添加

	// Checkout
	orders         uint64 // Submitted orders / 已提交订单
	orderFailures  uint64 // Rejected or failed checkouts / 失败的结账
	orderValueUnit int64  // Sum of final totals in whole currency units / 订单最终金额总和（整数单位）
}

// Snapshot is a point-in-time copy of all counters.
//
// Snapshot 是所有计数器的时间点副本。
type Snapshot struct {
	Requests       uint64             `json:"requests"`
	ClientErrors   uint64             `json:"client_errors"`
	ServerErrors   uint64             `json:"server_errors"`
	LatencyAvg     time.Duration      `json:"latency_avg"`
	Latency        *HistogramSnapshot `json:"latency,omitempty"`
	CartAdded      uint64             `json:"cart_added"`
	CartIncrements uint64             `json:"cart_increments"`
	ContactRouted  uint64             `json:"contact_routed"`
	StockRejected  uint64             `json:"stock_rejected"`
	Orders         uint64             `json:"orders"`
	OrderFailures  uint64             `json:"order_failures"`
	OrderValue     decimal.Decimal    `json:"order_value"`
}

// New creates a collector at the given level.
//
// New 创建一个指定级别的收集器。
//
// Parameters:
//   - level: Collection level
//
// Returns:
//   - *Metrics: A new collector
func New(level Level) *Metrics {
	m := &Metrics{level: level}
	if level >= Detailed {
		m.latencyBucket = NewHistogram(DefaultBuckets)
	}
	return m
}

// Level returns the collection level.
func (m *Metrics) Level() Level {
	return m.level
}

// RecordRequest records one handled HTTP request.
//
// RecordRequest 记录一个已处理的HTTP请求。
func (m *Metrics) RecordRequest(status int, latency time.Duration) {
	if m == nil || m.level == Disabled {
		return
	}
	atomic.AddUint64(&m.requests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&m.serverErrors, 1)
	case status >= 400:
		atomic.AddUint64(&m.clientErrors, 1)
	}
	if latency < 0 {
		latency = 0
	}
	atomic.AddUint64(&m.latencySumNs, uint64(latency))
	if m.latencyBucket != nil {
		m.latencyBucket.Record(latency)
	}
}

// RecordCartAdd records the outcome of an add-to-cart call.
// Outcome strings match cart.Outcome.String.
//
// RecordCartAdd 记录一次加入购物车的结果。
func (m *Metrics) RecordCartAdd(outcome string) {
	if m == nil || m.level == Disabled {
		return
	}
	switch outcome {
	case "added":
		atomic.AddUint64(&m.added, 1)
	case "incremented":
		atomic.AddUint64(&m.incremented, 1)
	case "contact":
		atomic.AddUint64(&m.contactRouted, 1)
	}
}

// RecordStockRejection records an add refused for insufficient stock.
func (m *Metrics) RecordStockRejection() {
	if m == nil || m.level == Disabled {
		return
	}
	atomic.AddUint64(&m.stockRejected, 1)
}

// RecordOrder records a submitted order and its final total.
//
// RecordOrder 记录一个已提交订单及其最终金额。
func (m *Metrics) RecordOrder(final decimal.Decimal) {
	if m == nil || m.level == Disabled {
		return
	}
	atomic.AddUint64(&m.orders, 1)
	atomic.AddInt64(&m.orderValueUnit, final.Round(0).IntPart())
}

// RecordOrderFailure records a checkout that did not produce a submitted order.
func (m *Metrics) RecordOrderFailure() {
	if m == nil || m.level == Disabled {
		return
	}
	atomic.AddUint64(&m.orderFailures, 1)
}

// Snapshot returns the current counters.
//
// Snapshot 返回当前计数器的值。
//
// Returns:
//   - *Snapshot: Copy of the counters, never nil
func (m *Metrics) Snapshot() *Snapshot {
	s := &Snapshot{
		Requests:       atomic.LoadUint64(&m.requests),
		ClientErrors:   atomic.LoadUint64(&m.clientErrors),
		ServerErrors:   atomic.LoadUint64(&m.serverErrors),
		CartAdded:      atomic.LoadUint64(&m.added),
		CartIncrements: atomic.LoadUint64(&m.incremented),
		ContactRouted:  atomic.LoadUint64(&m.contactRouted),
		StockRejected:  atomic.LoadUint64(&m.stockRejected),
		Orders:         atomic.LoadUint64(&m.orders),
		OrderFailures:  atomic.LoadUint64(&m.orderFailures),
		OrderValue:     decimal.NewFromInt(atomic.LoadInt64(&m.orderValueUnit)),
	}
	if s.Requests > 0 {
		s.LatencyAvg = time.Duration(atomic.LoadUint64(&m.latencySumNs) / s.Requests)
	}
	if m.latencyBucket != nil {
		s.Latency = m.latencyBucket.Snapshot()
	}
	return s
}
