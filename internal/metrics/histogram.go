package metrics

import (
	"math"
	"sort"
	"sync/atomic"
	"time"
)

// DefaultBuckets is the bucket count used by Detailed collectors.
const DefaultBuckets = 16

const (
	minBoundNs = int64(100 * time.Microsecond)
	maxBoundNs = int64(10 * time.Second)
)

// Histogram is a lock-free latency histogram with logarithmic buckets
// between 100µs and 10s. Values above the last bound land in the overflow bucket.
//
// Histogram 是无锁延迟直方图，桶边界在100微秒到10秒之间按对数分布。
// 超过最后边界的值落入溢出桶。
type Histogram struct {
	bounds []int64  // upper bound of each bucket, ns
	counts []uint64 // len(bounds)+1; the last entry is the overflow bucket
	count  uint64
	sum    int64
	max    int64
}

// HistogramSnapshot is a copy of a histogram's state.
//
// HistogramSnapshot 直方图快照。
type HistogramSnapshot struct {
	Bounds []int64  `json:"bounds"`
	Counts []uint64 `json:"counts"`
	Count  uint64   `json:"count"`
	Sum    int64    `json:"sum"`
	Max    int64    `json:"max"`
	P50    int64    `json:"p50"`
	P90    int64    `json:"p90"`
	P99    int64    `json:"p99"`
}

// NewHistogram creates a histogram with n logarithmic buckets.
//
// NewHistogram 创建一个具有n个对数分布桶的直方图。
//
// Parameters:
//   - n: Number of buckets; values below 1 use DefaultBuckets
//
// Returns:
//   - *Histogram: A new histogram
func NewHistogram(n int) *Histogram {
	if n < 1 {
		n = DefaultBuckets
	}
	bounds := make([]int64, n)
	ratio := float64(maxBoundNs) / float64(minBoundNs)
	for i := range bounds {
		exp := 1.0
		if n > 1 {
			exp = float64(i) / float64(n-1)
		}
		bounds[i] = int64(float64(minBoundNs) * math.Pow(ratio, exp))
	}
	return &Histogram{
		bounds: bounds,
		counts: make([]uint64, n+1),
	}
}

// Record adds one observation.
func (h *Histogram) Record(d time.Duration) {
	ns := int64(d)
	idx := sort.Search(len(h.bounds), func(i int) bool { return ns <= h.bounds[i] })
	atomic.AddUint64(&h.counts[idx], 1)
	atomic.AddUint64(&h.count, 1)
	atomic.AddInt64(&h.sum, ns)
	for {
		cur := atomic.LoadInt64(&h.max)
		if ns <= cur || atomic.CompareAndSwapInt64(&h.max, cur, ns) {
			break
		}
	}
}

// Snapshot returns a copy of the histogram with p50/p90/p99 estimates.
//
// Snapshot 返回直方图副本以及p50/p90/p99估算值。
func (h *Histogram) Snapshot() *HistogramSnapshot {
	counts := make([]uint64, len(h.counts))
	var total uint64
	for i := range h.counts {
		counts[i] = atomic.LoadUint64(&h.counts[i])
		total += counts[i]
	}
	bounds := make([]int64, len(h.bounds))
	copy(bounds, h.bounds)

	s := &HistogramSnapshot{
		Bounds: bounds,
		Counts: counts,
		Count:  total,
		Sum:    atomic.LoadInt64(&h.sum),
		Max:    atomic.LoadInt64(&h.max),
	}
	s.P50 = s.percentile(0.50)
	s.P90 = s.percentile(0.90)
	s.P99 = s.percentile(0.99)
	return s
}

// percentile returns the upper bound of the bucket holding the p-th
// observation, or Max when it falls in the overflow bucket.
func (s *HistogramSnapshot) percentile(p float64) int64 {
	if s.Count == 0 {
		return 0
	}
	target := uint64(math.Ceil(float64(s.Count) * p))
	var cum uint64
	for i, c := range s.Counts {
		cum += c
		if cum >= target {
			if i < len(s.Bounds) {
				return s.Bounds[i]
			}
			return s.Max
		}
	}
	return s.Max
}
