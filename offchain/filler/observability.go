package filler

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openalpha/dlob-filler/dlob"
)

var (
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds the metrics a matching core's external driver emits:
// book depth, fill/trigger throughput, best prices, and scan latency (the
// handful of series a DLOB-driving filler actually produces, not the
// dozens of series a full exchange backend would carry).
type Collector struct {
	OrdersTotal     *prometheus.CounterVec
	OrderbookDepth  *prometheus.GaugeVec
	FillsTotal      *prometheus.CounterVec
	TriggersTotal   *prometheus.CounterVec
	MatchingLatency *prometheus.HistogramVec
	TriggerLatency  *prometheus.HistogramVec
	BestAsk         *prometheus.GaugeVec
	BestBid         *prometheus.GaugeVec
}

// GetCollector returns the process-wide metrics collector.
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

func newCollector() *Collector {
	c := &Collector{
		OrdersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dlobfiller",
			Subsystem: "orders",
			Name:      "total",
			Help:      "Total number of order mutations processed",
		}, []string{"market_index", "op"}),

		OrderbookDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dlobfiller",
			Subsystem: "book",
			Name:      "depth",
			Help:      "Resting node count per market/class/side",
		}, []string{"market_index", "class", "side"}),

		FillsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dlobfiller",
			Subsystem: "matching",
			Name:      "fills_total",
			Help:      "Total fills produced by FindNodesToFill",
		}, []string{"market_index"}),

		TriggersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dlobfiller",
			Subsystem: "matching",
			Name:      "triggers_total",
			Help:      "Total orders flipped active by FindNodesToTrigger",
		}, []string{"market_index"}),

		MatchingLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dlobfiller",
			Subsystem: "matching",
			Name:      "latency_ms",
			Help:      "FindNodesToFill call latency in milliseconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50},
		}, []string{"market_index"}),

		TriggerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dlobfiller",
			Subsystem: "matching",
			Name:      "trigger_scan_latency_ms",
			Help:      "FindNodesToTrigger call latency in milliseconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50},
		}, []string{"market_index"}),

		BestAsk: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dlobfiller",
			Subsystem: "book",
			Name:      "best_ask",
			Help:      "Current best ask as a float approximation",
		}, []string{"market_index"}),

		BestBid: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dlobfiller",
			Subsystem: "book",
			Name:      "best_bid",
			Help:      "Current best bid as a float approximation",
		}, []string{"market_index"}),
	}

	prometheus.MustRegister(
		c.OrdersTotal,
		c.OrderbookDepth,
		c.FillsTotal,
		c.TriggersTotal,
		c.MatchingLatency,
		c.TriggerLatency,
		c.BestAsk,
		c.BestBid,
	)

	return c
}

// RecordOrder records an order mutation.
func (c *Collector) RecordOrder(marketIndex uint16, op string) {
	c.OrdersTotal.WithLabelValues(marketIndexLabel(marketIndex), op).Inc()
}

// RecordFills records a batch of fills for a market.
func (c *Collector) RecordFills(marketIndex uint16, n int) {
	c.FillsTotal.WithLabelValues(marketIndexLabel(marketIndex)).Add(float64(n))
}

// RecordTriggers records a batch of trigger activations for a market.
func (c *Collector) RecordTriggers(marketIndex uint16, n int) {
	c.TriggersTotal.WithLabelValues(marketIndexLabel(marketIndex)).Add(float64(n))
}

// RecordDepth publishes a market's resting node counts per class and side.
func (c *Collector) RecordDepth(depth *dlob.MarketDepth) {
	label := marketIndexLabel(depth.MarketIndex)
	for _, cd := range depth.Classes {
		c.OrderbookDepth.WithLabelValues(label, cd.Class, cd.Side).Set(float64(cd.Count))
	}
}

// RecordBestPrices publishes the current best ask/bid for a market.
func (c *Collector) RecordBestPrices(marketIndex uint16, bestAsk, bestBid math.LegacyDec) {
	label := marketIndexLabel(marketIndex)
	if f, err := bestAsk.Float64(); err == nil {
		c.BestAsk.WithLabelValues(label).Set(f)
	}
	if f, err := bestBid.Float64(); err == nil {
		c.BestBid.WithLabelValues(label).Set(f)
	}
}

func marketIndexLabel(marketIndex uint16) string {
	return strconv.FormatUint(uint64(marketIndex), 10)
}

// Handler returns the Prometheus HTTP handler for a metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer measures call latency for the histogram metrics above.
type Timer struct{ start time.Time }

func NewTimer() *Timer { return &Timer{start: time.Now()} }

func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
