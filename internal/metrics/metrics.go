// Package metrics holds the Prometheus collectors the engine process
// exposes on its /metrics endpoint.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors groups every metric the engine process registers. One
// instance per process; per-symbol shards share it, labeling by symbol.
type Collectors struct {
	OrdersProcessed *prometheus.CounterVec
	TradesEmitted   *prometheus.CounterVec
	TradeVolume     *prometheus.CounterVec
	BookDepth       *prometheus.GaugeVec
	MatchLatency    *prometheus.HistogramVec
}

// NewCollectors builds and registers every collector against reg.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		OrdersProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loki",
			Subsystem: "engine",
			Name:      "orders_processed_total",
			Help:      "Orders passed to ProcessOrder, by symbol and order type.",
		}, []string{"symbol", "order_type"}),
		TradesEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loki",
			Subsystem: "engine",
			Name:      "trades_emitted_total",
			Help:      "Trades emitted by ProcessOrder, by symbol.",
		}, []string{"symbol"}),
		TradeVolume: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loki",
			Subsystem: "engine",
			Name:      "trade_volume_lots_total",
			Help:      "Summed trade quantity (lots) emitted, by symbol.",
		}, []string{"symbol"}),
		BookDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "loki",
			Subsystem: "book",
			Name:      "resting_orders",
			Help:      "Current resting order count, by symbol and side.",
		}, []string{"symbol", "side"}),
		MatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "loki",
			Subsystem: "engine",
			Name:      "process_order_seconds",
			Help:      "Wall-clock time spent inside a single ProcessOrder call.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"symbol"}),
	}

	reg.MustRegister(c.OrdersProcessed, c.TradesEmitted, c.TradeVolume, c.BookDepth, c.MatchLatency)
	return c
}
