package matching

import "github.com/lokidex/matching-core/internal/orderbook"

// Trade is the unit of output: one fill between a resting maker and the
// incoming taker, priced at the maker's price (price improvement always
// accrues to the taker).
type Trade struct {
	TradeID      string
	Symbol       string
	MakerOrderID string
	TakerOrderID string
	Price        int64
	Qty          int64
	Aggressor    orderbook.Side
	Timestamp    int64
}

// Sink receives the trades produced by a single ProcessOrder call, in
// emission order, so that durable publication (an outbox, a WAL, a Kafka
// topic) can happen without the matching core doing any I/O itself. A nil
// Sink is valid — ProcessOrder's returned slice is always populated
// regardless of whether a Sink is wired.
type Sink interface {
	Accept(trades []Trade)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(trades []Trade)

func (f SinkFunc) Accept(trades []Trade) { f(trades) }
