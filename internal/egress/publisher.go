package egress

import (
	"encoding/json"
	"fmt"

	"github.com/lokidex/matching-core/internal/instrument"
	"github.com/lokidex/matching-core/internal/marketdata"
	"github.com/lokidex/matching-core/internal/matching"
	"github.com/lokidex/matching-core/internal/outbox"
)

const (
	TopicTrades = "loki.trades"
	TopicBBO    = "loki.bbo"
	TopicL2     = "loki.l2"
)

// Publisher durably queues egress records into an Outbox. It implements
// matching.Sink, so an Engine can be wired with WithSink(publisher) and
// never know Kafka exists.
type Publisher struct {
	store    *outbox.Outbox
	registry *instrument.Registry
}

func NewPublisher(store *outbox.Outbox, registry *instrument.Registry) *Publisher {
	return &Publisher{store: store, registry: registry}
}

type tradeRecord struct {
	TradeID       string `json:"trade_id"`
	Symbol        string `json:"symbol"`
	MakerOrderID  string `json:"maker_order_id"`
	TakerOrderID  string `json:"taker_order_id"`
	Price         string `json:"price"`
	Quantity      string `json:"quantity"`
	AggressorSide string `json:"aggressor_side"`
	Timestamp     int64  `json:"timestamp"`
}

// Accept implements matching.Sink: each batch of trades from one
// ProcessOrder call is queued individually, keyed by TradeID.
func (p *Publisher) Accept(trades []matching.Trade) {
	for _, tr := range trades {
		inst, ok := p.registry.Get(tr.Symbol)
		if !ok {
			continue // unknown symbol at this point is a configuration bug upstream, not recoverable here
		}
		rec := tradeRecord{
			TradeID:       tr.TradeID,
			Symbol:        tr.Symbol,
			MakerOrderID:  tr.MakerOrderID,
			TakerOrderID:  tr.TakerOrderID,
			Price:         inst.UnscalePrice(tr.Price),
			Quantity:      inst.UnscaleQuantity(tr.Qty),
			AggressorSide: tr.Aggressor.String(),
			Timestamp:     tr.Timestamp,
		}
		payload, err := json.Marshal(rec)
		if err != nil {
			continue
		}
		_ = p.store.PutNew(tr.TradeID, TopicTrades, payload)
	}
}

type bboRecord struct {
	Type      string  `json:"type"`
	Symbol    string  `json:"symbol"`
	Bid       *string `json:"bid"`
	Ask       *string `json:"ask"`
	Timestamp int64   `json:"timestamp"`
}

// PublishBBO queues one BBO projection.
func (p *Publisher) PublishBBO(bbo marketdata.BBO) error {
	inst, ok := p.registry.Get(bbo.Symbol)
	if !ok {
		return fmt.Errorf("egress: unknown symbol %q", bbo.Symbol)
	}
	rec := bboRecord{Type: "bbo", Symbol: bbo.Symbol, Timestamp: bbo.Timestamp}
	if bbo.Bid != nil {
		s := inst.UnscalePrice(*bbo.Bid)
		rec.Bid = &s
	}
	if bbo.Ask != nil {
		s := inst.UnscalePrice(*bbo.Ask)
		rec.Ask = &s
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s-bbo-%d", bbo.Symbol, bbo.Timestamp)
	return p.store.PutNew(key, TopicBBO, payload)
}

type l2Record struct {
	Type      string     `json:"type"`
	Timestamp int64      `json:"timestamp"`
	Symbol    string     `json:"symbol"`
	Bids      [][]string `json:"bids"`
	Asks      [][]string `json:"asks"`
}

// PublishL2 queues one L2 snapshot, each level rendered as [price, qty].
func (p *Publisher) PublishL2(snap marketdata.L2Snapshot) error {
	inst, ok := p.registry.Get(snap.Symbol)
	if !ok {
		return fmt.Errorf("egress: unknown symbol %q", snap.Symbol)
	}
	rec := l2Record{Type: "l2_update", Timestamp: snap.Timestamp, Symbol: snap.Symbol}
	for _, l := range snap.Bids {
		rec.Bids = append(rec.Bids, []string{inst.UnscalePrice(l.Price), inst.UnscaleQuantity(l.Qty)})
	}
	for _, l := range snap.Asks {
		rec.Asks = append(rec.Asks, []string{inst.UnscalePrice(l.Price), inst.UnscaleQuantity(l.Qty)})
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s-l2-%d", snap.Symbol, snap.Timestamp)
	return p.store.PutNew(key, TopicL2, payload)
}
