package auditlog

import (
	"encoding/json"
	"time"

	"github.com/lokidex/matching-core/internal/matching"
	"github.com/lokidex/matching-core/internal/orderbook"
)

// RecordType distinguishes the three events the audit log retains.
type RecordType uint8

const (
	RecordOrderAccepted RecordType = iota
	RecordCancel
	RecordTrade
)

// Record is one framed entry. Seq is assigned by the caller (in
// cmd/loki-engine, each shard's own monotone counter) so gaps are
// detectable on replay; Time
// is wall-clock, for compliance timestamps only — never consulted by the
// matching core itself.
type Record struct {
	Type RecordType
	Seq  uint64
	Time int64
	Data []byte
}

func newRecord(t RecordType, seq uint64, data []byte) *Record {
	return &Record{Type: t, Seq: seq, Time: time.Now().UnixNano(), Data: data}
}

type orderAcceptedPayload struct {
	ID        string `json:"id"`
	Symbol    string `json:"symbol"`
	Side      string `json:"side"`
	Type      string `json:"order_type"`
	Price     int64  `json:"price"`
	Qty       int64  `json:"quantity"`
	Timestamp int64  `json:"timestamp"`
}

// NewOrderAccepted builds the record for an order that just entered
// ProcessOrder, prior to matching.
func NewOrderAccepted(seq uint64, o *orderbook.Order) *Record {
	payload, _ := json.Marshal(orderAcceptedPayload{
		ID:        o.ID,
		Symbol:    o.Symbol,
		Side:      o.Side.String(),
		Type:      o.Type.String(),
		Price:     o.Price,
		Qty:       o.Qty,
		Timestamp: o.Timestamp,
	})
	return newRecord(RecordOrderAccepted, seq, payload)
}

type cancelPayload struct {
	Symbol string `json:"symbol"`
	ID     string `json:"id"`
}

// NewCancel builds the record for a cancel_order call, regardless of
// whether the target was still resting.
func NewCancel(seq uint64, symbol, id string) *Record {
	payload, _ := json.Marshal(cancelPayload{Symbol: symbol, ID: id})
	return newRecord(RecordCancel, seq, payload)
}

// NewTrade builds the record for one trade emitted by ProcessOrder.
func NewTrade(seq uint64, tr matching.Trade) *Record {
	payload, _ := json.Marshal(tr)
	return newRecord(RecordTrade, seq, payload)
}
