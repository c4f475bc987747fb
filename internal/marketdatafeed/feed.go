package marketdatafeed

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lokidex/matching-core/internal/instrument"
	"github.com/lokidex/matching-core/internal/marketdata"
)

const subscriberBuffer = 32

type bboMessage struct {
	Type      string  `json:"type"`
	Symbol    string  `json:"symbol"`
	Bid       *string `json:"bid,omitempty"`
	Ask       *string `json:"ask,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

type levelMessage struct {
	Price string `json:"price"`
	Qty   string `json:"qty"`
}

type l2Message struct {
	Type      string         `json:"type"`
	Symbol    string         `json:"symbol"`
	Bids      []levelMessage `json:"bids"`
	Asks      []levelMessage `json:"asks"`
	Timestamp int64          `json:"timestamp"`
}

// Feed owns the BBO and L2 broadcast hubs and upgrades incoming HTTP
// requests to WebSocket connections subscribed to one of them.
type Feed struct {
	registry *instrument.Registry
	log      *zap.Logger
	upgrader websocket.Upgrader
	bboHub   *hub[bboMessage]
	l2Hub    *hub[l2Message]
}

func New(registry *instrument.Registry, log *zap.Logger) *Feed {
	return &Feed{
		registry: registry,
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		bboHub:   newHub[bboMessage](),
		l2Hub:    newHub[l2Message](),
	}
}

// PublishBBO converts bbo to wire form and broadcasts it to every
// connected BBO subscriber. Unknown symbols are dropped silently — the
// feed is a best-effort projection, not a durable egress path.
func (f *Feed) PublishBBO(bbo marketdata.BBO) {
	inst, ok := f.registry.Get(bbo.Symbol)
	if !ok {
		return
	}
	msg := bboMessage{Type: "bbo", Symbol: bbo.Symbol, Timestamp: bbo.Timestamp}
	if bbo.Bid != nil {
		s := inst.UnscalePrice(*bbo.Bid)
		msg.Bid = &s
	}
	if bbo.Ask != nil {
		s := inst.UnscalePrice(*bbo.Ask)
		msg.Ask = &s
	}
	f.bboHub.Broadcast(msg)
}

// PublishL2 converts snap to wire form and broadcasts it to every
// connected L2 subscriber.
func (f *Feed) PublishL2(snap marketdata.L2Snapshot) {
	inst, ok := f.registry.Get(snap.Symbol)
	if !ok {
		return
	}
	msg := l2Message{Type: "l2_update", Symbol: snap.Symbol, Timestamp: snap.Timestamp}
	for _, l := range snap.Bids {
		msg.Bids = append(msg.Bids, levelMessage{Price: inst.UnscalePrice(l.Price), Qty: inst.UnscaleQuantity(l.Qty)})
	}
	for _, l := range snap.Asks {
		msg.Asks = append(msg.Asks, levelMessage{Price: inst.UnscalePrice(l.Price), Qty: inst.UnscaleQuantity(l.Qty)})
	}
	f.l2Hub.Broadcast(msg)
}

// ServeBBO upgrades r to a WebSocket connection that streams every BBO
// update until the client disconnects or a write fails.
func (f *Feed) ServeBBO(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Warn("bbo feed upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := f.bboHub.Subscribe(subscriberBuffer)
	defer f.bboHub.Unsubscribe(sub)

	for msg := range sub.ch {
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// ServeL2 upgrades r to a WebSocket connection that streams every L2
// update until the client disconnects or a write fails.
func (f *Feed) ServeL2(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Warn("l2 feed upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := f.l2Hub.Subscribe(subscriberBuffer)
	defer f.l2Hub.Unsubscribe(sub)

	for msg := range sub.ch {
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
