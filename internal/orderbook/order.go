package orderbook

// Side is which book an order rests on or matches against.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "sell"
	}
	return "buy"
}

// Opposite returns the contra side used by the matching loop.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Type is one of the four order-type semantics the matching engine knows
// about. Price is only meaningful for Limit, IOC and FOK; Market orders
// ignore it.
type Type uint8

const (
	Limit Type = iota
	Market
	IOC
	FOK
)

func (t Type) String() string {
	switch t {
	case Limit:
		return "limit"
	case Market:
		return "market"
	case IOC:
		return "ioc"
	case FOK:
		return "fok"
	default:
		return "unknown"
	}
}

// Order is the unit of input. Price and Qty are scaled-integer ticks/lots,
// not floating point, per the instrument's configured tick/lot size —
// equality and ordering on Price are therefore exact.
type Order struct {
	ID        string
	Symbol    string
	Side      Side
	Type      Type
	Price     int64 // meaningless for Market
	Qty       int64 // original requested size, > 0
	Remaining int64 // 0 <= Remaining <= Qty
	Timestamp int64 // monotonic arrival time, audit only

	// FIFO linkage inside whichever PriceLevel currently holds this order.
	// Exactly one of (resting in a level) or (nil, nil, detached) holds.
	next, prev *Order
	level      *PriceLevel
}

// NewOrder builds an order with Remaining initialized to Qty, as required
// by the OrderBook.AddOrder precondition.
func NewOrder(id, symbol string, side Side, typ Type, price, qty, ts int64) *Order {
	return &Order{
		ID:        id,
		Symbol:    symbol,
		Side:      side,
		Type:      typ,
		Price:     price,
		Qty:       qty,
		Remaining: qty,
		Timestamp: ts,
	}
}

// Filled reports how much of the order has already matched.
func (o *Order) Filled() int64 {
	return o.Qty - o.Remaining
}

// Reset reinitializes a detached Order in place, so a pooled instance can
// be handed out for a new arrival without a fresh allocation. The caller
// must guarantee o is not currently resting in any PriceLevel.
func (o *Order) Reset(id, symbol string, side Side, typ Type, price, qty, ts int64) {
	o.ID = id
	o.Symbol = symbol
	o.Side = side
	o.Type = typ
	o.Price = price
	o.Qty = qty
	o.Remaining = qty
	o.Timestamp = ts
	o.next, o.prev, o.level = nil, nil, nil
}

// ReduceRemaining decreases Remaining by delta and, if the order is
// currently resting in a PriceLevel, keeps that level's cached TotalQty
// in exact sync with it. Safe to call on an order that isn't resting yet
// (the incoming taker side of a match).
func (o *Order) ReduceRemaining(delta int64) {
	o.Remaining -= delta
	if o.level != nil {
		o.level.TotalQty -= delta
	}
}
