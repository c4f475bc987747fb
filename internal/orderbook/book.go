package orderbook

// sideBook is one side of one symbol's book: a price-keyed tree plus the
// side's priority convention (best = max for Buy, best = min for Sell).
type sideBook struct {
	side Side
	tree *rbTree
}

func newSideBook(side Side) *sideBook {
	return &sideBook{side: side, tree: newRBTree()}
}

func (b *sideBook) best() *PriceLevel {
	if b.side == Buy {
		return b.tree.max()
	}
	return b.tree.min()
}

// ascendFromBest walks levels starting at the best price and moving away
// from it — descending for Buy, ascending for Sell.
func (b *sideBook) ascendFromBest(fn func(*PriceLevel) bool) {
	if b.side == Buy {
		b.tree.descend(fn)
	} else {
		b.tree.ascend(fn)
	}
}

// Book is the aggregate described by spec §3: two side-books plus an
// id→order index giving O(1) cancel. Not safe for concurrent access; the
// caller (package matching) serializes all calls for a given symbol.
type Book struct {
	Symbol string
	bids   *sideBook
	asks   *sideBook
	index  map[string]*Order
}

// NewBook creates an empty book for symbol, with both sides empty.
func NewBook(symbol string) *Book {
	return &Book{
		Symbol: symbol,
		bids:   newSideBook(Buy),
		asks:   newSideBook(Sell),
		index:  make(map[string]*Order),
	}
}

func (b *Book) sideOf(side Side) *sideBook {
	if side == Buy {
		return b.bids
	}
	return b.asks
}

// AddOrder appends order to the tail of the price level for
// (order.Side, order.Price), creating the level if it doesn't exist yet,
// and records it in the id index. Preconditions: order.Remaining > 0 and
// order.ID is not already indexed.
func (b *Book) AddOrder(o *Order) {
	lvl := b.sideOf(o.Side).tree.upsert(o.Price)
	lvl.pushTail(o)
	b.index[o.ID] = o
}

// CancelOrder removes the order with the given id, if indexed. Returns
// false — not an error — if the id is unknown. Idempotent: cancelling an
// already-cancelled id returns false both times.
func (b *Book) CancelOrder(id string) bool {
	o, ok := b.index[id]
	if !ok {
		return false
	}
	delete(b.index, id)
	b.removeFromLevel(o)
	return true
}

// removeFromLevel unlinks o from its resting price level and deletes the
// level if it became empty. Shared by CancelOrder and the matching loop's
// maker-consumed-in-full path.
func (b *Book) removeFromLevel(o *Order) {
	lvl := o.level
	if lvl == nil {
		return
	}
	side := b.sideOf(o.Side)
	lvl.unlink(o)
	if lvl.Empty() {
		side.tree.erase(lvl.Price)
	}
}

// BestBid returns the highest resting bid price, or ok=false if none.
func (b *Book) BestBid() (price int64, ok bool) {
	lvl := b.bids.best()
	if lvl == nil {
		return 0, false
	}
	return lvl.Price, true
}

// BestAsk returns the lowest resting ask price, or ok=false if none.
func (b *Book) BestAsk() (price int64, ok bool) {
	lvl := b.asks.best()
	if lvl == nil {
		return 0, false
	}
	return lvl.Price, true
}

// BestLevel returns the best price level on side, or nil if that side is
// empty. Used only by the matching engine.
func (b *Book) BestLevel(side Side) *PriceLevel {
	return b.sideOf(side).best()
}

// OrdersAtPrice returns the price level at (side, price), or nil if no
// orders rest there.
func (b *Book) OrdersAtPrice(side Side, price int64) *PriceLevel {
	return b.sideOf(side).tree.find(price)
}

// AvailableLiquidity sums total_quantity across all levels on side whose
// price is no worse than limitPrice — ascending and stopping at the first
// ask priced above limitPrice when side is Sell, descending and stopping
// at the first bid priced below limitPrice when side is Buy. Used by FOK
// feasibility checks: a BUY FOK inspects the Sell side with
// ask.Price <= limitPrice; a SELL FOK inspects the Buy side with
// bid.Price >= limitPrice.
func (b *Book) AvailableLiquidity(side Side, limitPrice int64) int64 {
	var total int64
	if side == Sell {
		b.asks.tree.ascend(func(lvl *PriceLevel) bool {
			if lvl.Price > limitPrice {
				return false
			}
			total += lvl.TotalQty
			return true
		})
	} else {
		b.bids.tree.descend(func(lvl *PriceLevel) bool {
			if lvl.Price < limitPrice {
				return false
			}
			total += lvl.TotalQty
			return true
		})
	}
	return total
}

// DepthLevel is one (price, total quantity) pair in a top-of-book
// aggregation.
type DepthLevel struct {
	Price int64
	Qty   int64
}

// TopOfDepth returns up to k best bid levels (descending) and up to k best
// ask levels (ascending). Pure function of current state; never mutates
// the book.
func (b *Book) TopOfDepth(k int) (bids, asks []DepthLevel) {
	if k <= 0 {
		return nil, nil
	}
	bids = make([]DepthLevel, 0, k)
	b.bids.tree.descend(func(lvl *PriceLevel) bool {
		bids = append(bids, DepthLevel{Price: lvl.Price, Qty: lvl.TotalQty})
		return len(bids) < k
	})
	asks = make([]DepthLevel, 0, k)
	b.asks.tree.ascend(func(lvl *PriceLevel) bool {
		asks = append(asks, DepthLevel{Price: lvl.Price, Qty: lvl.TotalQty})
		return len(asks) < k
	})
	return bids, asks
}

// IndexedOrder looks up a resting order by id, for diagnostics and tests.
func (b *Book) IndexedOrder(id string) (*Order, bool) {
	o, ok := b.index[id]
	return o, ok
}

// IndexSize returns the number of resting orders, for invariant checks in
// tests.
func (b *Book) IndexSize() int {
	return len(b.index)
}

// RestingCount returns the number of resting orders on side, for metrics.
func (b *Book) RestingCount(side Side) int {
	n := 0
	b.sideOf(side).tree.ascend(func(lvl *PriceLevel) bool {
		n += lvl.Count()
		return true
	})
	return n
}
