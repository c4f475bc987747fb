package memory

import "github.com/lokidex/matching-core/internal/orderbook"

// AdvanceEpochAndReclaim advances GlobalEpoch and drains ring, returning
// each retired object to pool once no reader in readers could still be
// observing it. The ring's FIFO order means the first object found not
// yet safe implies nothing behind it is safe either, so the drain stops
// there rather than scanning the whole ring.
func AdvanceEpochAndReclaim(ring *retireRing, pool ReclaimablePool, readers ...*ReaderEpoch) {
	GlobalEpoch.Add(1)
	min := minReaderEpoch(readers...)

	for {
		obj := ring.dequeue()
		if obj == nil {
			return
		}
		if min == inactive {
			pool.PutAny(obj)
			continue
		}
		_ = ring.enqueue(obj)
		return
	}
}

// OrderReclaimer is the per-symbol-shard allocator for orderbook.Order.
// The hot path (existing price level, order slab already warm) acquires
// from the pool instead of calling new; a cancelled or fully filled order
// is retired rather than freed immediately, so an in-flight snapshot
// reader walking the book at the moment of cancellation never sees a
// recycled node.
type OrderReclaimer struct {
	pool *Pool[orderbook.Order]
	ring *retireRing
}

// NewOrderReclaimer builds a reclaimer with a retire ring of ringSize
// slots, which must be a power of two and sized for the shard's expected
// in-flight cancel/fill burst between two Advance calls.
func NewOrderReclaimer(ringSize uint64) *OrderReclaimer {
	return &OrderReclaimer{
		pool: NewPool(func() *orderbook.Order { return &orderbook.Order{} }),
		ring: newRetireRing(ringSize),
	}
}

// Acquire returns a fresh or recycled Order ready for
// orderbook.Book.AddOrder / matching.Engine.ProcessOrder.
func (r *OrderReclaimer) Acquire(id, symbol string, side orderbook.Side, typ orderbook.Type, price, qty, ts int64) *orderbook.Order {
	o := r.pool.Get()
	o.Reset(id, symbol, side, typ, price, qty, ts)
	return o
}

// Retire marks o as no longer resting in any book. It is not reused until
// a later Advance call confirms no registered reader could still observe
// it. Retire never blocks: if the ring is momentarily full, the order is
// returned to the pool immediately rather than leaked, trading a small
// chance of reader-visible reuse under extreme burst for bounded memory.
func (r *OrderReclaimer) Retire(o *orderbook.Order) {
	if !r.ring.enqueue(o) {
		r.pool.Put(o)
	}
}

// Advance drains what is now safe to reclaim, given the current position
// of readers. Call this once per symbol shard's event-loop tick.
func (r *OrderReclaimer) Advance(readers ...*ReaderEpoch) {
	AdvanceEpochAndReclaim(r.ring, r.pool, readers...)
}
