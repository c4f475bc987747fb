package memory

import "sync/atomic"

// GlobalEpoch is shared across every symbol shard's reclaimer. It only
// ever increases.
var GlobalEpoch atomic.Uint64

const inactive = ^uint64(0)

// ReaderEpoch tracks the epoch a snapshot reader last entered. A
// snapshot reader is anything that walks a Book or PriceLevel outside
// the owning shard's goroutine — the BBO/L2 projection callers, in
// particular — and must bracket the walk with Enter/Exit so retired
// orders aren't recycled out from under it.
type ReaderEpoch struct {
	epoch atomic.Uint64
}

func (r *ReaderEpoch) Enter() {
	r.epoch.Store(GlobalEpoch.Load())
}

func (r *ReaderEpoch) Exit() {
	r.epoch.Store(inactive)
}

func (r *ReaderEpoch) Value() uint64 {
	return r.epoch.Load()
}

func minReaderEpoch(rs ...*ReaderEpoch) uint64 {
	min := inactive
	for _, r := range rs {
		if r == nil {
			continue
		}
		if v := r.Value(); v < min {
			min = v
		}
	}
	return min
}
