// Package memory provides epoch-based reclamation for orderbook.Order
// nodes, so the hot path of adding, filling, and cancelling an order
// performs no allocation once a symbol shard's slab has warmed up. Each
// shard owns one OrderReclaimer; the only state shared across shards is
// the GlobalEpoch counter.
package memory
