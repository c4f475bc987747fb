// Package orderbook implements the per-symbol, two-sided, price-indexed
// book: a red-black tree per side keyed by price, a node-based FIFO queue
// within each price level, and an id index giving O(1) cancel.
//
// The package is a pure data structure. It knows nothing about matching
// semantics, order types, or trades — see package matching for that. It is
// not safe for concurrent use; callers serialize access per symbol.
package orderbook
