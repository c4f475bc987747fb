package marketdata

import "github.com/lokidex/matching-core/internal/orderbook"

// BBO is the best-bid-offer projection of one symbol's book. Bid/Ask are
// nil when that side has no resting liquidity. Timestamp is supplied by
// the caller — this package never reads the wall clock.
type BBO struct {
	Symbol    string
	Bid       *int64
	Ask       *int64
	Timestamp int64
}

// BuildBBO reads book's current best bid and ask.
func BuildBBO(book *orderbook.Book, ts int64) BBO {
	out := BBO{Symbol: book.Symbol, Timestamp: ts}
	if bid, ok := book.BestBid(); ok {
		out.Bid = &bid
	}
	if ask, ok := book.BestAsk(); ok {
		out.Ask = &ask
	}
	return out
}

// L2Level is one aggregated price level: total resting quantity at Price,
// with no per-order disclosure.
type L2Level struct {
	Price int64
	Qty   int64
}

// L2Snapshot is the top-K depth projection of one symbol's book. Bids are
// ordered descending by price, Asks ascending; each side holds at most K
// entries.
type L2Snapshot struct {
	Symbol    string
	Timestamp int64
	Bids      []L2Level
	Asks      []L2Level
}

// BuildL2 reads the top k levels of each side of book. k must be positive;
// the caller typically passes 10.
func BuildL2(book *orderbook.Book, k int, ts int64) L2Snapshot {
	bids, asks := book.TopOfDepth(k)
	out := L2Snapshot{
		Symbol:    book.Symbol,
		Timestamp: ts,
		Bids:      make([]L2Level, len(bids)),
		Asks:      make([]L2Level, len(asks)),
	}
	for i, d := range bids {
		out.Bids[i] = L2Level{Price: d.Price, Qty: d.Qty}
	}
	for i, d := range asks {
		out.Asks[i] = L2Level{Price: d.Price, Qty: d.Qty}
	}
	return out
}

// L2Diff is the set of levels that changed between two consecutive
// snapshots of the same symbol: a level present in `to` but absent or
// different in `from` is an upsert; a level present in `from` but absent
// from `to` is a removal, reported with Qty 0 so downstream consumers can
// apply it as a delete.
type L2Diff struct {
	Symbol    string
	Timestamp int64
	Bids      []L2Level
	Asks      []L2Level
}

// Diff compares two L2Snapshots of the same symbol and returns only the
// levels that changed, because downstream market-data consumers publish
// incremental deltas rather than full snapshots on every tick. from and to
// must be the same symbol; Diff does not check Timestamp ordering.
func Diff(from, to L2Snapshot) L2Diff {
	return L2Diff{
		Symbol:    to.Symbol,
		Timestamp: to.Timestamp,
		Bids:      diffSide(from.Bids, to.Bids),
		Asks:      diffSide(from.Asks, to.Asks),
	}
}

func diffSide(from, to []L2Level) []L2Level {
	prior := make(map[int64]int64, len(from))
	for _, l := range from {
		prior[l.Price] = l.Qty
	}
	seen := make(map[int64]bool, len(to))
	var out []L2Level
	for _, l := range to {
		seen[l.Price] = true
		if old, ok := prior[l.Price]; !ok || old != l.Qty {
			out = append(out, l)
		}
	}
	for _, l := range from {
		if !seen[l.Price] {
			out = append(out, L2Level{Price: l.Price, Qty: 0})
		}
	}
	return out
}
