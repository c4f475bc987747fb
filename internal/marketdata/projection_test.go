package marketdata

import (
	"testing"

	"github.com/lokidex/matching-core/internal/orderbook"
)

func mustInt64(p *int64) int64 {
	if p == nil {
		return -1
	}
	return *p
}

func TestBuildBBOReflectsBestPrices(t *testing.T) {
	book := orderbook.NewBook("BTC-USD")
	book.AddOrder(orderbook.NewOrder("b1", "BTC-USD", orderbook.Buy, orderbook.Limit, 100, 5, 1))
	book.AddOrder(orderbook.NewOrder("b2", "BTC-USD", orderbook.Buy, orderbook.Limit, 105, 5, 2))
	book.AddOrder(orderbook.NewOrder("a1", "BTC-USD", orderbook.Sell, orderbook.Limit, 110, 5, 3))

	bbo := BuildBBO(book, 999)
	if bbo.Symbol != "BTC-USD" || bbo.Timestamp != 999 {
		t.Fatalf("bbo = %+v, want symbol BTC-USD ts 999", bbo)
	}
	if mustInt64(bbo.Bid) != 105 {
		t.Errorf("bid = %v, want 105", bbo.Bid)
	}
	if mustInt64(bbo.Ask) != 110 {
		t.Errorf("ask = %v, want 110", bbo.Ask)
	}
}

func TestBuildBBOEmptyBookIsNull(t *testing.T) {
	book := orderbook.NewBook("BTC-USD")
	bbo := BuildBBO(book, 1)
	if bbo.Bid != nil || bbo.Ask != nil {
		t.Fatalf("bbo = %+v, want both sides nil on an empty book", bbo)
	}
}

func TestBuildL2OrderingAndAggregation(t *testing.T) {
	book := orderbook.NewBook("BTC-USD")
	book.AddOrder(orderbook.NewOrder("b1", "BTC-USD", orderbook.Buy, orderbook.Limit, 100, 3, 1))
	book.AddOrder(orderbook.NewOrder("b2", "BTC-USD", orderbook.Buy, orderbook.Limit, 100, 4, 2))
	book.AddOrder(orderbook.NewOrder("b3", "BTC-USD", orderbook.Buy, orderbook.Limit, 99, 10, 3))
	book.AddOrder(orderbook.NewOrder("a1", "BTC-USD", orderbook.Sell, orderbook.Limit, 101, 2, 4))

	snap := BuildL2(book, 10, 42)
	if len(snap.Bids) != 2 {
		t.Fatalf("bids = %+v, want 2 levels", snap.Bids)
	}
	if snap.Bids[0] != (L2Level{Price: 100, Qty: 7}) {
		t.Errorf("bids[0] = %+v, want price=100 qty=7 (aggregated)", snap.Bids[0])
	}
	if snap.Bids[1] != (L2Level{Price: 99, Qty: 10}) {
		t.Errorf("bids[1] = %+v, want price=99 qty=10", snap.Bids[1])
	}
	if len(snap.Asks) != 1 || snap.Asks[0] != (L2Level{Price: 101, Qty: 2}) {
		t.Errorf("asks = %+v, want one level price=101 qty=2", snap.Asks)
	}
}

func TestBuildL2RespectsK(t *testing.T) {
	book := orderbook.NewBook("BTC-USD")
	for i, p := range []int64{100, 99, 98, 97, 96} {
		book.AddOrder(orderbook.NewOrder(string(rune('a'+i)), "BTC-USD", orderbook.Buy, orderbook.Limit, p, 1, int64(i)))
	}
	snap := BuildL2(book, 2, 1)
	if len(snap.Bids) != 2 || snap.Bids[0].Price != 100 || snap.Bids[1].Price != 99 {
		t.Errorf("bids = %+v, want top 2 descending from 100", snap.Bids)
	}
}

func TestDiffDetectsUpsertAndRemoval(t *testing.T) {
	from := L2Snapshot{
		Symbol: "BTC-USD",
		Bids: []L2Level{
			{Price: 100, Qty: 5},
			{Price: 99, Qty: 10},
		},
	}
	to := L2Snapshot{
		Symbol:    "BTC-USD",
		Timestamp: 2,
		Bids: []L2Level{
			{Price: 100, Qty: 8}, // changed
			{Price: 98, Qty: 3},  // new
			// 99 removed
		},
	}
	diff := Diff(from, to)
	if diff.Symbol != "BTC-USD" || diff.Timestamp != 2 {
		t.Fatalf("diff header = %+v", diff)
	}

	found := map[int64]int64{}
	for _, l := range diff.Bids {
		found[l.Price] = l.Qty
	}
	if found[100] != 8 {
		t.Errorf("expected changed level 100 -> qty 8, got %v", found[100])
	}
	if found[98] != 3 {
		t.Errorf("expected new level 98 -> qty 3, got %v", found[98])
	}
	qty, ok := found[99]
	if !ok || qty != 0 {
		t.Errorf("expected removed level 99 reported with qty 0, got (%v,%v)", qty, ok)
	}
}

func TestDiffNoChangeIsEmpty(t *testing.T) {
	snap := L2Snapshot{Symbol: "BTC-USD", Bids: []L2Level{{Price: 100, Qty: 5}}}
	diff := Diff(snap, snap)
	if len(diff.Bids) != 0 || len(diff.Asks) != 0 {
		t.Errorf("diff of identical snapshots = %+v, want empty", diff)
	}
}
