package matching

import (
	"testing"

	"github.com/lokidex/matching-core/internal/memory"
	"github.com/lokidex/matching-core/internal/orderbook"
)

func rest(e *Engine, id, symbol string, side orderbook.Side, price, qty, ts int64) {
	o := orderbook.NewOrder(id, symbol, side, orderbook.Limit, price, qty, ts)
	e.ProcessOrder(o)
}

// S1 — market buy crossing two levels.
func TestMarketBuyCrossesTwoLevels(t *testing.T) {
	e := New()
	rest(e, "ask1", "SYM", orderbook.Sell, 60000, 5000, 1000) // 0.5 scaled to four decimal places
	rest(e, "ask2", "SYM", orderbook.Sell, 60001, 10000, 1001)

	taker := orderbook.NewOrder("mkt1", "SYM", orderbook.Buy, orderbook.Market, 0, 12000, 1002)
	trades := e.ProcessOrder(taker)

	if len(trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades))
	}
	if trades[0].Price != 60000 || trades[0].Qty != 5000 || trades[0].MakerOrderID != "ask1" {
		t.Errorf("trade[0] = %+v, want price=60000 qty=5000 maker=ask1", trades[0])
	}
	if trades[1].Price != 60001 || trades[1].Qty != 7000 || trades[1].MakerOrderID != "ask2" {
		t.Errorf("trade[1] = %+v, want price=60001 qty=7000 maker=ask2", trades[1])
	}

	book := e.GetBook("SYM")
	if book.OrdersAtPrice(orderbook.Sell, 60000) != nil {
		t.Error("ask at 60000 should be fully consumed")
	}
	lvl := book.OrdersAtPrice(orderbook.Sell, 60001)
	if lvl == nil || lvl.TotalQty != 3000 {
		t.Errorf("ask at 60001 should have 3000 remaining, got %+v", lvl)
	}
	if _, ok := book.BestBid(); ok {
		t.Error("no resting buys expected")
	}
}

// S2 — limit price-improvement: trade prices at the maker's price.
func TestLimitBuyGetsPriceImprovement(t *testing.T) {
	e := New()
	rest(e, "ask1", "SYM", orderbook.Sell, 59990, 10000, 1000)

	taker := orderbook.NewOrder("buy1", "SYM", orderbook.Buy, orderbook.Limit, 60000, 10000, 1001)
	trades := e.ProcessOrder(taker)

	if len(trades) != 1 || trades[0].Price != 59990 || trades[0].Qty != 10000 {
		t.Fatalf("trades = %+v, want one trade at 59990 qty 10000", trades)
	}
	book := e.GetBook("SYM")
	if _, ok := book.BestBid(); ok {
		t.Error("book should have no resting bids")
	}
	if _, ok := book.BestAsk(); ok {
		t.Error("book should have no resting asks")
	}
}

// S3 — non-marketable limit rests without trading.
func TestNonMarketableLimitRests(t *testing.T) {
	e := New()
	rest(e, "ask1", "SYM", orderbook.Sell, 60001, 10000, 1000)

	taker := orderbook.NewOrder("buy1", "SYM", orderbook.Buy, orderbook.Limit, 60000, 10000, 1001)
	trades := e.ProcessOrder(taker)

	if len(trades) != 0 {
		t.Fatalf("expected zero trades, got %d", len(trades))
	}
	book := e.GetBook("SYM")
	bid, ok := book.BestBid()
	if !ok || bid != 60000 {
		t.Fatalf("BestBid = (%d,%v), want (60000,true)", bid, ok)
	}
	lvl := book.OrdersAtPrice(orderbook.Buy, 60000)
	if lvl == nil || lvl.TotalQty != 10000 {
		t.Errorf("resting level = %+v, want total 10000", lvl)
	}
	ask, ok := book.BestAsk()
	if !ok || ask != 60001 {
		t.Fatalf("BestAsk = (%d,%v), want (60001,true)", ask, ok)
	}
}

// S4 — IOC partial fill, residual discarded.
func TestIOCPartialFillDiscardsResidual(t *testing.T) {
	e := New()
	rest(e, "ask1", "SYM", orderbook.Sell, 60000, 5000, 1000)

	taker := orderbook.NewOrder("ioc1", "SYM", orderbook.Buy, orderbook.IOC, 60000, 10000, 1001)
	trades := e.ProcessOrder(taker)

	if len(trades) != 1 || trades[0].Qty != 5000 {
		t.Fatalf("trades = %+v, want one trade of qty 5000", trades)
	}
	book := e.GetBook("SYM")
	if _, ok := book.BestBid(); ok {
		t.Error("IOC residual must not rest")
	}
	if _, ok := book.BestAsk(); ok {
		t.Error("ask should be fully consumed")
	}
}

// S5 — FOK infeasible is an atomic no-op.
func TestFOKInfeasibleIsNoOp(t *testing.T) {
	e := New()
	rest(e, "ask1", "SYM", orderbook.Sell, 60000, 3000, 1000)
	rest(e, "ask2", "SYM", orderbook.Sell, 60001, 8000, 1001)

	taker := orderbook.NewOrder("fok1", "SYM", orderbook.Buy, orderbook.FOK, 60000, 10000, 1002)
	trades := e.ProcessOrder(taker)

	if len(trades) != 0 {
		t.Fatalf("expected zero trades on infeasible FOK, got %d", len(trades))
	}
	book := e.GetBook("SYM")
	lvl1 := book.OrdersAtPrice(orderbook.Sell, 60000)
	lvl2 := book.OrdersAtPrice(orderbook.Sell, 60001)
	if lvl1 == nil || lvl1.TotalQty != 3000 {
		t.Errorf("ask1 level = %+v, want unchanged at 3000", lvl1)
	}
	if lvl2 == nil || lvl2.TotalQty != 8000 {
		t.Errorf("ask2 level = %+v, want unchanged at 8000", lvl2)
	}
}

func TestFOKFeasibleFillsCompletely(t *testing.T) {
	e := New()
	rest(e, "ask1", "SYM", orderbook.Sell, 60000, 3000, 1000)
	rest(e, "ask2", "SYM", orderbook.Sell, 60001, 8000, 1001)

	taker := orderbook.NewOrder("fok1", "SYM", orderbook.Buy, orderbook.FOK, 60001, 10000, 1002)
	trades := e.ProcessOrder(taker)

	if len(trades) != 2 {
		t.Fatalf("expected 2 trades filling the FOK, got %d: %+v", len(trades), trades)
	}
	var filled int64
	for _, tr := range trades {
		filled += tr.Qty
	}
	if filled != 10000 {
		t.Errorf("total filled = %d, want 10000", filled)
	}
}

// S6 — FIFO within a level.
func TestFIFOAtLevelUnderMarketSell(t *testing.T) {
	e := New()
	rest(e, "b1", "SYM", orderbook.Buy, 60000, 10000, 1000)
	rest(e, "b2", "SYM", orderbook.Buy, 60000, 20000, 1001)
	rest(e, "b3", "SYM", orderbook.Buy, 60000, 5000, 1002)

	taker := orderbook.NewOrder("sell1", "SYM", orderbook.Sell, orderbook.Market, 0, 25000, 1003)
	trades := e.ProcessOrder(taker)

	if len(trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades))
	}
	if trades[0].MakerOrderID != "b1" || trades[0].Qty != 10000 {
		t.Errorf("trade[0] = %+v, want maker=b1 qty=10000", trades[0])
	}
	if trades[1].MakerOrderID != "b2" || trades[1].Qty != 15000 {
		t.Errorf("trade[1] = %+v, want maker=b2 qty=15000", trades[1])
	}

	book := e.GetBook("SYM")
	lvl := book.OrdersAtPrice(orderbook.Buy, 60000)
	if lvl == nil || lvl.TotalQty != 10000 {
		t.Fatalf("level = %+v, want total 10000 (b2 remainder 5000 + b3 5000)", lvl)
	}
	head := lvl.Head()
	if head == nil || head.ID != "b2" || head.Remaining != 5000 {
		t.Errorf("head = %+v, want b2 with remaining 5000", head)
	}
}

func TestMarketOrderAgainstEmptyBookIsNoOp(t *testing.T) {
	e := New()
	taker := orderbook.NewOrder("m1", "SYM", orderbook.Buy, orderbook.Market, 0, 1000, 1)
	trades := e.ProcessOrder(taker)
	if len(trades) != 0 {
		t.Fatalf("expected zero trades against an empty book, got %d", len(trades))
	}
	if e.GetBook("SYM").IndexSize() != 0 {
		t.Error("empty-book market order must not mutate the book")
	}
}

func TestIOCAgainstEmptyBookIsNoOp(t *testing.T) {
	e := New()
	taker := orderbook.NewOrder("i1", "SYM", orderbook.Buy, orderbook.IOC, 100, 1000, 1)
	trades := e.ProcessOrder(taker)
	if len(trades) != 0 {
		t.Fatalf("expected zero trades, got %d", len(trades))
	}
}

func TestTradeIDsAreSequentialWithoutGaps(t *testing.T) {
	e := New()
	rest(e, "ask1", "SYM", orderbook.Sell, 100, 1, 1)
	rest(e, "ask2", "SYM", orderbook.Sell, 101, 1, 2)
	rest(e, "ask3", "SYM", orderbook.Sell, 102, 1, 3)

	taker := orderbook.NewOrder("m1", "SYM", orderbook.Buy, orderbook.Market, 0, 3, 4)
	trades := e.ProcessOrder(taker)

	want := []string{"T0001", "T0002", "T0003"}
	if len(trades) != len(want) {
		t.Fatalf("got %d trades, want %d", len(trades), len(want))
	}
	for i, tr := range trades {
		if tr.TradeID != want[i] {
			t.Errorf("trade[%d].TradeID = %s, want %s", i, tr.TradeID, want[i])
		}
	}
}

func TestPreconditionViolationsPanic(t *testing.T) {
	cases := []struct {
		name string
		o    *orderbook.Order
	}{
		{"non-positive quantity", orderbook.NewOrder("a", "SYM", orderbook.Buy, orderbook.Market, 0, 0, 1)},
		{"limit without price", orderbook.NewOrder("b", "SYM", orderbook.Buy, orderbook.Limit, 0, 10, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected ProcessOrder to panic on a malformed order")
				}
			}()
			New().ProcessOrder(tc.o)
		})
	}
}

func TestAddThenCancelRestoresPriorBBO(t *testing.T) {
	e := New()
	book := e.GetBook("SYM")
	_, hadBefore := book.BestBid()

	o := orderbook.NewOrder("o1", "SYM", orderbook.Buy, orderbook.Limit, 100, 10, 1)
	e.ProcessOrder(o)
	if !e.CancelOrder("SYM", "o1") {
		t.Fatal("cancel should succeed for a resting order")
	}
	_, hadAfter := book.BestBid()
	if hadBefore != hadAfter {
		t.Error("BBO should return to its pre-add state after cancel")
	}
}

func TestVolumeConservation(t *testing.T) {
	e := New()
	rest(e, "ask1", "SYM", orderbook.Sell, 100, 10, 1)
	rest(e, "ask2", "SYM", orderbook.Sell, 101, 10, 2)

	taker := orderbook.NewOrder("buy1", "SYM", orderbook.Buy, orderbook.IOC, 101, 15, 3)
	trades := e.ProcessOrder(taker)

	var totalFilled int64
	for _, tr := range trades {
		totalFilled += tr.Qty
	}
	if totalFilled != 15 {
		t.Errorf("total trade volume = %d, want 15 (taker filled 15 of 15)", totalFilled)
	}
}

// retireSpy is a Reclaimer that just records which orders it was handed.
type retireSpy struct {
	retired []*orderbook.Order
}

func (s *retireSpy) Retire(o *orderbook.Order) {
	s.retired = append(s.retired, o)
}

func TestWithReclaimerRetiresFullyFilledMaker(t *testing.T) {
	spy := &retireSpy{}
	e := New().WithReclaimer(spy)
	maker := orderbook.NewOrder("ask1", "SYM", orderbook.Sell, orderbook.Limit, 100, 10, 1)
	e.ProcessOrder(maker)

	taker := orderbook.NewOrder("buy1", "SYM", orderbook.Buy, orderbook.Market, 0, 10, 2)
	e.ProcessOrder(taker)

	if len(spy.retired) != 1 || spy.retired[0].ID != "ask1" {
		t.Fatalf("retired = %+v, want exactly the fully filled maker ask1", spy.retired)
	}
}

func TestWithReclaimerRetiresExplicitlyCancelledOrder(t *testing.T) {
	spy := &retireSpy{}
	e := New().WithReclaimer(spy)
	rest(e, "o1", "SYM", orderbook.Buy, 100, 10, 1)

	if !e.CancelOrder("SYM", "o1") {
		t.Fatal("cancel should succeed for a resting order")
	}
	if len(spy.retired) != 1 || spy.retired[0].ID != "o1" {
		t.Fatalf("retired = %+v, want exactly o1", spy.retired)
	}
}

func TestCancelOrderWithNoReclaimerAttachedStillCancels(t *testing.T) {
	e := New()
	rest(e, "o1", "SYM", orderbook.Buy, 100, 10, 1)
	if !e.CancelOrder("SYM", "o1") {
		t.Fatal("cancel should succeed even with no reclaimer attached")
	}
}

func TestSnapshotEpochIntegratesWithReclaimerAdvance(t *testing.T) {
	reclaimer := memory.NewOrderReclaimer(8)
	e := New().WithReclaimer(reclaimer)
	rest(e, "o1", "SYM", orderbook.Buy, 100, 10, 1)

	e.EnterSnapshot()
	if !e.CancelOrder("SYM", "o1") {
		t.Fatal("cancel should succeed for a resting order")
	}
	reclaimer.Advance(e.ReaderEpoch())
	second := reclaimer.Acquire("o2", "SYM", orderbook.Sell, orderbook.Limit, 200, 5, 2)
	if second.ID != "o2" {
		t.Fatalf("acquired order = %+v, want fresh fields for o2", second)
	}

	e.ExitSnapshot()
	reclaimer.Advance(e.ReaderEpoch())
}
