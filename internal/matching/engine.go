package matching

import (
	"fmt"

	"github.com/lokidex/matching-core/internal/memory"
	"github.com/lokidex/matching-core/internal/orderbook"
)

// Reclaimer receives every order the engine removes from a resting level —
// a maker filled to zero, or an order cancelled by CancelOrder — instead
// of letting it fall to the garbage collector. An incoming order that
// never rests (fully filled, a discarded residual, or a killed FOK) is not
// handed over; its caller retires it. internal/memory.OrderReclaimer implements
// this so a shard can recycle the node once no concurrent reader can
// still observe it.
type Reclaimer interface {
	Retire(*orderbook.Order)
}

// Engine holds one Book per symbol, a monotone trade-id counter, and an
// optional durable Sink. It is the library's single entry point: the
// caller's event loop decodes one order at a time and calls ProcessOrder;
// calls for the same symbol must be serialized by the caller.
type Engine struct {
	books       map[string]*orderbook.Book
	trades      uint64
	sink        Sink
	reclaimer   Reclaimer
	readerEpoch memory.ReaderEpoch
	history     []Trade // append-only; caller may snapshot and clear via DrainTrades
}

// New creates an engine with no books yet and no durable sink. Use
// WithSink to attach one.
func New() *Engine {
	e := &Engine{books: make(map[string]*orderbook.Book)}
	e.readerEpoch.Exit() // idle until a snapshot reader actually enters
	return e
}

// WithSink attaches a Sink that receives every batch of trades emitted by
// ProcessOrder, in addition to the batch being appended to GetTrades.
func (e *Engine) WithSink(sink Sink) *Engine {
	e.sink = sink
	return e
}

// WithReclaimer attaches a Reclaimer that every order leaving a book is
// handed to, so its node can be recycled instead of garbage collected.
func (e *Engine) WithReclaimer(r Reclaimer) *Engine {
	e.reclaimer = r
	return e
}

func (e *Engine) retire(o *orderbook.Order) {
	if e.reclaimer != nil {
		e.reclaimer.Retire(o)
	}
}

// EnterSnapshot marks the calling goroutine as about to walk e's books
// without going through the owning shard's event loop — the gRPC
// GetBBO/GetL2Snapshot path, in particular — so a caller's Reclaimer
// won't recycle a node this walk might still be looking at. Pair with
// ExitSnapshot, ideally via defer.
func (e *Engine) EnterSnapshot() {
	e.readerEpoch.Enter()
}

// ExitSnapshot ends the bracket started by EnterSnapshot.
func (e *Engine) ExitSnapshot() {
	e.readerEpoch.Exit()
}

// ReaderEpoch exposes the engine's own snapshot-reader tracker, for a
// caller's Reclaimer.Advance call.
func (e *Engine) ReaderEpoch() *memory.ReaderEpoch {
	return &e.readerEpoch
}

// GetBook returns the book for symbol, creating it (both sides empty) on
// first reference.
func (e *Engine) GetBook(symbol string) *orderbook.Book {
	b, ok := e.books[symbol]
	if !ok {
		b = orderbook.NewBook(symbol)
		e.books[symbol] = b
	}
	return b
}

// GetTrades returns the full trade history accumulated so far. The slice
// is owned by the engine; callers that want to clear it should use
// DrainTrades instead of mutating the returned slice.
func (e *Engine) GetTrades() []Trade {
	return e.history
}

// DrainTrades returns and clears the accumulated trade history. Prefer
// this over GetTrades in long-running processes so the history doesn't
// grow unboundedly (spec design note: trade emission buffer).
func (e *Engine) DrainTrades() []Trade {
	out := e.history
	e.history = nil
	return out
}

// CancelOrder cancels a resting order by id on the given symbol's book.
// Returns false — not an error — if id is not resting there.
func (e *Engine) CancelOrder(symbol, id string) bool {
	book, ok := e.books[symbol]
	if !ok {
		return false
	}
	o, ok := book.IndexedOrder(id)
	if !ok {
		return false
	}
	book.CancelOrder(id)
	e.retire(o)
	return true
}

// ProcessOrder is the single entry point. Preconditions:
//   - o.Remaining == o.Qty && o.Qty > 0
//   - o.Price > 0 for Limit, IOC, FOK (Market ignores Price)
//
// Violating a precondition is a programmer error, not a recoverable
// condition — ProcessOrder panics, matching the spec's fatal-error
// taxonomy. Lawful input never panics and never returns an error: "out of
// liquidity" and "FOK infeasible" are normal outcomes, not failures.
//
// Returns the trades generated by this call, in the exact order the
// matching loop produced them: best-price-first, and within a price,
// arrival order of makers.
func (e *Engine) ProcessOrder(o *orderbook.Order) []Trade {
	e.validate(o)

	book := e.GetBook(o.Symbol)

	var trades []Trade
	switch o.Type {
	case orderbook.FOK:
		trades = e.processFOK(book, o)
	default:
		trades = e.runMatchLoop(book, o)
		e.applyResidualPolicy(book, o)
	}

	if len(trades) > 0 {
		e.history = append(e.history, trades...)
		if e.sink != nil {
			e.sink.Accept(trades)
		}
	}
	return trades
}

func (e *Engine) validate(o *orderbook.Order) {
	if o.Qty <= 0 {
		panic(fmt.Sprintf("matching: order %s has non-positive quantity %d", o.ID, o.Qty))
	}
	if o.Remaining != o.Qty {
		panic(fmt.Sprintf("matching: order %s must enter ProcessOrder fresh (remaining=%d qty=%d)", o.ID, o.Remaining, o.Qty))
	}
	switch o.Type {
	case orderbook.Limit, orderbook.IOC, orderbook.FOK:
		if o.Price <= 0 {
			panic(fmt.Sprintf("matching: order %s of type %s requires a positive price", o.ID, o.Type))
		}
	case orderbook.Market:
		// price ignored
	default:
		panic(fmt.Sprintf("matching: order %s has unknown type %d", o.ID, o.Type))
	}
}

// isMarketable implements the spec's marketability test: BUY is
// marketable against best ask a iff order.Price >= a; SELL is marketable
// against best bid b iff order.Price <= b. Market orders are always
// marketable against whatever is resting.
func isMarketable(o *orderbook.Order, contraBest int64) bool {
	if o.Type == orderbook.Market {
		return true
	}
	if o.Side == orderbook.Buy {
		return o.Price >= contraBest
	}
	return o.Price <= contraBest
}

// runMatchLoop is the shared skeleton for Market, Limit, IOC and (after
// its feasibility pre-check passes) FOK. It mutates book and o in place
// and returns the trades generated.
func (e *Engine) runMatchLoop(book *orderbook.Book, o *orderbook.Order) []Trade {
	contra := o.Side.Opposite()
	var trades []Trade

	for o.Remaining > 0 {
		level := book.BestLevel(contra)
		if level == nil {
			break
		}
		if !isMarketable(o, level.Price) {
			break
		}
		resting := level.Head()
		if resting == nil {
			break // defensive; invariants guarantee a non-empty level
		}

		fill := min64(o.Remaining, resting.Remaining)

		e.trades++
		trades = append(trades, Trade{
			TradeID:      formatTradeID(e.trades),
			Symbol:       book.Symbol,
			MakerOrderID: resting.ID,
			TakerOrderID: o.ID,
			Price:        resting.Price,
			Qty:          fill,
			Aggressor:    o.Side,
			Timestamp:    o.Timestamp,
		})

		o.ReduceRemaining(fill)
		resting.ReduceRemaining(fill)

		if resting.Remaining == 0 {
			book.CancelOrder(resting.ID)
			e.retire(resting)
		}
	}

	return trades
}

// applyResidualPolicy decides what happens to a non-FOK order's leftover
// quantity after the match loop exits, per the type table in spec §4.2.
func (e *Engine) applyResidualPolicy(book *orderbook.Book, o *orderbook.Order) {
	if o.Remaining == 0 {
		return
	}
	switch o.Type {
	case orderbook.Limit:
		book.AddOrder(o)
	case orderbook.Market, orderbook.IOC:
		// residual silently discarded
	}
}

// processFOK implements fill-or-kill: a feasibility pre-check followed by
// the standard loop, which is then guaranteed to fully fill. If
// infeasible, the call is a complete no-op — zero trades, zero book
// mutation.
func (e *Engine) processFOK(book *orderbook.Book, o *orderbook.Order) []Trade {
	contra := o.Side.Opposite()
	available := book.AvailableLiquidity(contra, o.Price)
	if available < o.Qty {
		return nil
	}
	trades := e.runMatchLoop(book, o)
	// o.Remaining == 0 here by construction of the feasibility check.
	return trades
}

func formatTradeID(n uint64) string {
	return fmt.Sprintf("T%04d", n)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
