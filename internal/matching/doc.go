// Package matching implements price-time priority matching for market,
// limit, IOC and FOK orders against a per-symbol orderbook.Book. It is the
// single entry point the event loop calls once per decoded order; the
// engine itself performs no I/O and is not safe for concurrent calls
// against the same symbol.
package matching
