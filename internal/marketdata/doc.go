// Package marketdata derives BBO and L2 depth projections from an
// orderbook.Book. Every function here is a pure read of book state: no
// allocation of book state, no I/O, safe to call between orders.
package marketdata
