// Package ingress reads encoded orders off a Redis list, decodes them
// into orderbook.Order, and hands each to the caller's dispatch
// function. A malformed payload is dropped and logged — it never
// reaches the matching core.
package ingress
