// Package egress serializes Trade/BBO/L2 records into the wire shapes
// spec.md §6 defines and writes them through internal/outbox, so the
// matching core and its callers never touch Kafka directly.
package egress
