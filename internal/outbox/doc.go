// Package outbox is a Pebble-backed durable store for egress records
// (Trade, BBO, L2 snapshot) awaiting publication to Kafka. It guarantees
// at-least-once delivery across process restarts without the matching
// core doing any I/O: the egress publisher writes here first, then the
// broadcaster drains NEW records, marking each SENT and deleting it once
// Kafka confirms it.
package outbox
