// Package broadcaster drains internal/outbox's NEW records to Kafka via
// sarama, on a timer. Each record is marked SENT before it is published
// and deleted once Kafka acknowledges it. A record that fails to publish
// is put back to NEW with its retry count incremented and retried on the
// next tick, giving at-least-once delivery across process restarts.
package broadcaster
