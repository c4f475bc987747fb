// Package auditlog is a durable, segment-rotated, CRC-framed append log
// of every accepted order, cancel, and trade, kept for compliance replay.
// It is written by the ingress/egress glue, never by the matching core,
// and it is explicitly not used to reconstruct book state on startup —
// the book is always rebuilt empty, per the engine's persistence
// non-goal. Replay exists for operator tooling (cmd/loki-audit-dump),
// not for recovery. cmd/loki-engine records each accepted order and each
// resulting trade; cancels made through the gRPC surface are not recorded.
package auditlog
