// Command loki-audit-dump pages through an audit log directory and
// prints one JSON line per record, for compliance export. It never
// touches orderbook or matching state — the audit log is replay-only
// for humans, not a recovery source for the engine.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/lokidex/matching-core/internal/auditlog"
)

type dumpedRecord struct {
	Type    string          `json:"type"`
	Seq     uint64          `json:"seq"`
	Time    int64           `json:"time"`
	Payload json.RawMessage `json:"payload"`
}

func recordTypeName(t auditlog.RecordType) string {
	switch t {
	case auditlog.RecordOrderAccepted:
		return "order_accepted"
	case auditlog.RecordCancel:
		return "cancel"
	case auditlog.RecordTrade:
		return "trade"
	default:
		return "unknown"
	}
}

func main() {
	dir := flag.String("dir", "./data/audit", "audit log segment directory")
	flag.Parse()

	enc := json.NewEncoder(os.Stdout)
	lastSeq, err := auditlog.Replay(*dir, func(r *auditlog.Record) error {
		return enc.Encode(dumpedRecord{
			Type:    recordTypeName(r.Type),
			Seq:     r.Seq,
			Time:    r.Time,
			Payload: json.RawMessage(r.Data),
		})
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "loki-audit-dump:", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "loki-audit-dump: replayed through seq %d\n", lastSeq)
}
