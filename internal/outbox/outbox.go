package outbox

import (
	"time"

	"github.com/cockroachdb/pebble"
)

// Outbox is the durable store. One instance per process; every symbol
// shard's egress publisher writes through the same Outbox.
type Outbox struct {
	db *pebble.DB
}

// Open opens (or creates) a Pebble store at dir with its WAL enabled —
// durability is the entire point of this package.
func Open(dir string) (*Outbox, error) {
	db, err := pebble.Open(dir, &pebble.Options{DisableWAL: false})
	if err != nil {
		return nil, err
	}
	return &Outbox{db: db}, nil
}

func (o *Outbox) Close() error {
	return o.db.Close()
}

// PutNew durably records a fresh egress message in StateNew, keyed by id
// (e.g. a Trade's TradeID, or a synthetic "<symbol>-bbo-<ts>" key for
// projections).
func (o *Outbox) PutNew(id, topic string, payload []byte) error {
	rec := Record{Topic: topic, Payload: payload, State: StateNew}
	return o.db.Set(keyFor(id), encodeRecord(rec), pebble.Sync)
}

// UpdateState transitions id's record after a publish attempt.
func (o *Outbox) UpdateState(id string, state State, retries uint32) error {
	rec, err := o.Get(id)
	if err != nil {
		return err
	}
	rec.State = state
	rec.Retries = retries
	rec.LastAttempt = time.Now().UnixNano()
	return o.db.Set(keyFor(id), encodeRecord(rec), pebble.Sync)
}

// Delete removes a record; the broadcaster calls it once Kafka has
// confirmed the record.
func (o *Outbox) Delete(id string) error {
	return o.db.Delete(keyFor(id), pebble.Sync)
}

// Get returns the current record for id.
func (o *Outbox) Get(id string) (Record, error) {
	val, closer, err := o.db.Get(keyFor(id))
	if err != nil {
		return Record{}, err
	}
	defer closer.Close()
	return decodeRecord(val)
}

// ScanByState iterates every record in the given state, in key order.
// The broadcaster uses this to find everything still in StateNew.
func (o *Outbox) ScanByState(state State, fn func(id string, rec Record) error) error {
	iter, err := o.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("egress/"),
		UpperBound: []byte("egress/~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		rec, err := decodeRecord(iter.Value())
		if err != nil {
			return err
		}
		if rec.State != state {
			continue
		}
		if err := fn(parseKey(iter.Key()), rec); err != nil {
			return err
		}
	}
	return iter.Error()
}
