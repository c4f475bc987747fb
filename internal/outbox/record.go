package outbox

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// State is an egress record's position in the at-least-once delivery
// state machine. The broadcaster moves a record NEW -> SENT, deletes it
// once Kafka confirms it, and moves it back to NEW on a publish error;
// StateAcked and StateFailed are defined but the broadcaster sets neither.
type State uint8

const (
	StateNew State = iota
	StateSent
	StateAcked
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateSent:
		return "SENT"
	case StateAcked:
		return "ACKED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Record is one egress message waiting to reach Kafka. Topic names which
// topic the broadcaster should publish Payload to once it sees this
// record in ScanByState(StateNew, ...).
type Record struct {
	Topic       string
	Payload     []byte
	State       State
	Retries     uint32
	LastAttempt int64
}

// encoding: [state:1][retries:4][lastAttempt:8][topicLen:2][topic][payload...]
func encodeRecord(r Record) []byte {
	topic := []byte(r.Topic)
	buf := make([]byte, 1+4+8+2+len(topic)+len(r.Payload))
	buf[0] = byte(r.State)
	binary.BigEndian.PutUint32(buf[1:5], r.Retries)
	binary.BigEndian.PutUint64(buf[5:13], uint64(r.LastAttempt))
	binary.BigEndian.PutUint16(buf[13:15], uint16(len(topic)))
	copy(buf[15:15+len(topic)], topic)
	copy(buf[15+len(topic):], r.Payload)
	return buf
}

func decodeRecord(b []byte) (Record, error) {
	if len(b) < 15 {
		return Record{}, errors.New("outbox: record too short")
	}
	state := State(b[0])
	retries := binary.BigEndian.Uint32(b[1:5])
	lastAttempt := int64(binary.BigEndian.Uint64(b[5:13]))
	topicLen := int(binary.BigEndian.Uint16(b[13:15]))
	if len(b) < 15+topicLen {
		return Record{}, errors.New("outbox: truncated topic")
	}
	topic := string(b[15 : 15+topicLen])
	payload := append([]byte(nil), b[15+topicLen:]...)
	return Record{
		Topic:       topic,
		Payload:     payload,
		State:       state,
		Retries:     retries,
		LastAttempt: lastAttempt,
	}, nil
}

func keyFor(id string) []byte {
	return []byte(fmt.Sprintf("egress/%s", id))
}

func parseKey(b []byte) string {
	return string(bytes.TrimPrefix(b, []byte("egress/")))
}
