package auditlog

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Handler is called once per record found during Replay, in file order
// within each segment and in Glob order across segments — callers that
// need a single total order across segments should sort by (Time, Seq)
// themselves, since segment files may interleave shards.
type Handler func(*Record) error

// Replay walks every segment under dir and invokes fn for each record.
// It is a page-through tool for operators and compliance export, never
// for reconstructing book state: nothing in this package feeds back into
// orderbook or matching.
func Replay(dir string, fn Handler) (lastSeq uint64, err error) {
	files, err := filepath.Glob(filepath.Join(dir, "segment-*.audit"))
	if err != nil {
		return 0, err
	}

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return lastSeq, err
		}

		for {
			rec, rerr := readRecord(f)
			if rerr != nil {
				if rerr == io.EOF {
					break
				}
				_ = f.Close()
				return lastSeq, rerr
			}
			if rec.Seq > lastSeq {
				lastSeq = rec.Seq
			}
			if err := fn(rec); err != nil {
				_ = f.Close()
				return lastSeq, err
			}
		}
		_ = f.Close()
	}

	return lastSeq, nil
}

func readRecord(r io.Reader) (*Record, error) {
	header := make([]byte, 21)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	t := RecordType(header[0])
	seq := binary.BigEndian.Uint64(header[1:9])
	ts := binary.BigEndian.Uint64(header[9:17])
	l := binary.BigEndian.Uint32(header[17:21])

	rest := make([]byte, l+4)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, err
	}
	payload := rest[:l]
	crc := binary.BigEndian.Uint32(rest[l:])

	if !crc32Valid(append(header, payload...), crc) {
		return nil, fmt.Errorf("auditlog: crc mismatch at seq %d", seq)
	}

	return &Record{Type: t, Seq: seq, Time: int64(ts), Data: payload}, nil
}

// maxSeqInSegment scans a segment for its highest Seq, used only by
// TruncateBefore; it does not validate CRCs since a truncation decision
// only needs the sequence numbers present.
func maxSeqInSegment(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var max uint64
	for {
		header := make([]byte, 21)
		if _, err := io.ReadFull(f, header); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return max, nil
			}
			return max, err
		}
		seq := binary.BigEndian.Uint64(header[1:9])
		if seq > max {
			max = seq
		}
		payloadLen := binary.BigEndian.Uint32(header[17:21])
		if _, err := f.Seek(int64(payloadLen+4), io.SeekCurrent); err != nil {
			return max, err
		}
	}
}
