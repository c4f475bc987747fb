package auditlog

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
)

// Config configures a Log's segment directory and rotation threshold.
type Config struct {
	Dir         string
	SegmentSize int64 // rotate once the active segment's byte offset reaches this
}

// Log is the append-only, segment-rotated, CRC-framed audit log. One Log
// per running process; every symbol shard's accepted orders and trades
// are interleaved onto it. Append and Close are safe for concurrent use.
type Log struct {
	mu       sync.Mutex
	dir      string
	segSize  int64
	current  *segment
	segIndex int
}

// Open creates dir if needed and opens (or creates) its first segment.
func Open(cfg Config) (*Log, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	seg, err := openSegment(cfg.Dir, 0)
	if err != nil {
		return nil, err
	}
	return &Log{dir: cfg.Dir, segSize: cfg.SegmentSize, current: seg}, nil
}

// Append frames r as [type:1][seq:8][time:8][len:4][payload][crc:4] and
// writes it to the active segment, rotating to a new segment file if this
// write crossed the configured size threshold.
func (l *Log) Append(r *Record) error {
	payloadLen := uint32(len(r.Data))
	buf := make([]byte, 1+8+8+4+payloadLen+4)

	buf[0] = byte(r.Type)
	binary.BigEndian.PutUint64(buf[1:9], r.Seq)
	binary.BigEndian.PutUint64(buf[9:17], uint64(r.Time))
	binary.BigEndian.PutUint32(buf[17:21], payloadLen)
	copy(buf[21:], r.Data)

	crc := crc32Sum(buf[:21+payloadLen])
	binary.BigEndian.PutUint32(buf[21+payloadLen:], crc)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.current.append(buf); err != nil {
		return err
	}
	if l.current.offset >= l.segSize {
		return l.rotate()
	}
	return nil
}

func (l *Log) rotate() error {
	_ = l.current.close()
	l.segIndex++
	seg, err := openSegment(l.dir, l.segIndex)
	if err != nil {
		return err
	}
	l.current = seg
	return nil
}

// Close flushes and closes the active segment.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current.close()
}

// TruncateBefore deletes segment files whose every record has Seq <= seq,
// once a downstream compliance export has durably consumed them.
func (l *Log) TruncateBefore(seq uint64) error {
	files, err := filepath.Glob(filepath.Join(l.dir, "segment-*.audit"))
	if err != nil {
		return err
	}
	for _, path := range files {
		maxSeq, err := maxSeqInSegment(path)
		if err != nil {
			continue
		}
		if maxSeq <= seq {
			_ = os.Remove(path)
		}
	}
	return nil
}
