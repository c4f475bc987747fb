package broadcaster

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/lokidex/matching-core/internal/outbox"
)

// Broadcaster is the egress publisher: it owns no book state and performs
// no matching, only I/O between the durable outbox and Kafka.
type Broadcaster struct {
	store    *outbox.Outbox
	producer sarama.SyncProducer
	log      *zap.Logger
	interval time.Duration
}

// New dials brokers with a synchronous, ack-all, retrying producer
// configuration suited to a publisher that must not silently drop a
// record it has already marked SENT.
func New(store *outbox.Outbox, brokers []string, log *zap.Logger) (*Broadcaster, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Broadcaster{store: store, producer: producer, log: log, interval: 250 * time.Millisecond}, nil
}

// Start runs the drain loop in its own goroutine until ctx is cancelled.
func (b *Broadcaster) Start(ctx context.Context) {
	b.log.Info("broadcaster started")
	go func() {
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.drainOnce()
			}
		}
	}()
}

func (b *Broadcaster) drainOnce() {
	err := b.store.ScanByState(outbox.StateNew, func(id string, rec outbox.Record) error {
		if uerr := b.store.UpdateState(id, outbox.StateSent, rec.Retries); uerr != nil {
			b.log.Warn("failed to mark record sent", zap.String("id", id), zap.Error(uerr))
			return nil
		}

		msg := &sarama.ProducerMessage{Topic: rec.Topic, Value: sarama.ByteEncoder(rec.Payload)}
		if _, _, perr := b.producer.SendMessage(msg); perr != nil {
			b.log.Warn("publish failed, will retry", zap.String("id", id), zap.Error(perr))
			_ = b.store.UpdateState(id, outbox.StateNew, rec.Retries+1)
			return nil
		}

		if derr := b.store.Delete(id); derr != nil {
			b.log.Warn("failed to clean up acked record", zap.String("id", id), zap.Error(derr))
		}
		return nil
	})
	if err != nil {
		b.log.Error("outbox scan failed", zap.Error(err))
	}
}

// Close releases the underlying Kafka producer.
func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
