// Package kafkafeed is a thin segmentio/kafka-go producer for tooling
// that wants to mirror synthetic traffic onto a Kafka topic without
// going through the outbox/sarama egress path loki-engine itself uses —
// chiefly loki-loadgen, so a load test's generated orders can be
// replayed or audited independently of the engine under test.
package kafkafeed

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (p *Producer) Send(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: value})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
