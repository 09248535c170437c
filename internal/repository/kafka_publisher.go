package repository

import (
	"context"

	"SigScan/internal/domain/models"
	pkgkafka "SigScan/pkg/kafka"
	applogger "SigScan/pkg/logger"
)

// KafkaPublisher fans accepted signals out to a Kafka topic, keyed by symbol
// so all signals for one pair land in the same partition.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	l        *applogger.Logger
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string, l *applogger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, l: l}
}

// PublishSignal sends one signal as JSON. Best effort; the caller treats the
// error as non-fatal.
func (p *KafkaPublisher) PublishSignal(ctx context.Context, sig *models.Signal) error {
	err := p.producer.Publish(ctx, p.topic, []byte(sig.Symbol), sig)
	if err != nil && p.l != nil {
		p.l.Error("kafka publish signal failed",
			applogger.String("id", sig.ID),
			applogger.String("topic", p.topic),
			applogger.Error(err))
	}
	return err
}

// Close flushes and closes the underlying producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
