package notifications

import (
	"context"
	"fmt"
	"time"

	"zari/internal/shared/config"
	"zari/pkg/logger"

	"github.com/IBM/sarama"
)

// Publisher hands alerts to the delivery pipeline
type Publisher interface {
	Publish(ctx context.Context, alert *Alert) error
	Close() error
}

// KafkaPublisher writes alerts to the alert topic. The consumer group on the
// other side stores them in the recipient inbox.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func newProducerConfig(cfg config.KafkaConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = cfg.MaxRetries
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// recipient-keyed so one inbox stays ordered
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	return saramaConfig
}

func NewKafkaPublisher(cfg config.KafkaConfig, log *logger.Logger) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newProducerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, cfg.Topic, log), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, log: log.WithComponent("alerts.producer")}
}

func (p *KafkaPublisher) Publish(ctx context.Context, alert *Alert) error {
	if err := alert.Validate(); err != nil {
		return err
	}
	payload, err := alert.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(alert.PartitionKey()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("alert_id"), Value: []byte(alert.ID.String())},
			{Key: []byte("alert_type"), Value: []byte(alert.Type)},
			{Key: []byte("producer"), Value: []byte("zari-api")},
		},
		Timestamp: alert.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send alert to Kafka: %w", err)
	}

	p.log.Debug("alert published",
		"topic", p.topic,
		"partition", partition,
		"offset", offset,
		"type", alert.Type,
		"recipient_id", alert.RecipientID,
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

// InlinePublisher stores alerts straight into the inbox. Used when Kafka is disabled.
type InlinePublisher struct {
	inbox *Inbox
}

func NewInlinePublisher(inbox *Inbox) *InlinePublisher {
	return &InlinePublisher{inbox: inbox}
}

func (p *InlinePublisher) Publish(ctx context.Context, alert *Alert) error {
	return p.inbox.Push(ctx, alert)
}

func (p *InlinePublisher) Close() error { return nil }
