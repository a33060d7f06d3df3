package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"zari/internal/shared/config"
	"zari/pkg/logger"

	"github.com/IBM/sarama"
)

// InboxWriter is the sink of consumed alerts
type InboxWriter interface {
	Push(ctx context.Context, alert *Alert) error
}

// KafkaConsumer drains the alert topic into user inboxes
type KafkaConsumer struct {
	group      sarama.ConsumerGroup
	topics     []string
	inbox      InboxWriter
	maxRetries int
	backoff    time.Duration
	log        *logger.Logger
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewKafkaConsumer(cfg config.KafkaConfig, inbox InboxWriter, log *logger.Logger) (*KafkaConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &KafkaConsumer{
		group:      group,
		topics:     []string{cfg.Topic},
		inbox:      inbox,
		maxRetries: cfg.MaxRetries,
		backoff:    200 * time.Millisecond,
		log:        log.WithComponent("alerts.consumer"),
		done:       make(chan struct{}),
	}, nil
}

// Start consumes in the background until Stop is called
func (c *KafkaConsumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	handler := &groupHandler{consumer: c}

	go func() {
		for err := range c.group.Errors() {
			c.log.Error("consumer group error", "error", err)
		}
	}()

	go func() {
		defer close(c.done)
		for {
			if err := c.group.Consume(ctx, c.topics, handler); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				c.log.Error("error consuming alerts", "error", err)
				time.Sleep(time.Second)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
	c.log.Info("alert consumer started", "topics", c.topics)
}

func (c *KafkaConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
	if err := c.group.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	c.log.Info("alert consumer stopped")
	return nil
}

// deliver decodes one record and stores it, retrying the inbox write with
// exponential backoff. Undecodable records are dropped.
func (c *KafkaConsumer) deliver(ctx context.Context, message *sarama.ConsumerMessage) error {
	var alert Alert
	if err := json.Unmarshal(message.Value, &alert); err != nil {
		c.log.Warn("dropping undecodable alert", "offset", message.Offset, "error", err)
		return nil
	}

	var err error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err = c.inbox.Push(ctx, &alert); err == nil || errors.Is(err, ErrInvalidAlert) {
			return err
		}
		select {
		case <-time.After(c.backoff * time.Duration(1<<attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

type groupHandler struct {
	consumer *KafkaConsumer
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.consumer.deliver(session.Context(), message); err != nil {
				h.consumer.log.Error("failed to deliver alert", "offset", message.Offset, "error", err)
				continue
			}
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
