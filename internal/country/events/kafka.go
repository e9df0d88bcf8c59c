package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"countryref/pkg/platform/sentinel"
)

// DefaultPublishTimeout bounds one Publish and the final flush on Close.
const DefaultPublishTimeout = 5 * time.Second

// KafkaPublisher writes VersionAppended events to a Kafka topic.
type KafkaPublisher struct {
	client  *kgo.Client
	topic   string
	logger  *slog.Logger
	timeout time.Duration
}

type KafkaOption func(*KafkaPublisher)

func WithKafkaLogger(logger *slog.Logger) KafkaOption {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

// WithPublishTimeout caps how long a write waits for the broker. A broker
// that is down fails the publish after d instead of stalling the caller.
func WithPublishTimeout(d time.Duration) KafkaOption {
	return func(p *KafkaPublisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewKafkaPublisher connects a producer to brokers. Records are acknowledged
// by every in-sync replica before Publish returns.
func NewKafkaPublisher(brokers []string, topic string, opts ...KafkaOption) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka publisher requires at least one broker")
	}
	if topic == "" {
		return nil, errors.New("kafka publisher requires a topic")
	}
	p := &KafkaPublisher{topic: topic, logger: slog.Default(), timeout: DefaultPublishTimeout}
	for _, opt := range opts {
		opt(p)
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.RecordDeliveryTimeout(p.timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	p.client = client
	return p, nil
}

// EnsureTopic creates the topic if it does not exist yet.
func (p *KafkaPublisher) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	adm := kadm.NewClient(p.client)
	resp, err := adm.CreateTopics(ctx, partitions, replicationFactor, nil, p.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w: %w", p.topic, sentinel.ErrUnavailable, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	p.logger.Info("kafka topic ready", "topic", p.topic)
	return nil
}

// Publish produces one event synchronously, giving up after the publish
// timeout even when ctx has no deadline.
func (p *KafkaPublisher) Publish(ctx context.Context, e VersionAppended) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   e.Key(),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "operation", Value: []byte(e.Operation)},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce %s event: %w: %w", e.Operation, sentinel.ErrUnavailable, err)
	}
	return nil
}

// Close flushes buffered records, waiting at most the publish timeout, and
// closes the client.
func (p *KafkaPublisher) Close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil {
		p.logger.Warn("kafka flush failed", "error", err)
	}
	p.client.Close()
}
