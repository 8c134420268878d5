// Package kafka wraps franz-go for producing event records
package kafka

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaClient defines the interface for Kafka operations
type KafkaClient interface {
	Produce(ctx context.Context, topic string, value []byte) error
	ProduceAsync(ctx context.Context, topic string, value []byte, onErr func(error))
	Close() error
	GetClient() *kgo.Client
}

// Client represents a Kafka producer wrapper
type Client struct {
	opts   []kgo.Opt
	client *kgo.Client
}

// New creates a new Kafka client with the provided options
func New(opts ...kgo.Opt) (KafkaClient, error) {
	kafkaClient, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		opts:   opts,
		client: kafkaClient,
	}, nil
}

// Produce sends a message to a Kafka topic and waits for the broker ack
func (k *Client) Produce(ctx context.Context, topic string, value []byte) error {
	record := &kgo.Record{
		Topic: topic,
		Value: value,
	}
	return k.client.ProduceSync(ctx, record).FirstErr()
}

// ProduceAsync sends a message to a Kafka topic without blocking the caller
// A failed delivery is reported through onErr when it is non-nil
func (k *Client) ProduceAsync(ctx context.Context, topic string, value []byte, onErr func(error)) {
	record := &kgo.Record{
		Topic: topic,
		Value: value,
	}

	k.client.Produce(ctx, record, func(record *kgo.Record, err error) {
		if err != nil && onErr != nil {
			onErr(err)
		}
	})
}

// Close closes the Kafka client
func (k *Client) Close() error {
	if k.client != nil {
		k.client.Close()
	}
	return nil
}

// GetClient returns the underlying Kafka client for advanced operations
func (k *Client) GetClient() *kgo.Client {
	return k.client
}
