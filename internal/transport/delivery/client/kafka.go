package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaClient публикует уведомления в топик kafka. Ключ записи - получатель, поэтому уведомления одного
// счета попадают в одну партицию и сохраняют порядок.
type KafkaClient struct {
	client producer
}

// producer часть *kgo.Client, которой пользуется KafkaClient.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

func NewKafka(brokers []string, topic string) (*KafkaClient, error) {
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaClient{client: cl}, nil
}

func (k *KafkaClient) Deliver(ctx context.Context, notification domain.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %s", err.Error())
	}
	record := &kgo.Record{
		Key:   []byte(notification.Recipient),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "notification-id", Value: []byte(notification.ID)},
		},
	}
	if produceErr := k.client.ProduceSync(ctx, record).FirstErr(); produceErr != nil {
		return fmt.Errorf("produce notification: %w", produceErr)
	}
	return nil
}

func (k *KafkaClient) Close() {
	k.client.Close()
}
