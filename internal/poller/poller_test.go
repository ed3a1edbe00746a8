package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"

	c "github.com/gradeshop/catalog-service/internal/cache"
	"github.com/gradeshop/catalog-service/internal/domain"
)

func setupTestRedis(t *testing.T) (*c.RedisCache, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := c.NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, cleanup
}

func setupKafka(t *testing.T) (string, func()) {
	ctx := context.Background()

	kafkaContainer, err := kafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers, "broker address should not be empty")

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	}

	return brokers[0], cleanup
}

func createTopic(t *testing.T, brokerAddr, topic string) {
	conn, err := kafkaGo.Dial("tcp", brokerAddr)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkaGo.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer controllerConn.Close()

	topicConfigs := []kafkaGo.TopicConfig{{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}}

	err = controllerConn.CreateTopics(topicConfigs...)
	if err != nil {
		t.Logf("topic creation error (may already exist): %v", err)
	}
}

func TestPoller_InvalidatesSnapshotOnCatalogUpdate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache, cleanupRedis := setupTestRedis(t)
	defer cleanupRedis()
	brokers, cleanupKafka := setupKafka(t)
	defer cleanupKafka()

	topic := "catalog-updates"
	createTopic(t, brokers, topic)

	poller := NewPoller(cache, topic, brokers)
	defer poller.Close()

	// Seed the cache with a snapshot for product 1.
	snap := &c.Snapshot{
		Product: domain.Product{ID: 1, Name: "Air Zoom Courtside"},
		Variants: []domain.Variant{
			{ID: 10, ProductID: 1, Size: "40", GradeID: 1, GradeName: "Original", Stock: 5, Price: 120000},
		},
	}
	require.NoError(t, cache.Set(ctx, 1, snap))

	w := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(brokers),
		Topic:                  topic,
		Balancer:               &kafkaGo.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	payload := map[string]interface{}{
		"product_id": 1,
		"changed_at": time.Now(),
	}

	payloadJSON, err := json.Marshal(payload)
	require.NoError(t, err)
	msg := kafkaGo.Message{
		Key:   []byte("1"),
		Value: payloadJSON,
		Headers: []kafkaGo.Header{
			{Key: "event_type", Value: []byte("catalog-update")},
		},
	}

	err = w.WriteMessages(ctx, msg)
	require.NoError(t, err)
	w.Close()

	go poller.Run(ctx)

	require.Eventually(t, func() bool {
		_, eGetCache := cache.Get(ctx, 1)
		return errors.Is(eGetCache, c.ErrCacheMiss) // snapshot dropped
	}, 15*time.Second, 500*time.Millisecond)
}
