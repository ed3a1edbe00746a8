package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
)

// KafkaNotifier republishes broker events onto a topic so other deployments
// (badge counters, session fan-out) can pick them up. Delivery is
// best-effort; failures are logged and never retried here.
type KafkaNotifier struct {
	sub    *Subscription
	writer *kafka.Writer
}

func NewKafkaNotifier(broker *Broker, topic string, brokers ...string) *KafkaNotifier {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaNotifier{
		sub:    broker.Subscribe(64),
		writer: w,
	}
}

func (n *KafkaNotifier) Run(ctx context.Context) {
	for {
		select {
		case evt, ok := <-n.sub.C():
			if !ok {
				return
			}
			n.publish(ctx, evt)
		case <-ctx.Done():
			return
		}
	}
}

func (n *KafkaNotifier) publish(ctx context.Context, evt Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		log.Printf("failed to marshal event: %v", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(evt.UserID), // per-user ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "signal", Value: []byte(evt.Signal)},
		},
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("failed to publish %s for user %s: %v", evt.Signal, evt.UserID, err)
	}
}

func (n *KafkaNotifier) Close() {
	n.sub.Close()
	if err := n.writer.Close(); err != nil {
		log.Printf("error closing kafka writer: %v", err)
	}
}
