package poller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	c "github.com/gradeshop/catalog-service/internal/cache"
)

// Poller consumes catalog-update messages published by the admin subsystem
// and drops the cached snapshot for the touched product, so stock and price
// edits show up without waiting for the TTL.
type Poller struct {
	reader *kafka.Reader
	cache  c.CatalogCache
}

func NewPoller(cache c.CatalogCache, topic string, brokers ...string) *Poller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  "catalog-service-consumer",
		MaxBytes: 10e6, // 10MB
	})
	return &Poller{reader, cache}
}

func (p *Poller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		p.invalidateNext(ctx)
	}
}

func (p *Poller) Close() {
	err := p.reader.Close()
	if err != nil {
		fmt.Printf("error closing reader: %v\n", err)
	}
}

func (p *Poller) invalidateNext(ctx context.Context) {
	m, err := p.reader.ReadMessage(ctx)
	if err != nil {
		fmt.Printf("error reading message: %v\n", err)
		return
	}

	var payload map[string]interface{}
	if errUnMarshal := json.Unmarshal(m.Value, &payload); errUnMarshal != nil {
		fmt.Printf("error parsing message: %v\n", errUnMarshal)
		return
	}
	productID, ok := payload["product_id"].(float64)
	if !ok {
		fmt.Println("missing or invalid product_id")
		return
	}

	if errDelete := p.cache.Delete(ctx, int64(productID)); errDelete != nil {
		fmt.Printf("failed to invalidate snapshot: %v\n", errDelete)
	}
}
