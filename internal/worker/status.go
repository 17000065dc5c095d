package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-shop-orders.git/internal/kafka"
	"github.com/ariefcatur/go-shop-orders.git/internal/orders"
	"github.com/ariefcatur/go-shop-orders.git/internal/redisx"
)

// Service keeps the Redis order-status cache in sync with order events and
// writes an audit line per event.
type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleOrderEvent is attached as the consumer handler for both order topics.
func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	// dedup on event_id; events may be redelivered
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	switch env.EventType {
	case orders.EventOrderCreated:
		p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
		if err != nil {
			return err
		}
		log.Info().
			Str("order_id", p.OrderID).
			Str("order_num", p.OrderNum).
			Str("user_id", p.UserID).
			Int("total_price", p.TotalPrice).
			Msg("order created")
		return s.cacheStatus(ctx, p.OrderID, p.Status)

	case orders.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
		if err != nil {
			return err
		}
		log.Info().
			Str("order_id", p.OrderID).
			Str("order_num", p.OrderNum).
			Str("status", string(p.Status)).
			Msg("order status changed")
		return s.cacheStatus(ctx, p.OrderID, p.Status)
	}
	return nil // unknown event types are ignored
}

func (s *Service) cacheStatus(ctx context.Context, orderID string, status orders.Status) error {
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	body, _ := json.Marshal(map[string]any{"status": status})
	return s.Redis.Set(ctx, key, body, redisx.TTLStatusCache).Err()
}
