package notification

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRelay publishes state-change events on a Redis channel. Strictly
// best-effort: publish failures are logged and dropped, never surfaced to the
// transition that triggered them.
type RedisRelay struct {
	rdb     *redis.Client
	channel string
}

func NewRedisRelay(rdb *redis.Client, channel string) *RedisRelay {
	return &RedisRelay{rdb: rdb, channel: channel}
}

type eventMsg struct {
	Event   string    `json:"event"`
	OfferID string    `json:"offer_id"`
	At      time.Time `json:"at"`
}

func (r *RedisRelay) Notify(ctx context.Context, event, offerID string) {
	payload, _ := json.Marshal(eventMsg{Event: event, OfferID: offerID, At: time.Now().UTC()})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := r.rdb.Publish(ctx, r.channel, payload).Err(); err != nil {
		log.Printf("notification relay: publish %s %s: %v", event, offerID, err)
	}
}
