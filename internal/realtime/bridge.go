package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const bridgeChannel = "clinic:realtime"

type bridgeEnvelope struct {
	Instance string          `json:"instance"`
	Room     string          `json:"room"`
	Event    string          `json:"event"`
	Payload  json.RawMessage `json:"payload"`
}

// Bridge relays published events through Redis pub/sub so every API
// instance fans out to its own sockets. Local delivery does not depend
// on Redis being reachable.
type Bridge struct {
	hub        *Hub
	rdb        *redis.Client
	instanceID string
}

func NewBridge(redisURL string, hub *Hub) (*Bridge, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &Bridge{
		hub:        hub,
		rdb:        redis.NewClient(opts),
		instanceID: uuid.NewString(),
	}, nil
}

var _ Publisher = (*Bridge)(nil)

func (b *Bridge) Publish(room string, event string, payload any) {
	b.hub.Publish(room, event, payload)

	raw, err := json.Marshal(payload)
	if err != nil {
		log.Println("realtime: bridge marshal failed:", err)
		return
	}
	env, err := json.Marshal(bridgeEnvelope{
		Instance: b.instanceID,
		Room:     room,
		Event:    event,
		Payload:  raw,
	})
	if err != nil {
		return
	}
	if err := b.rdb.Publish(context.Background(), bridgeChannel, env).Err(); err != nil {
		// Fire-and-forget: remote fan-out is best effort.
		log.Println("realtime: bridge publish failed:", err)
	}
}

// Run subscribes to the bridge channel and replays events from other
// instances into the local hub. Blocks until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) {
	sub := b.rdb.Subscribe(ctx, bridgeChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env bridgeEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.Println("realtime: bridge decode failed:", err)
				continue
			}
			if env.Instance == b.instanceID {
				continue
			}
			b.hub.Publish(env.Room, env.Event, env.Payload)
		}
	}
}
