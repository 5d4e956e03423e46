package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const eventsChannel = "notify:events"

// Event is what marketplace handlers push to users: an order moved, an
// application was answered, and so on.
type Event struct {
	UserID  string      `json:"user_id"`
	Type    string      `json:"type"` // e.g. order.paid, application.approved
	Payload interface{} `json:"payload,omitempty"`
	Origin  string      `json:"origin,omitempty"` // instance that produced the event
}

// Notifier fans events out to local websocket clients and republishes them
// on Redis so every other instance delivers to its own clients too.
type Notifier struct {
	Hub *Hub
	RDB *redis.Client

	instanceID string
}

func NewNotifier(hub *Hub, rdb *redis.Client) *Notifier {
	return &Notifier{Hub: hub, RDB: rdb, instanceID: uuid.NewString()}
}

func (n *Notifier) Notify(ctx context.Context, ev Event) {
	n.Hub.SendToUser(ev.UserID, ev)

	if n.RDB == nil {
		return
	}
	ev.Origin = n.instanceID
	b, err := json.Marshal(ev)
	if err != nil {
		log.Printf("notifier: marshal event: %v", err)
		return
	}
	if err := n.RDB.Publish(ctx, eventsChannel, b).Err(); err != nil {
		log.Printf("notifier: publish event: %v", err)
	}
}

// Subscribe consumes the shared Redis channel and re-delivers events to
// this instance's websocket clients. Run it in its own goroutine.
func (n *Notifier) Subscribe(ctx context.Context) {
	if n.RDB == nil {
		return
	}
	sub := n.RDB.Subscribe(ctx, eventsChannel)
	defer sub.Close()

	for {
		msg, err := sub.ReceiveMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("notifier: subscribe receive: %v", err)
			return
		}

		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("notifier: bad event payload: %v", err)
			continue
		}
		if ev.Origin == n.instanceID {
			continue // already delivered locally
		}
		n.Hub.SendToUser(ev.UserID, ev)
	}
}
