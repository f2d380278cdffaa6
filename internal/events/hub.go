// Package events fans mutation hints out to connected dashboards.
//
// Storage publishes an Event to Redis after every successful mutation;
// the hub subscribes once per process and forwards each event to every
// registered websocket client. Events carry identifiers only: a client
// reacts by re-fetching through the policy-checked read path, so the hub
// never has to reason about row visibility.
package events

import (
	"encoding/json"
	"log"

	"bcms/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Source is the slice of the storage layer the hub depends on.
type Source interface {
	SubscribeEvents() *redis.PubSub
}

// Hub owns the set of connected clients. All state is confined to the
// Run loop; registration, removal, and delivery go through channels.
type Hub struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	BroadcastCh  chan models.Event

	Source Source

	pubSubCh chan models.Event
}

// NewHub creates a hub wired to the given event source.
func NewHub(src Source) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		BroadcastCh:  make(chan models.Event),
		Source:       src,
		pubSubCh:     make(chan models.Event),
	}
}

// Run is the hub's dispatcher loop. It must run in its own goroutine.
func (h *Hub) Run() {
	h.startPubSubListener()

	for {
		select {
		case client := <-h.RegisterCh:
			h.Clients[client.GetUserID()] = client
			log.Printf("Dashboard client connected: %s", client.GetUserID())

		case client := <-h.UnregisterCh:
			if _, ok := h.Clients[client.GetUserID()]; ok {
				delete(h.Clients, client.GetUserID())
				client.Close()
				log.Printf("Dashboard client disconnected: %s", client.GetUserID())
			}

		case ev := <-h.BroadcastCh:
			h.deliver(ev)

		case ev := <-h.pubSubCh:
			// Event published by this or another server instance.
			h.deliver(ev)
		}
	}
}

// deliver pushes an event to every connected client. A client whose send
// buffer is full is dropped rather than allowed to stall the loop.
func (h *Hub) deliver(ev models.Event) {
	for userID, client := range h.Clients {
		select {
		case client.GetSendChannel() <- ev:
		default:
			delete(h.Clients, userID)
			client.Close()
			log.Printf("WARNING: Dropped slow dashboard client %s", userID)
		}
	}
}

// startPubSubListener consumes the Redis event channel and feeds the Run
// loop. With no Redis configured the hub still serves locally broadcast
// events.
func (h *Hub) startPubSubListener() {
	pubsub := h.Source.SubscribeEvents()
	if pubsub == nil {
		log.Println("Events hub running without Redis; cross-instance fan-out disabled")
		return
	}

	go func() {
		defer pubsub.Close()
		for msg := range pubsub.Channel() {
			var ev models.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("Error unmarshalling event payload: %v", err)
				continue
			}
			h.pubSubCh <- ev
		}
	}()
}
