package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"event-reg-be/internal/dto"
	"event-reg-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const checkInChannel = "checkin_events"

// Hub fans live check-in activity out to connected staff dashboards.
// With Redis configured the feed also crosses instances: every hub
// publishes its local check-ins and relays what the others publish.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb    *redis.Client
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("Hub", "Dashboard connected", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastCheckIn implements service.ICheckInBroadcaster.
func (h *Hub) BroadcastCheckIn(registrant *dto.RegistrantResponse) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "check_in",
		"data": registrant,
	})
	if err != nil {
		return
	}

	h.sendLocal(data)

	if h.rdb != nil {
		if err := h.rdb.Publish(context.Background(), checkInChannel, data).Err(); err != nil {
			h.logger.Warn("Hub", "Redis publish failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (h *Hub) sendLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer, drop the connection rather than block the
			// feed.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, checkInChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.sendLocal([]byte(msg.Payload))
	}
}
