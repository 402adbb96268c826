// FILE: internal/websocket/hub.go
package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"rag-admin-be/internal/model"
	"rag-admin-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// fanoutChannel carries pushes across instances so a notification reaches
// a user no matter which instance holds their socket.
const fanoutChannel = "cluster_events"

// broadcastTarget marks a fanout payload addressed to every connected user.
const broadcastTarget = "*"

type Hub struct {
	// Registered clients map: UserID -> connected sockets (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fanout; nil runs single-instance.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToFanout()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes a notification to every connected client on every
// instance.
func (h *Hub) Broadcast(notification model.Notification) {
	h.dispatch(broadcastTarget, encodeNotification(notification))
}

// Send pushes a notification to every device of one user.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	h.dispatch(userID.String(), encodeNotification(notification))
}

// dispatch routes a push either through Redis (which delivers back to this
// instance too, keeping exactly one delivery path) or, without Redis,
// straight to local sockets.
func (h *Hub) dispatch(target string, data []byte) {
	if h.rdb != nil {
		payload, _ := json.Marshal(fanoutPayload{
			TargetUserId: target,
			Message:      data,
		})
		if err := h.rdb.Publish(context.Background(), fanoutChannel, payload).Err(); err == nil {
			return
		}
		h.logger.Warn("Hub", "Fanout publish failed, delivering locally only", map[string]interface{}{"target": target})
	}
	h.deliverLocal(target, data)
}

func (h *Hub) deliverLocal(target string, data []byte) {
	if target == broadcastTarget {
		h.mu.RLock()
		defer h.mu.RUnlock()
		for _, clients := range h.clients {
			for _, client := range clients {
				h.push(client, data)
			}
		}
		return
	}

	uid, err := uuid.Parse(target)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := h.clients[uid]
	h.mu.RUnlock()

	for _, client := range clients {
		h.push(client, data)
	}
}

// push enqueues data for one socket; a full buffer drops the connection.
// push runs under the read lock and Run needs the write lock, so the
// unregister hand-off must not block here. Send is closed only by Run.
func (h *Hub) push(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": client.UserID})
		go func() { h.unregister <- client }()
	}
}

type fanoutPayload struct {
	TargetUserId string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToFanout() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, fanoutChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload fanoutPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed fanout payload", map[string]interface{}{"error": err.Error()})
			continue
		}
		h.deliverLocal(payload.TargetUserId, payload.Message)
	}
}

func encodeNotification(notification model.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}
