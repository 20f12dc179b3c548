package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"getscience-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "cluster_events"

// Hub tracks connected clients per user and fans payloads out to them.
// With Redis configured it also relays payloads to other instances over
// a pub/sub channel, so delivery works behind a load balancer.
type Hub struct {
	// UserID -> connections; one user may have several devices open.
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

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
		go h.subscribeToRedis()
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
				}
			}
			h.mu.Unlock()
		}
	}
}

func envelope(messageType string, data interface{}) []byte {
	payload, _ := json.Marshal(map[string]interface{}{
		"type": messageType,
		"data": data,
	})
	return payload
}

// Send delivers a payload to every open connection of one user, locally
// and via the Redis relay. Fire and forget: a slow client is dropped.
func (h *Hub) Send(userID uuid.UUID, messageType string, data interface{}) {
	payload := envelope(messageType, data)

	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
			h.unregister <- client
		}
	}

	h.relay(userID.String(), payload)
}

// Broadcast delivers a payload to every connected client of every user.
func (h *Hub) Broadcast(messageType string, data interface{}) {
	payload := envelope(messageType, data)

	h.broadcastLocal(payload)
	h.relay("*", payload)
}

// broadcastLocal fans a payload out to every local connection. Stale
// clients are collected and unregistered only after the read lock is
// released; Run needs the write lock to process an unregister, so
// sending while a reader is held would wedge the hub.
func (h *Hub) broadcastLocal(payload []byte) {
	var stale []*Client

	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- payload:
			default:
				stale = append(stale, client)
			}
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregister <- client
	}
}

func (h *Hub) relay(target string, payload []byte) {
	if h.rdb == nil {
		return
	}
	msg, _ := json.Marshal(map[string]interface{}{
		"target_user_id": target,
		"message":        json.RawMessage(payload),
	})
	h.rdb.Publish(context.Background(), clusterChannel, msg)
}

func (h *Hub) deliverLocal(target uuid.UUID, payload []byte) {
	h.mu.RLock()
	clients := h.clients[target]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- payload:
		default:
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Bad relay payload", map[string]interface{}{"error": err.Error()})
			continue
		}

		if payload.TargetUserID == "*" {
			h.broadcastLocal(payload.Message)
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.deliverLocal(uid, payload.Message)
	}
}
