// Package websocket pushes presentation status changes to connected
// browsers. Publishers write to redis pubsub; the hub subscribes once per
// watched presentation and fans messages out to its sockets.
package websocket

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID][]*websocket.Conn
	redisClient *redis.Client
	cancelFuncs map[uuid.UUID]context.CancelFunc
}

func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID][]*websocket.Conn),
		redisClient: redisClient,
		cancelFuncs: make(map[uuid.UUID]context.CancelFunc),
	}
}

// HandleWebSocket subscribes a client to one presentation's status stream,
// identified by the presentation_id query param.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("presentation_id")
	presentationID, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "Invalid presentation_id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.registerConnection(presentationID, conn)

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregisterConnection(presentationID, conn)
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				break
			}
		}
	}()
}

func (h *Hub) registerConnection(presentationID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[presentationID] = append(h.connections[presentationID], conn)

	// First watcher for this presentation starts the pub/sub subscription
	if len(h.connections[presentationID]) == 1 {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancelFuncs[presentationID] = cancel
		go h.subscribeToPubSub(ctx, presentationID)
	}

	log.Printf("WebSocket connected: presentation %s (total: %d)", presentationID, len(h.connections[presentationID]))
}

func (h *Hub) unregisterConnection(presentationID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()

	conns := h.connections[presentationID]
	for i, c := range conns {
		if c == conn {
			h.connections[presentationID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	if len(h.connections[presentationID]) == 0 {
		delete(h.connections, presentationID)
		if cancel, ok := h.cancelFuncs[presentationID]; ok {
			cancel()
			delete(h.cancelFuncs, presentationID)
		}
	}

	log.Printf("WebSocket disconnected: presentation %s", presentationID)
}

func (h *Hub) subscribeToPubSub(ctx context.Context, presentationID uuid.UUID) {
	channel := "presentation_updates:" + presentationID.String()
	pubsub := h.redisClient.Subscribe(ctx, channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast(presentationID, []byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcast(presentationID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[presentationID] {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}
