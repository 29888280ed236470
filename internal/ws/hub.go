package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type envelope struct {
	userID  uuid.UUID
	payload []byte
}

// Hub fans messages out to the sockets of a single user. One user may hold
// several connections.
type Hub struct {
	clients map[uuid.UUID]map[*Client]struct{}
	direct  chan envelope
	stopped bool
	mutex   sync.RWMutex
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[uuid.UUID]map[*Client]struct{}),
		direct:  make(chan envelope, 1024),
		logger:  logger,
	}
}

// Run delivers queued messages until ctx is done, then closes every client.
// Clients registering after that are closed immediately.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case msg := <-h.direct:
			h.mutex.Lock()
			for client := range h.clients[msg.userID] {
				select {
				case client.send <- msg.payload:
				default:
					h.removeLocked(client)
					h.logger.Warn("ws client dropped", zap.String("user_id", msg.userID.String()), zap.String("reason", "send_buffer_full"))
				}
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.stopped = true
	for userID, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, userID)
	}
}

func (h *Hub) countLocked() int {
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.mutex.Lock()
	if h.stopped {
		h.mutex.Unlock()
		close(client.send)
		return
	}
	set, ok := h.clients[client.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.userID] = set
	}
	set[client] = struct{}{}
	total := h.countLocked()
	h.mutex.Unlock()
	h.logger.Debug("ws connected", zap.String("user_id", client.userID.String()), zap.Int("total_clients", total))
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.mutex.Lock()
	h.removeLocked(client)
	total := h.countLocked()
	h.mutex.Unlock()
	h.logger.Debug("ws disconnected", zap.String("user_id", client.userID.String()), zap.Int("total_clients", total))
}

// Send queues payload for every socket of userID. It never blocks; when the
// hub queue is full the message is dropped.
func (h *Hub) Send(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.direct <- envelope{userID: userID, payload: payload}:
	default:
		h.logger.Warn("ws message dropped", zap.String("user_id", userID.String()), zap.String("reason", "hub_buffer_full"))
	}
}

// NotifyUser encodes event as JSON and sends it to userID.
func (h *Hub) NotifyUser(userID uuid.UUID, event any) {
	if h == nil {
		return
	}
	b, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("ws event encode failed", zap.Error(err))
		return
	}
	h.Send(userID, b)
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.countLocked()
}

func (h *Hub) UserClientCount(userID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}
