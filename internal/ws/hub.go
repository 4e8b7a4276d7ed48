package ws

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Hub struct {
	clients   map[*Client]bool
	broadcast chan []byte
	stopped   bool
	mutex     sync.RWMutex
	logger    *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:   make(map[*Client]bool),
		broadcast: make(chan []byte, 1024),
		logger:    logger.Named("ws"),
	}
}

// Run dispatches broadcasts until ctx is done, then closes every client. Clients registered
// after that are closed immediately.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			h.stopped = true
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
			return

		case message := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- message:
				default:
					h.remove(client)
				}
			}
			h.logger.Debug("ws broadcast", zap.Int("clients", len(snapshot)))
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	h.logger.Debug("ws disconnected", zap.Int("total_clients", total))
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
	h.clients[client] = true
	total := len(h.clients)
	h.mutex.Unlock()
	h.logger.Debug("ws connected", zap.Int("total_clients", total))
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.remove(client)
}

// Broadcast queues message for every client. A full queue drops the message.
func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("ws broadcast dropped", zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
