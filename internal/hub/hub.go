package hub

import (
	"context"
	"net/http"
	"sync"

	"CineShelf/internal/model"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub tracks connected notification-stream clients keyed by user id and
// pushes newly created notifications to them. It is push-only: clients
// never send application messages, only pings keep the socket alive.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[string]*Client // userID -> clientID -> client

	register   chan *Client
	unregister chan *Client

	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger

	upgrader websocket.Upgrader
}

func NewHub(allowedOrigins []string, logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		clients:    make(map[string]map[string]*Client),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		}
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[c.userID]
	if !ok {
		conns = make(map[string]*Client)
		h.clients[c.userID] = conns
	}
	conns[c.id] = c
	h.logger.Debug("notification client registered",
		zap.String("client_id", c.id),
		zap.String("user_id", c.userID),
	)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[c.userID]; ok {
		if _, exists := conns[c.id]; exists {
			delete(conns, c.id)
		}
		if len(conns) == 0 {
			delete(h.clients, c.userID)
		}
		c.Close()
		h.logger.Debug("notification client removed",
			zap.String("client_id", c.id),
			zap.String("user_id", c.userID),
		)
	}
}

// Push delivers a notification to every open connection of the target
// user. Users with no connection are skipped silently; the notification
// is already persisted and will be fetched on next poll.
func (h *Hub) Push(userID string, n *model.Notification) {
	h.mu.RLock()
	conns, ok := h.clients[userID]
	if !ok || len(conns) == 0 {
		h.mu.RUnlock()
		return
	}
	targets := make([]*Client, 0, len(conns))
	for _, c := range conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !c.Send(n) {
			h.logger.Warn("egress full, disconnecting notification client",
				zap.String("client_id", c.id),
				zap.String("user_id", userID),
			)
			h.unregister <- c
		}
	}
}

// ServeWS upgrades an authenticated request and registers the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	registerClient(userID, conn, h)
}

// Stop closes every connection and halts the manager loop.
func (h *Hub) Stop() {
	h.cancel()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conns := range h.clients {
		for _, c := range conns {
			c.Close()
		}
	}
}
