package hub

import (
	"context"
	"sync"
	"time"

	"CineShelf/internal/model"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	writeWait    = 10 * time.Second    // time allowed to write a message to the peer
	pongWait     = 60 * time.Second    // time allowed to read the next pong from the peer
	pingInterval = (pongWait * 9) / 10 // send pings to peer with this period
	sendBufSize  = 32                  // per-connection outbound buffer size
	sendTimeout  = 2 * time.Second     // timeout for enqueuing outbound messages
)

// Client is one websocket connection on the notification stream.
type Client struct {
	id     string
	userID string
	conn   *websocket.Conn
	hub    *Hub
	egress chan *model.Notification

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func registerClient(userID string, conn *websocket.Conn, h *Hub) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		id:     uuid.New().String(),
		userID: userID,
		conn:   conn,
		hub:    h,
		egress: make(chan *model.Notification, sendBufSize),
		ctx:    ctx,
		cancel: cancel,
	}

	h.register <- c
	go c.readLoop()
	go c.writeLoop()
	return c
}

// readLoop discards inbound frames; it exists to process control frames
// and to detect the peer going away.
func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister <- c
	}()

	c.conn.SetReadLimit(1024)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
			return
		case n := <-c.egress:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(n); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// Send enqueues a notification, reporting false when the client is gone
// or the buffer stays full past sendTimeout. The egress channel is never
// closed: the hub may still hold a reference to a client that is tearing
// down, so closing would turn a late push into a panic. A closed client
// is detected through its context instead, and the channel is left for
// the garbage collector.
func (c *Client) Send(n *model.Notification) bool {
	select {
	case <-c.ctx.Done():
		return false
	default:
	}

	select {
	case c.egress <- n:
		return true
	case <-time.After(sendTimeout):
		return false
	case <-c.ctx.Done():
		return false
	}
}

func (c *Client) Close() {
	c.once.Do(c.cancel)
}
