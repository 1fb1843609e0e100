// Package feed serves the detection wire protocol over WebSocket. It stands
// in for the detection backend during development and in tests.
package feed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/jarvishud/internal/logger"
)

const (
	writeWait  = 5 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// Broadcaster fans published messages out to every connected client.
// Slow clients drop messages rather than block the publisher.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

// NewBroadcaster creates an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[*client]struct{})}
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("feed", "websocket upgrade error: %v", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		conn.Close()
		return
	}
	b.clients[c] = struct{}{}
	count := len(b.clients)
	b.mu.Unlock()
	logger.Info("feed", "client %s connected (%d total)", r.RemoteAddr, count)

	go c.writeLoop()

	// Inbound messages are ignored; reading keeps control frames flowing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	b.remove(c)
	<-c.done
	conn.Close()
	logger.Info("feed", "client %s disconnected", r.RemoteAddr)
}

func (c *client) writeLoop() {
	defer close(c.done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (b *Broadcaster) remove(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.send)
	}
}

// Publish encodes msg as JSON and queues it for every client.
func (b *Broadcaster) Publish(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	b.PublishRaw(data)
	return nil
}

// PublishRaw queues an already encoded payload for every client.
func (b *Broadcaster) PublishRaw(data []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for c := range b.clients {
		select {
		case c.send <- data:
		default:
			logger.Debug("feed", "client too slow, dropping message")
		}
	}
}

// Clients returns the number of connected clients.
func (b *Broadcaster) Clients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Close sends a close frame to every client and refuses new ones.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for c := range b.clients {
		delete(b.clients, c)
		close(c.send)
	}
}
