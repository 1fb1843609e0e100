// Package channel implements the receive-only WebSocket connection between
// the HUD and the detection backend.
package channel

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/jarvishud/internal/logger"
)

// DefaultEndpoint is the backend address the HUD connects to.
const DefaultEndpoint = "ws://localhost:8000/ws"

const (
	// MaxMessageSize bounds a single inbound payload.
	MaxMessageSize = 1 << 20
	// closeGrace is how long Close waits for the close frame to be written.
	closeGrace = time.Second
	eventBuffer = 16
)

// Event is a lifecycle or message notification from the channel.
type Event interface {
	event()
}

// Opened is delivered once, first, after the handshake succeeds.
type Opened struct{}

// Received carries one inbound text or binary payload.
type Received struct {
	Data []byte
}

// Closed is delivered once, last. Err is nil for a clean close from either
// side.
type Closed struct {
	Err error
}

func (Opened) event()   {}
func (Received) event() {}
func (Closed) event()   {}

// Options tune the handshake.
type Options struct {
	HandshakeTimeout time.Duration
	Header           http.Header
}

// Channel is a single connection attempt's worth of events. It never
// reconnects and never sends application messages.
type Channel struct {
	conn      *websocket.Conn
	events    chan Event
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Dial opens the connection. A failed dial is final for the caller.
func Dial(ctx context.Context, endpoint string, opts Options) (*Channel, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: opts.HandshakeTimeout,
	}

	conn, resp, err := dialer.DialContext(ctx, endpoint, opts.Header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %d)", endpoint, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}
	conn.SetReadLimit(MaxMessageSize)

	c := &Channel{
		conn:   conn,
		events: make(chan Event, eventBuffer),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	c.events <- Opened{}

	logger.Info("channel", "connected to %s", endpoint)
	go c.readLoop()
	return c, nil
}

// Events returns the event stream. It is closed after Closed is delivered.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// Done is closed once the read loop has exited.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

func (c *Channel) readLoop() {
	defer close(c.done)
	defer close(c.events)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.deliver(Closed{Err: c.closeReason(err)})
			return
		}
		if !c.deliver(Received{Data: data}) {
			c.deliver(Closed{})
			return
		}
	}
}

// deliver hands ev to the consumer unless the channel is being closed.
func (c *Channel) deliver(ev Event) bool {
	select {
	case c.events <- ev:
		return true
	case <-c.quit:
		// Closed must still reach a consumer that is draining.
		if _, ok := ev.(Closed); ok {
			select {
			case c.events <- ev:
			default:
			}
		}
		return false
	}
}

func (c *Channel) closeReason(err error) error {
	select {
	case <-c.quit:
		return nil
	default:
	}

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil
	}
	if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		logger.Warn("channel", "unexpected close: %v", err)
	}
	return err
}

// Close releases the connection and waits for the read loop to exit. It is
// safe to call more than once and from any goroutine.
func (c *Channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.quit)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if werr := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace)); werr != nil {
			logger.Debug("channel", "close frame: %v", werr)
		}
		err = c.conn.Close()
	})
	<-c.done
	return err
}
