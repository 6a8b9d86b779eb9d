package signaling

import (
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	defaultWriteWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	defaultPongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	defaultPingInterval = 25 * time.Second

	// Maximum message size allowed from peer. Large enough for inline files.
	defaultMaxMessageSize = 16 << 20

	defaultSendBuffer = 256
)

// ClientOptions tune a single connection. Zero values take the defaults.
type ClientOptions struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	SendBuffer     int
}

func (o ClientOptions) withDefaults() ClientOptions {
	if o.WriteWait <= 0 {
		o.WriteWait = defaultWriteWait
	}
	if o.PongWait <= 0 {
		o.PongWait = defaultPongWait
	}
	if o.PingInterval <= 0 || o.PingInterval >= o.PongWait {
		o.PingInterval = min(defaultPingInterval, (o.PongWait*9)/10)
	}
	if o.MaxMessageSize <= 0 {
		o.MaxMessageSize = defaultMaxMessageSize
	}
	if o.SendBuffer <= 0 {
		o.SendBuffer = defaultSendBuffer
	}
	return o
}

// Client is one websocket connection. Its ID doubles as the participant id
// once it joins a room.
type Client struct {
	ID string

	hub   *Hub
	conn  *websocket.Conn
	codec Codec
	opts  ClientOptions
	log   *slog.Logger

	// send is written only by the hub, which also closes it.
	send chan *Message
}

func NewClient(hub *Hub, conn *websocket.Conn, codec Codec, opts ClientOptions) *Client {
	opts = opts.withDefaults()
	id := uuid.NewString()
	return &Client{
		ID:    id,
		hub:   hub,
		conn:  conn,
		codec: codec,
		opts:  opts,
		log:   hub.log.With("conn", id),
		send:  make(chan *Message, opts.SendBuffer),
	}
}

func (c *Client) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Serve registers the client and runs its pumps. It returns once the
// connection is registered; the pumps outlive the call.
func (c *Client) Serve() error {
	if err := c.hub.Register(c); err != nil {
		c.conn.Close()
		return err
	}
	c.log.Debug("Connection opened", "remote", c.RemoteAddr(), "codec", c.codec.Subprotocol())
	go c.WritePump()
	go c.ReadPump()
	return nil
}

// ReadPump decodes frames from the websocket and hands them to the hub.
//
// The application runs ReadPump in a per-connection goroutine. The application
// ensures that there is at most one reader on a connection by executing all
// reads from this goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.disconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.opts.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.Warn("Connection closed unexpectedly", "err", err)
			}
			return
		}

		in := inboundEvent{client: c}
		frame, err := c.codec.Decode(data)
		if err != nil {
			in.eventType, in.err = "malformed", err
		} else {
			in.eventType, in.ackID = frame.Type, frame.AckID
			in.event, in.err = c.hub.decoder.Decode(frame)
		}

		if !c.hub.submit(in) {
			return
		}
	}
}

// WritePump encodes messages from the hub onto the websocket.
//
// A goroutine running WritePump is started for each connection. The
// application ensures that there is at most one writer to a connection by
// executing all writes from this goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			data, err := c.codec.Encode(msg)
			if err != nil {
				c.log.Error("Failed to encode message", "type", msg.Type, "err", err)
				continue
			}
			if err := c.conn.WriteMessage(c.codec.FrameType(), data); err != nil {
				c.log.Debug("Write failed", "err", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
