// Package client talks to a huddle server: a websocket peer for rooms and
// a small HTTP client for the read-only API.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/BioHazard786/huddle/internal/signaling"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMessageSize   = 16 << 20
	handshakeTimeout = 10 * time.Second
)

var (
	ErrClosed       = errors.New("client: connection closed")
	ErrJoinRejected = errors.New("client: join rejected")
)

// Peer is one websocket connection to the signaling server.
type Peer struct {
	conn  *websocket.Conn
	codec signaling.Codec
	log   *slog.Logger

	outgoing chan *signaling.Message
	incoming chan signaling.Inbound

	ackSeq  atomic.Uint64
	mu      sync.Mutex
	pending map[uint64]chan signaling.Inbound

	// done is closed by Close; dead once the read pump has exited.
	done      chan struct{}
	dead      chan struct{}
	closeOnce sync.Once
}

// WebSocketURL derives the /ws endpoint from a server base URL.
func WebSocketURL(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("invalid server URL %q: unsupported scheme", server)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	return u.String(), nil
}

// Dial connects to server, negotiating subprotocol. An empty subprotocol
// asks for JSON.
func Dial(ctx context.Context, server, subprotocol string, log *slog.Logger) (*Peer, error) {
	if subprotocol == "" {
		subprotocol = signaling.SubprotocolJSON
	}
	if log == nil {
		log = slog.Default()
	}
	wsURL, err := WebSocketURL(server)
	if err != nil {
		return nil, err
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
		Subprotocols:     []string{subprotocol},
	}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	codec, err := signaling.CodecFor(conn.Subprotocol())
	if err != nil {
		conn.Close()
		return nil, err
	}

	p := &Peer{
		conn:     conn,
		codec:    codec,
		log:      log,
		outgoing: make(chan *signaling.Message, 16),
		incoming: make(chan signaling.Inbound, 64),
		pending:  make(map[uint64]chan signaling.Inbound),
		done:     make(chan struct{}),
		dead:     make(chan struct{}),
	}
	conn.SetReadLimit(maxMessageSize)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go p.readPump()
	go p.writePump()
	return p, nil
}

// Subprotocol is the codec the server agreed to.
func (p *Peer) Subprotocol() string {
	return p.codec.Subprotocol()
}

// Incoming yields every server event that is not an ack. It is closed
// when the connection ends.
func (p *Peer) Incoming() <-chan signaling.Inbound {
	return p.incoming
}

// Done is closed once the connection has ended.
func (p *Peer) Done() <-chan struct{} {
	return p.dead
}

func (p *Peer) readPump() {
	defer func() {
		p.conn.Close()
		close(p.incoming)
		close(p.dead)
	}()

	p.conn.SetReadDeadline(time.Now().Add(pongWait))

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				p.log.Debug("Connection lost", "err", err)
			}
			return
		}

		in, err := p.codec.Decode(data)
		if err != nil {
			p.log.Debug("Dropping undecodable frame", "err", err)
			continue
		}
		if in.Type == signaling.TypeAck && in.AckID != nil && p.resolve(*in.AckID, in) {
			continue
		}

		select {
		case p.incoming <- in:
		case <-p.done:
			return
		}
	}
}

func (p *Peer) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg := <-p.outgoing:
			data, err := p.codec.Encode(msg)
			if err != nil {
				p.log.Debug("Failed to encode message", "type", msg.Type, "err", err)
				continue
			}
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(p.codec.FrameType(), data); err != nil {
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-p.done:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			p.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case <-p.dead:
			return
		}
	}
}

// Send queues an event without waiting for an answer.
func (p *Peer) Send(ctx context.Context, eventType string, payload any) error {
	return p.enqueue(ctx, &signaling.Message{Type: eventType, Payload: payload})
}

// Request sends an event with a fresh ack id and decodes the ack into reply.
func (p *Peer) Request(ctx context.Context, eventType string, payload, reply any) error {
	id := p.ackSeq.Add(1)
	ch := make(chan signaling.Inbound, 1)
	p.mu.Lock()
	p.pending[id] = ch
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		delete(p.pending, id)
		p.mu.Unlock()
	}()

	if err := p.enqueue(ctx, &signaling.Message{Type: eventType, AckID: &id, Payload: payload}); err != nil {
		return err
	}

	select {
	case in := <-ch:
		if err := in.Bind(reply); err != nil {
			return fmt.Errorf("decode %s ack: %w", eventType, err)
		}
		return nil
	case <-p.dead:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Peer) enqueue(ctx context.Context, msg *signaling.Message) error {
	select {
	case <-p.done:
		return ErrClosed
	case <-p.dead:
		return ErrClosed
	default:
	}
	select {
	case p.outgoing <- msg:
		return nil
	case <-p.done:
		return ErrClosed
	case <-p.dead:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Peer) resolve(id uint64, in signaling.Inbound) bool {
	p.mu.Lock()
	ch, ok := p.pending[id]
	p.mu.Unlock()
	if ok {
		select {
		case ch <- in:
		default:
		}
	}
	return ok
}

// Close ends the connection with a normal close frame.
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}
