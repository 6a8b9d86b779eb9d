package signaling

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BioHazard786/huddle/internal/metrics"
)

// HubOptions configures the hub and the rooms it creates.
type HubOptions struct {
	Rooms       RoomOptions
	MaxFileSize int64
}

type inboundEvent struct {
	client    *Client
	eventType string
	event     Event
	ackID     *uint64
	err       error
}

type task struct {
	fn   func(*Registry)
	done chan struct{}
}

// Hub is the single owner of all room state. Connections, HTTP handlers and
// the sweeper reach the registry only through its channels, so every
// mutation runs on the goroutine executing Run.
type Hub struct {
	clients  map[string]*Client
	registry *Registry
	router   *Router
	decoder  *EventDecoder
	log      *slog.Logger
	metrics  *metrics.Metrics

	register chan *Client
	tasks    chan task

	// inbound carries decoded frames and, last, the disconnect of each
	// connection, so a connection's events are handled in the order it sent them.
	inbound chan inboundEvent

	// slow holds clients dropped for a full send buffer during the current
	// dispatch. They are disconnected once the dispatch finishes.
	slow []string

	done chan struct{}
}

func NewHub(opts HubOptions, log *slog.Logger, m *metrics.Metrics) *Hub {
	h := &Hub{
		clients:  make(map[string]*Client),
		registry: NewRegistry(opts.Rooms),
		decoder:  NewEventDecoder(),
		log:      log,
		metrics:  m,
		register: make(chan *Client),
		inbound:  make(chan inboundEvent, 256),
		tasks:    make(chan task),
		done:     make(chan struct{}),
	}
	h.router = NewRouter(h.registry, h, log, m, opts.MaxFileSize)
	return h
}

// Run processes hub traffic until ctx is cancelled. All open connections
// are closed on the way out.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for id, c := range h.clients {
				close(c.send)
				delete(h.clients, id)
			}
			h.log.Info("Hub stopped")
			return

		case c := <-h.register:
			h.clients[c.ID] = c
			h.metrics.ConnectionOpened()
			h.log.Debug("Client registered", "conn", c.ID)

		case in := <-h.inbound:
			// A slow client has already been removed and disconnected.
			if h.clients[in.client.ID] != in.client {
				continue
			}
			if in.eventType == TypeDisconnect {
				delete(h.clients, in.client.ID)
				close(in.client.send)
				h.metrics.ConnectionClosed()
				h.log.Debug("Client unregistered", "conn", in.client.ID)
			}
			h.dispatch(in.client.ID, in)

		case t := <-h.tasks:
			t.fn(h.registry)
			close(t.done)
		}

		h.disconnectSlow()
	}
}

// Do runs fn on the hub goroutine and waits for it to finish.
func (h *Hub) Do(ctx context.Context, fn func(*Registry)) error {
	t := task{fn: fn, done: make(chan struct{})}
	select {
	case h.tasks <- t:
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-t.done:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// Register admits a connection. It fails once the hub has stopped.
func (h *Hub) Register(c *Client) error {
	select {
	case h.register <- c:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// Emit queues msg for connID without blocking. A client whose buffer is
// full is dropped.
func (h *Hub) Emit(connID string, msg *Message) {
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
		h.log.Warn("Send buffer full, dropping client", "conn", connID)
		delete(h.clients, connID)
		close(c.send)
		h.metrics.ConnectionClosed()
		h.slow = append(h.slow, connID)
	}
}

func (h *Hub) dispatch(connID string, in inboundEvent) {
	var ack AckFunc
	acked := false
	if in.ackID != nil {
		id := *in.ackID
		ack = func(payload any) {
			acked = true
			h.Emit(connID, &Message{Type: TypeAck, AckID: &id, Payload: payload})
		}
	}

	defer func() {
		if r := recover(); r != nil {
			h.log.Error("Event handler panicked", "conn", connID, "event", in.eventType, "panic", fmt.Sprint(r))
			if in.eventType == TypeJoinRoom && ack != nil && !acked {
				ack(joinFailed("Failed to join room"))
			}
		}
	}()

	if in.err != nil {
		if in.eventType == TypeJoinRoom {
			reply(ack, joinFailed("Invalid join request"))
		}
		h.router.Drop(connID, in.eventType, in.err)
		return
	}
	h.router.Handle(connID, in.event, ack)
}

func (h *Hub) disconnectSlow() {
	for len(h.slow) > 0 {
		connID := h.slow[0]
		h.slow = h.slow[1:]
		h.dispatch(connID, inboundEvent{eventType: TypeDisconnect, event: Disconnect{}})
	}
}

// submit hands a decoded frame to the hub. It reports false once the hub
// has stopped.
func (h *Hub) submit(in inboundEvent) bool {
	select {
	case h.inbound <- in:
		return true
	case <-h.done:
		return false
	}
}

// disconnect queues the connection's departure behind any frames it has
// already submitted.
func (h *Hub) disconnect(c *Client) {
	h.submit(inboundEvent{client: c, eventType: TypeDisconnect, event: Disconnect{}})
}

// Stats reads the registry totals on the hub goroutine.
func (h *Hub) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := h.Do(ctx, func(reg *Registry) {
		stats = reg.Stats()
	})
	return stats, err
}

// RoomInfo looks up a single room on the hub goroutine.
func (h *Hub) RoomInfo(ctx context.Context, roomID string) (RoomInfo, bool, error) {
	var (
		info  RoomInfo
		found bool
	)
	err := h.Do(ctx, func(reg *Registry) {
		info, found = reg.Info(roomID)
	})
	return info, found, err
}
