package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/BioHazard786/huddle/internal/signaling"
)

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  64 * 1024,
		WriteBufferSize: 64 * 1024,
		Subprotocols:    signaling.Subprotocols(),
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// Non-browser peers send no Origin header.
			return origin == "" || s.origins.Allows(origin)
		},
	}
}

// ServeWs upgrades the request and hands the connection to the hub. The
// codec is picked from the negotiated subprotocol.
func (s *Server) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the peer.
		s.log.Debug("Failed to upgrade connection", "remote", r.RemoteAddr, "err", err)
		return
	}

	codec, err := signaling.CodecFor(conn.Subprotocol())
	if err != nil {
		s.log.Warn("Negotiated unknown subprotocol", "subprotocol", conn.Subprotocol())
		conn.Close()
		return
	}

	client := signaling.NewClient(s.hub, conn, codec, s.opts.Client)
	if err := client.Serve(); err != nil {
		s.log.Debug("Connection refused", "remote", r.RemoteAddr, "err", err)
	}
}
