package signaling

import (
	"time"
)

// RoomInfo is the read-only view of a room exposed over HTTP.
type RoomInfo struct {
	ID               string    `json:"id"`
	ParticipantCount int       `json:"participantCount"`
	MaxParticipants  int       `json:"maxParticipants"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Stats summarises the registry.
type Stats struct {
	TotalRooms        int `json:"totalRooms"`
	TotalParticipants int `json:"totalParticipants"`
}

// Registry maps room ids to rooms and connection ids to the room they are in.
//
// State lives in process memory only. Every process owns its own registry, so
// two peers connected to different processes can never meet in a room.
// Like Room, a Registry is owned by the hub loop and is not locked.
type Registry struct {
	rooms     map[string]*Room
	connRooms map[string]string
	opts      RoomOptions
	now       func() time.Time
}

func NewRegistry(opts RoomOptions) *Registry {
	return &Registry{
		rooms:     make(map[string]*Room),
		connRooms: make(map[string]string),
		opts:      opts.withDefaults(),
		now:       time.Now,
	}
}

// GetOrCreateRoom returns the room with roomID, creating it with connID as
// host when it does not exist. The first join wins the host role.
func (g *Registry) GetOrCreateRoom(roomID, connID string) (*Room, bool) {
	if room, ok := g.rooms[roomID]; ok {
		return room, false
	}
	room := newRoom(roomID, connID, g.opts, g.now)
	g.rooms[roomID] = room
	return room, true
}

func (g *Registry) Room(roomID string) (*Room, bool) {
	room, ok := g.rooms[roomID]
	return room, ok
}

func (g *Registry) LookupRoomForConnection(connID string) (string, bool) {
	roomID, ok := g.connRooms[connID]
	return roomID, ok
}

// RoomForConnection resolves the room a connection is bound to.
func (g *Registry) RoomForConnection(connID string) (*Room, error) {
	roomID, ok := g.connRooms[connID]
	if !ok {
		return nil, ErrNotBound
	}
	room, ok := g.rooms[roomID]
	if !ok {
		return nil, ErrNotBound
	}
	return room, nil
}

func (g *Registry) Bind(connID, roomID string) {
	g.connRooms[connID] = roomID
}

func (g *Registry) Unbind(connID string) {
	delete(g.connRooms, connID)
}

// EvictIfEmpty removes the room when nobody is left in it.
func (g *Registry) EvictIfEmpty(roomID string) bool {
	room, ok := g.rooms[roomID]
	if !ok || !room.Empty() {
		return false
	}
	delete(g.rooms, roomID)
	return true
}

// SweepEmptyRooms evicts every empty room and returns their ids.
func (g *Registry) SweepEmptyRooms() []string {
	var evicted []string
	for id, room := range g.rooms {
		if room.Empty() {
			delete(g.rooms, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

func (g *Registry) Info(roomID string) (RoomInfo, bool) {
	room, ok := g.rooms[roomID]
	if !ok {
		return RoomInfo{}, false
	}
	return RoomInfo{
		ID:               room.ID,
		ParticipantCount: room.Len(),
		MaxParticipants:  room.MaxParticipants,
		CreatedAt:        room.CreatedAt,
	}, true
}

func (g *Registry) Stats() Stats {
	stats := Stats{TotalRooms: len(g.rooms)}
	for _, room := range g.rooms {
		stats.TotalParticipants += room.Len()
	}
	return stats
}
