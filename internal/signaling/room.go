package signaling

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// DefaultMaxParticipants is the capacity given to rooms when none is configured.
const DefaultMaxParticipants = 100

// RoomOptions are applied to every room the registry creates.
type RoomOptions struct {
	MaxParticipants  int
	ChatHistoryLimit int
}

func (o RoomOptions) withDefaults() RoomOptions {
	if o.MaxParticipants <= 0 {
		o.MaxParticipants = DefaultMaxParticipants
	}
	if o.ChatHistoryLimit <= 0 {
		o.ChatHistoryLimit = DefaultChatHistoryLimit
	}
	return o
}

// Room is a named group of participants sharing chat and screen-share state.
// It is a plain state container: it is not safe for concurrent use and is
// only ever touched from the hub loop.
type Room struct {
	ID              string
	HostID          string
	CreatedAt       time.Time
	MaxParticipants int

	participants  map[string]*Participant
	chatHistory   []ChatEntry
	historyLimit  int
	activeStreams map[string]struct{}
	now           func() time.Time
}

func newRoom(id, hostID string, opts RoomOptions, now func() time.Time) *Room {
	opts = opts.withDefaults()
	return &Room{
		ID:              id,
		HostID:          hostID,
		CreatedAt:       now(),
		MaxParticipants: opts.MaxParticipants,
		participants:    make(map[string]*Participant),
		historyLimit:    opts.ChatHistoryLimit,
		activeStreams:   make(map[string]struct{}),
		now:             now,
	}
}

// AddParticipant inserts a participant for connID, or fails with ErrRoomFull.
func (r *Room) AddParticipant(connID string, user UserData) error {
	if r.Full() {
		return ErrRoomFull
	}
	r.participants[connID] = &Participant{
		ID:       connID,
		Name:     user.Name,
		Avatar:   user.Avatar,
		JoinedAt: r.now(),
		IsHost:   connID == r.HostID,
	}
	return nil
}

// RemoveParticipant deletes connID from the room and its active streams.
func (r *Room) RemoveParticipant(connID string) {
	delete(r.participants, connID)
	delete(r.activeStreams, connID)
}

// Participant returns the live participant for connID.
func (r *Room) Participant(connID string) (*Participant, bool) {
	p, ok := r.participants[connID]
	return p, ok
}

func (r *Room) Has(connID string) bool {
	_, ok := r.participants[connID]
	return ok
}

func (r *Room) Len() int {
	return len(r.participants)
}

func (r *Room) Full() bool {
	return len(r.participants) >= r.MaxParticipants
}

func (r *Room) Empty() bool {
	return len(r.participants) == 0
}

// AppendChatEntry stamps entry with an id and timestamp and appends it,
// dropping the oldest entries beyond the history limit.
func (r *Room) AppendChatEntry(entry ChatEntry) ChatEntry {
	entry = r.stamp(entry)
	r.chatHistory = append(r.chatHistory, entry)
	if over := len(r.chatHistory) - r.historyLimit; over > 0 {
		r.chatHistory = slices.Delete(r.chatHistory, 0, over)
	}
	return entry
}

// stamp gives an entry its identity without storing it.
func (r *Room) stamp(entry ChatEntry) ChatEntry {
	entry.ID = uuid.NewString()
	entry.Timestamp = r.now()
	if entry.Kind == "" {
		entry.Kind = KindText
	}
	return entry
}

// ReassignHostIfNeeded hands the host role to the longest-present remaining
// participant when departedID was the host. It reports the new host id.
func (r *Room) ReassignHostIfNeeded(departedID string) (string, bool) {
	if departedID != r.HostID || len(r.participants) == 0 {
		return "", false
	}
	if _, stillHere := r.participants[departedID]; stillHere {
		return "", false
	}

	next := slices.MinFunc(lo.Values(r.participants), byJoinOrder)
	r.HostID = next.ID
	next.IsHost = true
	return next.ID, true
}

func (r *Room) SetVideo(connID string, enabled bool) bool {
	p, ok := r.participants[connID]
	if ok {
		p.HasVideo = enabled
	}
	return ok
}

func (r *Room) SetAudio(connID string, enabled bool) bool {
	p, ok := r.participants[connID]
	if ok {
		p.HasAudio = enabled
	}
	return ok
}

// SetScreenSharing keeps the participant flag and the active stream set in step.
func (r *Room) SetScreenSharing(connID string, sharing bool) bool {
	p, ok := r.participants[connID]
	if !ok {
		return false
	}
	p.IsScreenSharing = sharing
	if sharing {
		r.activeStreams[connID] = struct{}{}
	} else {
		delete(r.activeStreams, connID)
	}
	return true
}

// Participants returns copies of all participants in join order.
func (r *Room) Participants() []Participant {
	ps := lo.Map(lo.Values(r.participants), func(p *Participant, _ int) Participant {
		return *p
	})
	slices.SortFunc(ps, func(a, b Participant) int { return byJoinOrder(&a, &b) })
	return ps
}

// ParticipantIDs returns the ids of all participants except the excluded ones.
func (r *Room) ParticipantIDs(exclude ...string) []string {
	ids := lo.Without(lo.Keys(r.participants), exclude...)
	slices.Sort(ids)
	return ids
}

func (r *Room) ChatHistory() []ChatEntry {
	return slices.Clone(r.chatHistory)
}

func (r *Room) ActiveStreams() []string {
	ids := lo.Keys(r.activeStreams)
	slices.Sort(ids)
	return ids
}

func byJoinOrder(a, b *Participant) int {
	if c := a.JoinedAt.Compare(b.JoinedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
