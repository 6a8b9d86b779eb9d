package signaling

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BioHazard786/huddle/internal/metrics"
)

//go:generate go run go.uber.org/mock/mockgen -source=router.go -destination=../mocks/mock_emitter.go -package=mocks

// DefaultMaxFileSize is the exclusive upper bound for shared files.
const DefaultMaxFileSize int64 = 10 << 20

// Emitter delivers an outbound message to one connection.
type Emitter interface {
	Emit(connID string, msg *Message)
}

// AckFunc answers a request that carried an ack id.
type AckFunc func(payload any)

// Router applies inbound events to the registry and decides who hears
// about it. It is not safe for concurrent use; the hub loop is its only caller.
type Router struct {
	registry    *Registry
	emitter     Emitter
	log         *slog.Logger
	metrics     *metrics.Metrics
	maxFileSize int64
}

func NewRouter(registry *Registry, emitter Emitter, log *slog.Logger, m *metrics.Metrics, maxFileSize int64) *Router {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Router{
		registry:    registry,
		emitter:     emitter,
		log:         log,
		metrics:     m,
		maxFileSize: maxFileSize,
	}
}

// Handle runs the handler for ev on behalf of connID. ack may be nil.
func (r *Router) Handle(connID string, ev Event, ack AckFunc) {
	r.metrics.EventReceived(ev.EventType())

	var err error
	switch e := ev.(type) {
	case JoinRoom:
		err = r.join(connID, e, ack)
	case LeaveRoom:
		err = r.leave(connID)
	case Disconnect:
		if err = r.leave(connID); errors.Is(err, ErrNotBound) {
			err = nil
		}
	case Relay:
		err = r.relay(connID, e)
	case ToggleMedia:
		err = r.toggleMedia(connID, e)
	case ScreenShare:
		err = r.screenShare(connID, e)
	case SendMessage:
		err = r.sendMessage(connID, e)
	case SendPrivateMessage:
		err = r.sendPrivateMessage(connID, e)
	case ShareFile:
		err = r.shareFile(connID, e)
	case KickParticipant:
		err = r.kick(connID, e)
	case MuteParticipant:
		err = r.mute(connID, e)
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}

	if err != nil {
		r.Drop(connID, ev.EventType(), err)
	}
}

// Drop records an event that was ignored.
func (r *Router) Drop(connID, eventType string, err error) {
	if errors.Is(err, ErrRoomFull) {
		r.log.Info("Join rejected", "conn", connID, "err", err)
		return
	}
	r.metrics.Dropped(dropReason(err))
	r.log.Debug("Event ignored", "conn", connID, "event", eventType, "err", err)
}

func (r *Router) join(connID string, ev JoinRoom, ack AckFunc) error {
	if current, ok := r.registry.LookupRoomForConnection(connID); ok {
		if room, exists := r.registry.Room(current); exists && current == ev.RoomID && room.Has(connID) {
			reply(ack, joinSucceeded(r.snapshot(room, connID)))
			return nil
		}
		// A move into a full room is refused before the old room is left.
		if next, exists := r.registry.Room(ev.RoomID); exists && next.Full() {
			reply(ack, joinFailed("Room is full"))
			return fmt.Errorf("join %s: %w", ev.RoomID, ErrRoomFull)
		}
		// One room per connection: moving rooms leaves the old one first.
		_ = r.leave(connID)
	}

	room, created := r.registry.GetOrCreateRoom(ev.RoomID, connID)
	if room.Empty() {
		room.HostID = connID
	}
	if err := room.AddParticipant(connID, ev.UserData); err != nil {
		if created {
			r.registry.EvictIfEmpty(room.ID)
		}
		reply(ack, joinFailed("Room is full"))
		return fmt.Errorf("join %s: %w", ev.RoomID, err)
	}
	if created {
		r.metrics.RoomCreated()
		r.log.Info("Room created", "room", room.ID, "host", connID)
	}
	r.metrics.ParticipantJoined()
	r.registry.Bind(connID, room.ID)

	snapshot := r.snapshot(room, connID)
	reply(ack, joinSucceeded(snapshot))
	r.emitter.Emit(connID, &Message{Type: TypeRoomJoined, Payload: snapshot})

	p, _ := room.Participant(connID)
	r.broadcast(room, &Message{
		Type:    TypeParticipantJoined,
		Payload: ParticipantJoinedPayload{Participant: *p},
	}, connID)

	r.log.Info("Participant joined", "room", room.ID, "conn", connID, "participants", room.Len())
	return nil
}

// leave is shared by leave-room, transport disconnects and kicks.
func (r *Router) leave(connID string) error {
	room, err := r.registry.RoomForConnection(connID)
	if err != nil {
		r.registry.Unbind(connID)
		return err
	}

	room.RemoveParticipant(connID)
	r.registry.Unbind(connID)
	r.metrics.ParticipantLeft()

	if r.registry.EvictIfEmpty(room.ID) {
		r.metrics.RoomEvicted("leave")
		r.log.Info("Room deleted", "room", room.ID)
		return nil
	}

	r.broadcast(room, &Message{
		Type:    TypeParticipantLeft,
		Payload: ParticipantLeftPayload{ParticipantID: connID},
	})
	if hostID, ok := room.ReassignHostIfNeeded(connID); ok {
		r.log.Info("Host reassigned", "room", room.ID, "host", hostID)
		r.broadcast(room, &Message{Type: TypeNewHost, Payload: NewHostPayload{HostID: hostID}})
	}

	r.log.Info("Participant left", "room", room.ID, "conn", connID, "participants", room.Len())
	return nil
}

func (r *Router) relay(connID string, ev Relay) error {
	room, err := r.registry.RoomForConnection(connID)
	if err != nil {
		return err
	}
	if !room.Has(ev.TargetID) {
		return fmt.Errorf("%s to %s: %w", ev.Kind, ev.TargetID, ErrTargetNotInRoom)
	}

	payload := RelayPayload{FromID: connID}
	switch ev.Kind {
	case RelayOffer:
		payload.Offer = ev.Payload
	case RelayAnswer:
		payload.Answer = ev.Payload
	case RelayCandidate:
		payload.Candidate = ev.Payload
	}
	r.emitter.Emit(ev.TargetID, &Message{Type: string(ev.Kind), Payload: payload})
	r.metrics.Relayed(string(ev.Kind))
	return nil
}

func (r *Router) toggleMedia(connID string, ev ToggleMedia) error {
	room, _, err := r.participant(connID)
	if err != nil {
		return err
	}

	msgType := TypeVideoToggled
	if ev.Media == MediaAudio {
		room.SetAudio(connID, ev.Enabled)
		msgType = TypeAudioToggled
	} else {
		room.SetVideo(connID, ev.Enabled)
	}
	r.broadcast(room, &Message{
		Type:    msgType,
		Payload: MediaToggledPayload{ParticipantID: connID, Enabled: ev.Enabled},
	}, connID)
	return nil
}

func (r *Router) screenShare(connID string, ev ScreenShare) error {
	room, _, err := r.participant(connID)
	if err != nil {
		return err
	}

	room.SetScreenSharing(connID, ev.IsSharing)
	r.broadcast(room, &Message{
		Type:    TypeScreenShareToggled,
		Payload: ScreenShareToggledPayload{ParticipantID: connID, IsSharing: ev.IsSharing},
	}, connID)
	return nil
}

func (r *Router) sendMessage(connID string, ev SendMessage) error {
	room, p, err := r.participant(connID)
	if err != nil {
		return err
	}

	entry := newEntryFrom(p)
	entry.Message = ev.Message
	if ev.Kind != "" {
		entry.Kind = ev.Kind
	}
	entry = room.AppendChatEntry(entry)
	r.broadcast(room, &Message{Type: TypeNewMessage, Payload: entry})
	return nil
}

// sendPrivateMessage reaches the sender and the target only and is not kept
// in the room history.
func (r *Router) sendPrivateMessage(connID string, ev SendPrivateMessage) error {
	room, p, err := r.participant(connID)
	if err != nil {
		return err
	}
	if !room.Has(ev.TargetID) {
		return fmt.Errorf("private message to %s: %w", ev.TargetID, ErrTargetNotInRoom)
	}

	entry := newEntryFrom(p)
	entry.Message = ev.Message
	entry.IsPrivate = true
	entry.TargetID = ev.TargetID
	entry = room.stamp(entry)

	msg := &Message{Type: TypePrivateMessage, Payload: entry}
	r.emitter.Emit(connID, msg)
	if ev.TargetID != connID {
		r.emitter.Emit(ev.TargetID, msg)
	}
	return nil
}

func (r *Router) shareFile(connID string, ev ShareFile) error {
	room, p, err := r.participant(connID)
	if err != nil {
		return err
	}
	if size := fileSize(ev); size >= r.maxFileSize {
		return fmt.Errorf("share %s (%d bytes): %w", ev.FileName, size, ErrPayloadTooLarge)
	}

	entry := newEntryFrom(p)
	entry.Kind = KindFile
	entry.Message = ev.FileName
	entry.File = &FileDescriptor{
		Name: ev.FileName,
		Data: ev.FileData,
		Type: ev.FileType,
		Size: ev.FileSize,
	}
	entry = room.AppendChatEntry(entry)
	r.broadcast(room, &Message{Type: TypeNewMessage, Payload: entry})
	return nil
}

func (r *Router) kick(connID string, ev KickParticipant) error {
	room, err := r.hostRoom(connID, ev.TargetID)
	if err != nil {
		return err
	}

	r.emitter.Emit(ev.TargetID, &Message{Type: TypeKicked, Payload: KickedPayload{RoomID: room.ID}})
	r.log.Info("Participant kicked", "room", room.ID, "host", connID, "target", ev.TargetID)
	return r.leave(ev.TargetID)
}

// mute is advisory: the target's client decides whether to honour it.
func (r *Router) mute(connID string, ev MuteParticipant) error {
	if _, err := r.hostRoom(connID, ev.TargetID); err != nil {
		return err
	}

	r.emitter.Emit(ev.TargetID, &Message{Type: TypeForceMute, Payload: ForceMutePayload{Muted: ev.Muted}})
	return nil
}

// hostRoom returns the caller's room when the caller hosts it and the
// target is another participant of it.
func (r *Router) hostRoom(connID, targetID string) (*Room, error) {
	room, err := r.registry.RoomForConnection(connID)
	if err != nil {
		return nil, err
	}
	if room.HostID != connID {
		return nil, ErrUnauthorized
	}
	if targetID == connID || !room.Has(targetID) {
		return nil, fmt.Errorf("target %s: %w", targetID, ErrTargetNotInRoom)
	}
	return room, nil
}

func (r *Router) participant(connID string) (*Room, *Participant, error) {
	room, err := r.registry.RoomForConnection(connID)
	if err != nil {
		return nil, nil, err
	}
	p, ok := room.Participant(connID)
	if !ok {
		return nil, nil, ErrNotParticipant
	}
	return room, p, nil
}

func (r *Router) snapshot(room *Room, connID string) RoomSnapshot {
	return RoomSnapshot{
		ParticipantID: connID,
		RoomID:        room.ID,
		IsHost:        room.HostID == connID,
		HostID:        room.HostID,
		Participants:  withoutParticipant(room.Participants(), connID),
		ChatHistory:   room.ChatHistory(),
		ActiveStreams: room.ActiveStreams(),
	}
}

func (r *Router) broadcast(room *Room, msg *Message, exclude ...string) {
	for _, id := range room.ParticipantIDs(exclude...) {
		r.emitter.Emit(id, msg)
	}
}

func reply(ack AckFunc, payload any) {
	if ack != nil {
		ack(payload)
	}
}

// fileSize is the larger of the declared size and the size implied by the
// base64 body, so a peer cannot understate a large upload.
func fileSize(ev ShareFile) int64 {
	implied := int64(len(ev.FileData)) * 3 / 4
	return max(ev.FileSize, implied)
}

func withoutParticipant(ps []Participant, id string) []Participant {
	out := make([]Participant, 0, len(ps))
	for _, p := range ps {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
