package signaling

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/BioHazard786/huddle/internal/metrics"
)

type sent struct {
	to  string
	msg *Message
}

// recorder is an Emitter that keeps everything it was asked to deliver.
type recorder struct {
	sent []sent
}

func (r *recorder) Emit(connID string, msg *Message) {
	r.sent = append(r.sent, sent{to: connID, msg: msg})
}

func (r *recorder) to(connID string) []*Message {
	var out []*Message
	for _, s := range r.sent {
		if s.to == connID {
			out = append(out, s.msg)
		}
	}
	return out
}

func (r *recorder) ofType(msgType string) []sent {
	var out []sent
	for _, s := range r.sent {
		if s.msg.Type == msgType {
			out = append(out, s)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.sent = nil
}

type routerFixture struct {
	router   *Router
	registry *Registry
	emitted  *recorder
	acks     map[string][]JoinAck
}

func newRouterFixture(t *testing.T, opts RoomOptions, maxFileSize int64) *routerFixture {
	t.Helper()
	reg := newTestRegistry(opts)
	rec := &recorder{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	return &routerFixture{
		router:   NewRouter(reg, rec, log, m, maxFileSize),
		registry: reg,
		emitted:  rec,
		acks:     make(map[string][]JoinAck),
	}
}

func (f *routerFixture) join(connID, roomID, name string) JoinAck {
	f.router.Handle(connID, JoinRoom{RoomID: roomID, UserData: UserData{Name: name}}, func(payload any) {
		f.acks[connID] = append(f.acks[connID], payload.(JoinAck))
	})
	acks := f.acks[connID]
	return acks[len(acks)-1]
}

func TestRouter_JoinCreatesRoomWithHost(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 0)

	ack := f.join("A", "r1", "Ann")

	req.True(ack.Success)
	req.True(ack.IsHost)
	req.Equal("A", ack.ParticipantID)
	req.Equal("r1", ack.RoomID)
	req.Equal("A", ack.HostID)
	req.Empty(ack.Participants)
	req.Empty(ack.ChatHistory)
	req.Empty(ack.ActiveStreams)

	msgs := f.emitted.to("A")
	req.Len(msgs, 1)
	req.Equal(TypeRoomJoined, msgs[0].Type)
	snapshot := msgs[0].Payload.(RoomSnapshot)
	req.True(snapshot.IsHost)
	req.Equal("A", snapshot.ParticipantID)

	info, ok := f.registry.Info("r1")
	req.True(ok)
	req.Equal(1, info.ParticipantCount)
}

func TestRouter_SecondJoinNotifiesOthers(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "Ann")
	f.emitted.reset()

	ack := f.join("B", "r1", "Bob")

	req.True(ack.Success)
	req.False(ack.IsHost)
	req.Equal("A", ack.HostID)
	req.Len(ack.Participants, 1)
	req.Equal("A", ack.Participants[0].ID)

	toA := f.emitted.to("A")
	req.Len(toA, 1)
	req.Equal(TypeParticipantJoined, toA[0].Type)
	joined := toA[0].Payload.(ParticipantJoinedPayload)
	req.Equal("B", joined.Participant.ID)
	req.Equal("Bob", joined.Participant.Name)

	toB := f.emitted.to("B")
	req.Len(toB, 1)
	req.Equal(TypeRoomJoined, toB[0].Type)
}

func TestRouter_JoinFullRoom(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{MaxParticipants: 2}, 0)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.emitted.reset()

	ack := f.join("C", "r1", "")

	req.False(ack.Success)
	req.Equal("Room is full", ack.Error)
	req.Empty(f.emitted.sent)
	_, bound := f.registry.LookupRoomForConnection("C")
	req.False(bound)
	info, _ := f.registry.Info("r1")
	req.Equal(2, info.ParticipantCount)
}

func TestRouter_JoinSameRoomTwice(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.emitted.reset()

	ack := f.join("B", "r1", "")

	req.True(ack.Success)
	req.Empty(f.emitted.sent)
	info, _ := f.registry.Info("r1")
	req.Equal(2, info.ParticipantCount)
}

func TestRouter_JoinAnotherRoomLeavesFirst(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.emitted.reset()

	ack := f.join("B", "r2", "")

	req.True(ack.Success)
	req.True(ack.IsHost)
	left := f.emitted.ofType(TypeParticipantLeft)
	req.Len(left, 1)
	req.Equal("A", left[0].to)

	roomID, _ := f.registry.LookupRoomForConnection("B")
	req.Equal("r2", roomID)
	info, _ := f.registry.Info("r1")
	req.Equal(1, info.ParticipantCount)
}

func TestRouter_MoveIntoFullRoomKeepsCurrentRoom(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{MaxParticipants: 2}, 0)
	f.join("A", "r1", "")
	f.join("B", "r2", "")
	f.join("C", "r2", "")
	f.emitted.reset()

	ack := f.join("A", "r2", "")

	req.False(ack.Success)
	req.Equal("Room is full", ack.Error)
	req.Empty(f.emitted.sent)
	roomID, bound := f.registry.LookupRoomForConnection("A")
	req.True(bound)
	req.Equal("r1", roomID)
	info, ok := f.registry.Info("r1")
	req.True(ok)
	req.Equal(1, info.ParticipantCount)
}

func TestRouter_HostLeavesAndSuccessorIsAnnounced(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.join("C", "r1", "")
	f.emitted.reset()

	f.router.Handle("A", LeaveRoom{}, nil)

	for _, id := range []string{"B", "C"} {
		msgs := f.emitted.to(id)
		req.Len(msgs, 2, id)
		req.Equal(TypeParticipantLeft, msgs[0].Type)
		req.Equal("A", msgs[0].Payload.(ParticipantLeftPayload).ParticipantID)
		req.Equal(TypeNewHost, msgs[1].Type)
		req.Equal("B", msgs[1].Payload.(NewHostPayload).HostID)
	}
	req.Empty(f.emitted.to("A"))

	room, _ := f.registry.Room("r1")
	req.Equal("B", room.HostID)
}

func TestRouter_LastLeaveEvictsRoom(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.emitted.reset()

	f.router.Handle("A", Disconnect{}, nil)

	_, ok := f.registry.Room("r1")
	req.False(ok)
	req.Empty(f.emitted.sent)

	// Rejoining the same id starts over with a new host.
	ack := f.join("B", "r1", "")
	req.True(ack.IsHost)
}

func TestRouter_DisconnectUnbound(t *testing.T) {
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.router.Handle("ghost", Disconnect{}, nil)
	require.Empty(t, f.emitted.sent)
}

func TestRouter_RelayToTarget(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.emitted.reset()

	sdp := map[string]any{"type": "offer", "sdp": "v=0"}
	f.router.Handle("A", Relay{Kind: RelayOffer, TargetID: "B", Payload: sdp}, nil)
	f.router.Handle("B", Relay{Kind: RelayAnswer, TargetID: "A", Payload: "answer"}, nil)
	f.router.Handle("A", Relay{Kind: RelayCandidate, TargetID: "B", Payload: "cand"}, nil)

	toB := f.emitted.to("B")
	req.Len(toB, 2)
	req.Equal(TypeOffer, toB[0].Type)
	req.Equal(RelayPayload{FromID: "A", Offer: sdp}, toB[0].Payload)
	req.Equal(TypeICECandidate, toB[1].Type)
	req.Equal(RelayPayload{FromID: "A", Candidate: "cand"}, toB[1].Payload)

	toA := f.emitted.to("A")
	req.Len(toA, 1)
	req.Equal(RelayPayload{FromID: "B", Answer: "answer"}, toA[0].Payload)
}

func TestRouter_RelayOutsideRoomIsDropped(t *testing.T) {
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.join("X", "r2", "")
	f.emitted.reset()

	f.router.Handle("A", Relay{Kind: RelayOffer, TargetID: "X", Payload: "o"}, nil)
	f.router.Handle("nobody", Relay{Kind: RelayOffer, TargetID: "A", Payload: "o"}, nil)

	require.Empty(t, f.emitted.sent)
}

func TestRouter_ToggleMedia(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.emitted.reset()

	f.router.Handle("A", ToggleMedia{Media: MediaVideo, Enabled: true}, nil)
	f.router.Handle("A", ToggleMedia{Media: MediaAudio, Enabled: true}, nil)

	req.Empty(f.emitted.to("A"))
	toB := f.emitted.to("B")
	req.Len(toB, 2)
	req.Equal(TypeVideoToggled, toB[0].Type)
	req.Equal(MediaToggledPayload{ParticipantID: "A", Enabled: true}, toB[0].Payload)
	req.Equal(TypeAudioToggled, toB[1].Type)

	room, _ := f.registry.Room("r1")
	a, _ := room.Participant("A")
	req.True(a.HasVideo)
	req.True(a.HasAudio)
}

func TestRouter_ScreenShareShowsInSnapshot(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.emitted.reset()

	f.router.Handle("A", ScreenShare{IsSharing: true}, nil)

	toB := f.emitted.to("B")
	req.Len(toB, 1)
	req.Equal(ScreenShareToggledPayload{ParticipantID: "A", IsSharing: true}, toB[0].Payload)

	ack := f.join("C", "r1", "")
	req.Equal([]string{"A"}, ack.ActiveStreams)

	// Leaving clears the stream.
	f.router.Handle("A", LeaveRoom{}, nil)
	ack = f.join("D", "r1", "")
	req.Empty(ack.ActiveStreams)
}

func TestRouter_SendMessageBroadcastsToEveryone(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "Ann")
	f.join("B", "r1", "Bob")
	f.emitted.reset()

	f.router.Handle("A", SendMessage{Message: "hello"}, nil)

	msgs := f.emitted.ofType(TypeNewMessage)
	req.Len(msgs, 2)
	entry := msgs[0].msg.Payload.(ChatEntry)
	req.Equal("hello", entry.Message)
	req.Equal("A", entry.SenderID)
	req.Equal("Ann", entry.SenderName)
	req.Equal(KindText, entry.Kind)
	req.False(entry.IsPrivate)
	req.NotEmpty(entry.ID)

	ack := f.join("C", "r1", "")
	req.Len(ack.ChatHistory, 1)
	req.Equal(entry.ID, ack.ChatHistory[0].ID)
}

func TestRouter_PrivateMessage(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.join("C", "r1", "")
	f.emitted.reset()

	f.router.Handle("A", SendPrivateMessage{TargetID: "B", Message: "psst"}, nil)

	pms := f.emitted.ofType(TypePrivateMessage)
	req.Len(pms, 2)
	req.ElementsMatch([]string{"A", "B"}, []string{pms[0].to, pms[1].to})
	entry := pms[0].msg.Payload.(ChatEntry)
	req.True(entry.IsPrivate)
	req.Equal("B", entry.TargetID)
	req.Empty(f.emitted.to("C"))

	room, _ := f.registry.Room("r1")
	req.Empty(room.ChatHistory())
}

func TestRouter_PrivateMessageToSelf(t *testing.T) {
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.emitted.reset()

	f.router.Handle("A", SendPrivateMessage{TargetID: "A", Message: "note"}, nil)

	require.Len(t, f.emitted.to("A"), 1)
}

func TestRouter_ShareFile(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 100)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.emitted.reset()

	f.router.Handle("A", ShareFile{FileName: "a.txt", FileData: "aGVsbG8=", FileType: "text/plain", FileSize: 5}, nil)

	msgs := f.emitted.ofType(TypeNewMessage)
	req.Len(msgs, 2)
	entry := msgs[0].msg.Payload.(ChatEntry)
	req.Equal(KindFile, entry.Kind)
	req.Equal(&FileDescriptor{Name: "a.txt", Data: "aGVsbG8=", Type: "text/plain", Size: 5}, entry.File)
}

func TestRouter_ShareFileTooLarge(t *testing.T) {
	f := newRouterFixture(t, RoomOptions{}, 100)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.emitted.reset()

	// Declared size at the limit.
	f.router.Handle("A", ShareFile{FileName: "big", FileData: "AA==", FileSize: 100}, nil)
	// Understated size with a body over the limit.
	f.router.Handle("A", ShareFile{FileName: "big", FileData: strings.Repeat("A", 200), FileSize: 1}, nil)

	require.Empty(t, f.emitted.sent)
	room, _ := f.registry.Room("r1")
	require.Empty(t, room.ChatHistory())
}

func TestRouter_KickByHost(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.join("C", "r1", "")
	f.emitted.reset()

	f.router.Handle("A", KickParticipant{TargetID: "B"}, nil)

	toB := f.emitted.to("B")
	req.Len(toB, 1)
	req.Equal(TypeKicked, toB[0].Type)
	req.Equal(KickedPayload{RoomID: "r1"}, toB[0].Payload)

	for _, id := range []string{"A", "C"} {
		msgs := f.emitted.to(id)
		req.Len(msgs, 1)
		req.Equal(TypeParticipantLeft, msgs[0].Type)
	}
	_, bound := f.registry.LookupRoomForConnection("B")
	req.False(bound)
}

func TestRouter_KickByNonHostIsIgnored(t *testing.T) {
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.emitted.reset()

	f.router.Handle("B", KickParticipant{TargetID: "A"}, nil)
	f.router.Handle("A", KickParticipant{TargetID: "A"}, nil)
	f.router.Handle("A", KickParticipant{TargetID: "ghost"}, nil)

	require.Empty(t, f.emitted.sent)
	room, _ := f.registry.Room("r1")
	require.Equal(t, 2, room.Len())
}

func TestRouter_MuteByHost(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.emitted.reset()

	f.router.Handle("B", MuteParticipant{TargetID: "A", Muted: true}, nil)
	req.Empty(f.emitted.sent)

	f.router.Handle("A", MuteParticipant{TargetID: "B", Muted: true}, nil)
	req.Len(f.emitted.sent, 1)
	req.Equal("B", f.emitted.sent[0].to)
	req.Equal(TypeForceMute, f.emitted.sent[0].msg.Type)
	req.Equal(ForceMutePayload{Muted: true}, f.emitted.sent[0].msg.Payload)
}

func TestRouter_MuteOfSelfOrOutsiderIsIgnored(t *testing.T) {
	f := newRouterFixture(t, RoomOptions{}, 0)
	f.join("A", "r1", "")
	f.join("B", "r1", "")
	f.join("C", "r2", "")
	f.emitted.reset()

	f.router.Handle("A", MuteParticipant{TargetID: "A", Muted: true}, nil)
	f.router.Handle("A", MuteParticipant{TargetID: "ghost", Muted: true}, nil)
	f.router.Handle("A", MuteParticipant{TargetID: "C", Muted: true}, nil)

	require.Empty(t, f.emitted.sent)
}

func TestRouter_EventsBeforeJoinAreIgnored(t *testing.T) {
	f := newRouterFixture(t, RoomOptions{}, 0)

	for _, ev := range []Event{
		LeaveRoom{},
		ToggleMedia{Media: MediaVideo, Enabled: true},
		ScreenShare{IsSharing: true},
		SendMessage{Message: "hi"},
		SendPrivateMessage{TargetID: "B", Message: "hi"},
		ShareFile{FileName: "a", FileData: "AA=="},
		KickParticipant{TargetID: "B"},
		MuteParticipant{TargetID: "B"},
	} {
		f.router.Handle("A", ev, nil)
	}

	require.Empty(t, f.emitted.sent)
}
