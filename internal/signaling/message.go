package signaling

// Inbound event types (client to server).
const (
	TypeJoinRoom           = "join-room"
	TypeLeaveRoom          = "leave-room"
	TypeOffer              = "offer"
	TypeAnswer             = "answer"
	TypeICECandidate       = "ice-candidate"
	TypeToggleVideo        = "toggle-video"
	TypeToggleAudio        = "toggle-audio"
	TypeScreenShare        = "screen-share"
	TypeSendMessage        = "send-message"
	TypeSendPrivateMessage = "send-private-message"
	TypeShareFile          = "share-file"
	TypeKickParticipant    = "kick-participant"
	TypeMuteParticipant    = "mute-participant"

	// TypeDisconnect is raised by the transport, never sent by a peer.
	TypeDisconnect = "disconnect"
)

// Outbound event types (server to client).
const (
	TypeAck                = "ack"
	TypeRoomJoined         = "room-joined"
	TypeParticipantJoined  = "participant-joined"
	TypeParticipantLeft    = "participant-left"
	TypeNewHost            = "new-host"
	TypeVideoToggled       = "participant-video-toggled"
	TypeAudioToggled       = "participant-audio-toggled"
	TypeScreenShareToggled = "participant-screen-share"
	TypeNewMessage         = "new-message"
	TypePrivateMessage     = "private-message"
	TypeKicked             = "kicked"
	TypeForceMute          = "force-mute"
)

// Message is the envelope for every frame written to a peer.
type Message struct {
	Type    string  `json:"type"`
	AckID   *uint64 `json:"ackId,omitempty"`
	Payload any     `json:"payload,omitempty"`
}

// Inbound is a frame read from a peer whose payload is still encoded.
type Inbound struct {
	Type    string
	AckID   *uint64
	payload []byte
	codec   Codec
}

// Bind decodes the payload into v with the codec the frame arrived in.
// An absent payload leaves v untouched.
func (in Inbound) Bind(v any) error {
	if len(in.payload) == 0 || in.codec == nil {
		return nil
	}
	return in.codec.Unmarshal(in.payload, v)
}

// JoinAck acknowledges a join-room request. On success it repeats the
// room snapshot so callers that only watch acks still get it.
type JoinAck struct {
	Success       bool          `json:"success"`
	Error         string        `json:"error,omitempty"`
	ParticipantID string        `json:"participantId,omitempty"`
	RoomID        string        `json:"roomId,omitempty"`
	IsHost        bool          `json:"isHost"`
	HostID        string        `json:"hostId,omitempty"`
	Participants  []Participant `json:"participants"`
	ChatHistory   []ChatEntry   `json:"chatHistory,omitempty"`
	ActiveStreams []string      `json:"activeStreams,omitempty"`
}

func joinFailed(reason string) JoinAck {
	return JoinAck{Success: false, Error: reason}
}

func joinSucceeded(s RoomSnapshot) JoinAck {
	return JoinAck{
		Success:       true,
		ParticipantID: s.ParticipantID,
		RoomID:        s.RoomID,
		IsHost:        s.IsHost,
		HostID:        s.HostID,
		Participants:  s.Participants,
		ChatHistory:   s.ChatHistory,
		ActiveStreams: s.ActiveStreams,
	}
}

// RoomSnapshot is what a joining peer learns about the room. ParticipantID
// is the joiner's own id, which Participants leaves out.
type RoomSnapshot struct {
	ParticipantID string        `json:"participantId"`
	RoomID        string        `json:"roomId"`
	IsHost        bool          `json:"isHost"`
	HostID        string        `json:"hostId"`
	Participants  []Participant `json:"participants"`
	ChatHistory   []ChatEntry   `json:"chatHistory"`
	ActiveStreams []string      `json:"activeStreams"`
}

type ParticipantJoinedPayload struct {
	Participant Participant `json:"participant"`
}

type ParticipantLeftPayload struct {
	ParticipantID string `json:"participantId"`
}

type NewHostPayload struct {
	HostID string `json:"hostId"`
}

// RelayPayload carries an opaque session description or candidate.
// Exactly one of Offer, Answer and Candidate is set.
type RelayPayload struct {
	FromID    string `json:"fromId"`
	Offer     any    `json:"offer,omitempty"`
	Answer    any    `json:"answer,omitempty"`
	Candidate any    `json:"candidate,omitempty"`
}

type MediaToggledPayload struct {
	ParticipantID string `json:"participantId"`
	Enabled       bool   `json:"enabled"`
}

type ScreenShareToggledPayload struct {
	ParticipantID string `json:"participantId"`
	IsSharing     bool   `json:"isSharing"`
}

type KickedPayload struct {
	RoomID string `json:"roomId"`
}

type ForceMutePayload struct {
	Muted bool `json:"muted"`
}
