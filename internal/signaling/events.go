package signaling

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Event is one decoded, validated inbound event. Each event type has its
// own variant; the Router switches on the concrete type.
type Event interface {
	EventType() string
}

type JoinRoom struct {
	RoomID   string   `json:"roomId" validate:"required"`
	UserData UserData `json:"userData"`
}

type LeaveRoom struct{}

type RelayKind string

const (
	RelayOffer     RelayKind = TypeOffer
	RelayAnswer    RelayKind = TypeAnswer
	RelayCandidate RelayKind = TypeICECandidate
)

// Relay is an offer, answer or ICE candidate addressed to one peer.
type Relay struct {
	Kind     RelayKind
	TargetID string
	Payload  any
}

type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

type ToggleMedia struct {
	Media   MediaKind
	Enabled bool
}

type ScreenShare struct {
	IsSharing bool `json:"isSharing"`
}

type SendMessage struct {
	Message string      `json:"message" validate:"required,max=10000"`
	Kind    MessageKind `json:"type" validate:"omitempty,oneof=text file"`
}

type SendPrivateMessage struct {
	TargetID string `json:"targetId" validate:"required"`
	Message  string `json:"message" validate:"required,max=10000"`
}

type ShareFile struct {
	FileName string `json:"fileName" validate:"required,max=255"`
	FileData string `json:"fileData" validate:"required"`
	FileType string `json:"fileType" validate:"max=255"`
	FileSize int64  `json:"fileSize" validate:"gte=0"`
}

type KickParticipant struct {
	TargetID string `json:"targetId" validate:"required"`
}

type MuteParticipant struct {
	TargetID string `json:"targetId" validate:"required"`
	Muted    bool   `json:"muted"`
}

// Disconnect is produced by the transport when a connection goes away.
type Disconnect struct{}

func (JoinRoom) EventType() string           { return TypeJoinRoom }
func (LeaveRoom) EventType() string          { return TypeLeaveRoom }
func (r Relay) EventType() string            { return string(r.Kind) }
func (ScreenShare) EventType() string        { return TypeScreenShare }
func (SendMessage) EventType() string        { return TypeSendMessage }
func (SendPrivateMessage) EventType() string { return TypeSendPrivateMessage }
func (ShareFile) EventType() string          { return TypeShareFile }
func (KickParticipant) EventType() string    { return TypeKickParticipant }
func (MuteParticipant) EventType() string    { return TypeMuteParticipant }
func (Disconnect) EventType() string         { return TypeDisconnect }

func (t ToggleMedia) EventType() string {
	if t.Media == MediaAudio {
		return TypeToggleAudio
	}
	return TypeToggleVideo
}

type relayRequest struct {
	TargetID  string `json:"targetId" validate:"required"`
	Offer     any    `json:"offer"`
	Answer    any    `json:"answer"`
	Candidate any    `json:"candidate"`
}

type toggleRequest struct {
	Enabled bool `json:"enabled"`
}

// EventDecoder turns inbound frames into typed events, rejecting
// payloads that do not match the schema of their event type.
type EventDecoder struct {
	validate *validator.Validate
}

func NewEventDecoder() *EventDecoder {
	return &EventDecoder{validate: validator.New()}
}

func (d *EventDecoder) Decode(in Inbound) (Event, error) {
	switch in.Type {
	case TypeJoinRoom:
		return bindAs[JoinRoom](d, in)
	case TypeLeaveRoom:
		return LeaveRoom{}, nil
	case TypeOffer, TypeAnswer, TypeICECandidate:
		return d.decodeRelay(in)
	case TypeToggleVideo, TypeToggleAudio:
		req, err := bindAs[toggleRequest](d, in)
		if err != nil {
			return nil, err
		}
		media := MediaVideo
		if in.Type == TypeToggleAudio {
			media = MediaAudio
		}
		return ToggleMedia{Media: media, Enabled: req.Enabled}, nil
	case TypeScreenShare:
		return bindAs[ScreenShare](d, in)
	case TypeSendMessage:
		return bindAs[SendMessage](d, in)
	case TypeSendPrivateMessage:
		return bindAs[SendPrivateMessage](d, in)
	case TypeShareFile:
		return bindAs[ShareFile](d, in)
	case TypeKickParticipant:
		return bindAs[KickParticipant](d, in)
	case TypeMuteParticipant:
		return bindAs[MuteParticipant](d, in)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, in.Type)
	}
}

func (d *EventDecoder) decodeRelay(in Inbound) (Event, error) {
	req, err := bindAs[relayRequest](d, in)
	if err != nil {
		return nil, err
	}
	relay := Relay{Kind: RelayKind(in.Type), TargetID: req.TargetID}
	switch relay.Kind {
	case RelayOffer:
		relay.Payload = req.Offer
	case RelayAnswer:
		relay.Payload = req.Answer
	case RelayCandidate:
		relay.Payload = req.Candidate
	}
	if relay.Payload == nil {
		return nil, fmt.Errorf("%w: %s without %s body", ErrInvalidPayload, in.Type, relay.Kind)
	}
	return relay, nil
}

func bindAs[T any](d *EventDecoder, in Inbound) (T, error) {
	var v T
	if err := in.Bind(&v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, in.Type, err)
	}
	if err := d.validate.Struct(v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, in.Type, err)
	}
	return v, nil
}
