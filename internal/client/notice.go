package client

import (
	"fmt"

	"github.com/BioHazard786/huddle/internal/signaling"
)

// Notice is a server event with its payload decoded into the matching
// signaling type.
type Notice struct {
	Type    string
	Payload any
}

// DecodeNotice routes an inbound frame to its payload type. Unknown types
// come back with a nil payload.
func DecodeNotice(in signaling.Inbound) (Notice, error) {
	n := Notice{Type: in.Type}

	var err error
	switch in.Type {
	case signaling.TypeRoomJoined:
		n.Payload, err = bind[signaling.RoomSnapshot](in)
	case signaling.TypeParticipantJoined:
		n.Payload, err = bind[signaling.ParticipantJoinedPayload](in)
	case signaling.TypeParticipantLeft:
		n.Payload, err = bind[signaling.ParticipantLeftPayload](in)
	case signaling.TypeNewHost:
		n.Payload, err = bind[signaling.NewHostPayload](in)
	case signaling.TypeOffer, signaling.TypeAnswer, signaling.TypeICECandidate:
		n.Payload, err = bind[signaling.RelayPayload](in)
	case signaling.TypeVideoToggled, signaling.TypeAudioToggled:
		n.Payload, err = bind[signaling.MediaToggledPayload](in)
	case signaling.TypeScreenShareToggled:
		n.Payload, err = bind[signaling.ScreenShareToggledPayload](in)
	case signaling.TypeNewMessage, signaling.TypePrivateMessage:
		n.Payload, err = bind[signaling.ChatEntry](in)
	case signaling.TypeKicked:
		n.Payload, err = bind[signaling.KickedPayload](in)
	case signaling.TypeForceMute:
		n.Payload, err = bind[signaling.ForceMutePayload](in)
	}
	if err != nil {
		return n, fmt.Errorf("decode %s: %w", in.Type, err)
	}
	return n, nil
}

func bind[T any](in signaling.Inbound) (T, error) {
	var v T
	err := in.Bind(&v)
	return v, err
}
