package signaling

import "errors"

var (
	ErrRoomFull         = errors.New("room is full")
	ErrNotBound         = errors.New("connection is not in a room")
	ErrNotParticipant   = errors.New("connection is not a participant of its room")
	ErrUnauthorized     = errors.New("only the host can do that")
	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrUnknownEvent     = errors.New("unknown event type")
	ErrTargetNotInRoom  = errors.New("target is not in the room")
	ErrHubStopped       = errors.New("hub stopped")
	ErrUnsupportedCodec = errors.New("unsupported codec")
)

// dropReason maps a silently absorbed error to its metrics label.
func dropReason(err error) string {
	switch {
	case errors.Is(err, ErrNotBound):
		return "not_bound"
	case errors.Is(err, ErrNotParticipant):
		return "not_participant"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrPayloadTooLarge):
		return "payload_too_large"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, ErrUnknownEvent):
		return "unknown_event"
	case errors.Is(err, ErrTargetNotInRoom):
		return "target_not_in_room"
	default:
		return "other"
	}
}
