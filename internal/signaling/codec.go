package signaling

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Subprotocols a peer may negotiate on the websocket upgrade.
const (
	SubprotocolJSON    = "huddle.v1.json"
	SubprotocolMsgpack = "huddle.v1.msgpack"
)

// Codec turns websocket frames into envelopes and back.
type Codec interface {
	Subprotocol() string
	// FrameType is the websocket message type frames are written with.
	FrameType() int
	Decode(data []byte) (Inbound, error)
	Encode(msg *Message) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Subprotocols lists the supported subprotocols in order of preference.
func Subprotocols() []string {
	return []string{SubprotocolJSON, SubprotocolMsgpack}
}

// CodecFor returns the codec for a negotiated subprotocol. An empty
// subprotocol means the peer did not ask for one and gets JSON.
func CodecFor(subprotocol string) (Codec, error) {
	switch subprotocol {
	case "", SubprotocolJSON:
		return JSONCodec{}, nil
	case SubprotocolMsgpack:
		return MsgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCodec, subprotocol)
	}
}

type JSONCodec struct{}

type jsonEnvelope struct {
	Type    string          `json:"type"`
	AckID   *uint64         `json:"ackId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (JSONCodec) Subprotocol() string { return SubprotocolJSON }

func (JSONCodec) FrameType() int { return websocket.TextMessage }

func (c JSONCodec) Decode(data []byte) (Inbound, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if bytes.Equal(env.Payload, []byte("null")) {
		env.Payload = nil
	}
	return Inbound{Type: env.Type, AckID: env.AckID, payload: env.Payload, codec: c}, nil
}

func (JSONCodec) Encode(msg *Message) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// MsgpackCodec speaks the same envelope as JSONCodec in binary frames.
// Field names follow the json struct tags so both encodings share one schema.
type MsgpackCodec struct{}

type msgpackEnvelope struct {
	Type    string             `json:"type"`
	AckID   *uint64            `json:"ackId,omitempty"`
	Payload msgpack.RawMessage `json:"payload,omitempty"`
}

func (MsgpackCodec) Subprotocol() string { return SubprotocolMsgpack }

func (MsgpackCodec) FrameType() int { return websocket.BinaryMessage }

func (c MsgpackCodec) Decode(data []byte) (Inbound, error) {
	var env msgpackEnvelope
	if err := c.Unmarshal(data, &env); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	// 0xc0 is msgpack nil.
	if len(env.Payload) == 1 && env.Payload[0] == 0xc0 {
		env.Payload = nil
	}
	return Inbound{Type: env.Type, AckID: env.AckID, payload: env.Payload, codec: c}, nil
}

func (MsgpackCodec) Encode(msg *Message) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(msg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (MsgpackCodec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
