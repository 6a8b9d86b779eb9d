package client

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/BioHazard786/huddle/internal/signaling"
)

// Join enters roomID and returns the server's snapshot. A rejected join
// wraps ErrJoinRejected with the server's reason.
func (p *Peer) Join(ctx context.Context, roomID string, user signaling.UserData) (signaling.JoinAck, error) {
	var ack signaling.JoinAck
	err := p.Request(ctx, signaling.TypeJoinRoom, signaling.JoinRoom{RoomID: roomID, UserData: user}, &ack)
	if err != nil {
		return ack, err
	}
	if !ack.Success {
		return ack, fmt.Errorf("%w: %s", ErrJoinRejected, ack.Error)
	}
	return ack, nil
}

func (p *Peer) Leave(ctx context.Context) error {
	return p.Send(ctx, signaling.TypeLeaveRoom, nil)
}

// Relay forwards an offer, answer or candidate body to targetID.
func (p *Peer) Relay(ctx context.Context, kind signaling.RelayKind, targetID string, body any) error {
	return p.Send(ctx, string(kind), map[string]any{
		"targetId":      targetID,
		relayKey(kind): body,
	})
}

// relayKey is the payload field carrying the body for kind.
func relayKey(kind signaling.RelayKind) string {
	if kind == signaling.RelayCandidate {
		return "candidate"
	}
	return string(kind)
}

func (p *Peer) ToggleVideo(ctx context.Context, enabled bool) error {
	return p.Send(ctx, signaling.TypeToggleVideo, map[string]bool{"enabled": enabled})
}

func (p *Peer) ToggleAudio(ctx context.Context, enabled bool) error {
	return p.Send(ctx, signaling.TypeToggleAudio, map[string]bool{"enabled": enabled})
}

func (p *Peer) ScreenShare(ctx context.Context, sharing bool) error {
	return p.Send(ctx, signaling.TypeScreenShare, signaling.ScreenShare{IsSharing: sharing})
}

func (p *Peer) Chat(ctx context.Context, text string) error {
	return p.Send(ctx, signaling.TypeSendMessage, signaling.SendMessage{Message: text, Kind: signaling.KindText})
}

func (p *Peer) PrivateMessage(ctx context.Context, targetID, text string) error {
	return p.Send(ctx, signaling.TypeSendPrivateMessage, signaling.SendPrivateMessage{TargetID: targetID, Message: text})
}

// ShareFile posts data inline as base64.
func (p *Peer) ShareFile(ctx context.Context, name, mimeType string, data []byte) error {
	return p.Send(ctx, signaling.TypeShareFile, signaling.ShareFile{
		FileName: name,
		FileData: base64.StdEncoding.EncodeToString(data),
		FileType: mimeType,
		FileSize: int64(len(data)),
	})
}

func (p *Peer) Kick(ctx context.Context, targetID string) error {
	return p.Send(ctx, signaling.TypeKickParticipant, signaling.KickParticipant{TargetID: targetID})
}

func (p *Peer) Mute(ctx context.Context, targetID string, muted bool) error {
	return p.Send(ctx, signaling.TypeMuteParticipant, signaling.MuteParticipant{TargetID: targetID, Muted: muted})
}
