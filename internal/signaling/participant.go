package signaling

import "time"

// UserData is the identity a peer presents when joining a room.
type UserData struct {
	Name   string `json:"name" validate:"max=64"`
	Avatar string `json:"avatar" validate:"max=2048"`
}

// Participant is one connected peer's state within a room.
// Its ID is the id of the connection it arrived on.
type Participant struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Avatar          string    `json:"avatar"`
	JoinedAt        time.Time `json:"joinedAt"`
	IsHost          bool      `json:"isHost"`
	HasVideo        bool      `json:"hasVideo"`
	HasAudio        bool      `json:"hasAudio"`
	IsScreenSharing bool      `json:"isScreenSharing"`
}
