package signaling

import "time"

// DefaultChatHistoryLimit bounds the chat history kept per room.
const DefaultChatHistoryLimit = 500

type MessageKind string

const (
	KindText MessageKind = "text"
	KindFile MessageKind = "file"
)

// FileDescriptor carries a shared file inline. The relay never inspects Data.
type FileDescriptor struct {
	Name string `json:"name"`
	Data string `json:"data"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// ChatEntry is one message in a room. Entries are immutable once appended.
type ChatEntry struct {
	ID           string          `json:"id"`
	SenderID     string          `json:"senderId"`
	SenderName   string          `json:"senderName"`
	SenderAvatar string          `json:"senderAvatar"`
	Message      string          `json:"message,omitempty"`
	File         *FileDescriptor `json:"file,omitempty"`
	Kind         MessageKind     `json:"type"`
	IsPrivate    bool            `json:"isPrivate"`
	TargetID     string          `json:"targetId,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

func newEntryFrom(p *Participant) ChatEntry {
	return ChatEntry{
		SenderID:     p.ID,
		SenderName:   p.Name,
		SenderAvatar: p.Avatar,
		Kind:         KindText,
	}
}
