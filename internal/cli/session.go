package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/BioHazard786/huddle/internal/client"
	"github.com/BioHazard786/huddle/internal/signaling"
	"github.com/BioHazard786/huddle/internal/ui"
)

//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=../mocks/mock_room_actions.go -package=mocks

// RoomActions is what a joined session asks of the connection.
type RoomActions interface {
	Chat(ctx context.Context, text string) error
	PrivateMessage(ctx context.Context, targetID, text string) error
	ToggleVideo(ctx context.Context, enabled bool) error
	ToggleAudio(ctx context.Context, enabled bool) error
	ScreenShare(ctx context.Context, sharing bool) error
	ShareFile(ctx context.Context, name, mimeType string, data []byte) error
	Kick(ctx context.Context, targetID string) error
	Mute(ctx context.Context, targetID string, muted bool) error
	Leave(ctx context.Context) error
}

// Session tracks a joined room from this peer's side and turns typed
// input into room actions.
type Session struct {
	actions RoomActions
	self    string
	room    string
	host    string
	names   map[string]string

	video   bool
	audio   bool
	sharing bool

	maxFileSize int64
	readFile    func(string) ([]byte, error)
}

func NewSession(actions RoomActions, ack signaling.JoinAck) *Session {
	s := &Session{
		actions:     actions,
		self:        ack.ParticipantID,
		room:        ack.RoomID,
		host:        ack.HostID,
		names:       make(map[string]string, len(ack.Participants)+1),
		maxFileSize: signaling.DefaultMaxFileSize,
		readFile:    os.ReadFile,
	}
	for _, p := range ack.Participants {
		s.names[p.ID] = p.Name
	}
	return s
}

func (s *Session) IsHost() bool {
	return s.host != "" && s.host == s.self
}

// Run feeds typed lines and server notices into the session until the
// user quits, the peer is kicked or either channel closes.
func (s *Session) Run(ctx context.Context, lines <-chan string, incoming <-chan signaling.Inbound) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			in, err := ParseInput(line)
			if err != nil {
				ui.PrintWarning(err.Error())
				continue
			}
			done, err := s.Handle(ctx, in)
			if err != nil {
				if errors.Is(err, client.ErrClosed) {
					return err
				}
				ui.PrintWarning(err.Error())
			}
			if done {
				return nil
			}

		case in, ok := <-incoming:
			if !ok {
				return NewError("room", ErrDisconnected)
			}
			n, err := client.DecodeNotice(in)
			if err != nil {
				ui.PrintWarning(err.Error())
				continue
			}
			if err := s.Apply(ctx, n); err != nil {
				return err
			}
		}
	}
}

// Handle runs one typed command. done reports that the session is over.
func (s *Session) Handle(ctx context.Context, in Input) (done bool, err error) {
	switch in.Cmd {
	case "":
		return false, nil
	case cmdSay:
		return false, s.wrap("send message", s.actions.Chat(ctx, in.Text))
	case cmdVideo:
		s.video = !s.video
		ui.PrintEvent(ui.IconVideo, "Video "+onOff(s.video))
		return false, s.wrap("toggle video", s.actions.ToggleVideo(ctx, s.video))
	case cmdAudio:
		s.audio = !s.audio
		ui.PrintEvent(ui.IconAudio, "Audio "+onOff(s.audio))
		return false, s.wrap("toggle audio", s.actions.ToggleAudio(ctx, s.audio))
	case cmdShare:
		s.sharing = !s.sharing
		ui.PrintEvent(ui.IconScreen, "Screen sharing "+onOff(s.sharing))
		return false, s.wrap("screen share", s.actions.ScreenShare(ctx, s.sharing))
	case cmdFile:
		return false, s.shareFile(ctx, in.Text)
	case cmdDM:
		id, err := s.resolve(in.Target)
		if err != nil {
			return false, err
		}
		return false, s.wrap("private message", s.actions.PrivateMessage(ctx, id, in.Text))
	case cmdKick, cmdMute, cmdUnmute:
		return false, s.moderate(ctx, in)
	case cmdWho:
		s.printParticipants()
		return false, nil
	case cmdHelp:
		ui.PrintInfo(helpText)
		return false, nil
	case cmdLeave:
		return true, s.wrap("leave room", s.actions.Leave(ctx))
	case cmdQuit:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, in.Cmd)
	}
}

func (s *Session) moderate(ctx context.Context, in Input) error {
	if !s.IsHost() {
		return fmt.Errorf("only the host can /%s", in.Cmd)
	}
	id, err := s.resolve(in.Target)
	if err != nil {
		return err
	}
	if in.Cmd == cmdKick {
		return s.wrap("kick", s.actions.Kick(ctx, id))
	}
	return s.wrap(in.Cmd, s.actions.Mute(ctx, id, in.Cmd == cmdMute))
}

func (s *Session) shareFile(ctx context.Context, path string) error {
	data, err := s.readFile(path)
	if err != nil {
		return WrapError("read file", err, path)
	}
	if int64(len(data)) >= s.maxFileSize {
		return fmt.Errorf("%s is %s; files must be under %s", filepath.Base(path), ui.FormatSize(int64(len(data))), ui.FormatSize(s.maxFileSize))
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return s.wrap("share file", s.actions.ShareFile(ctx, filepath.Base(path), mimeType, data))
}

// Apply updates local state from a server notice and prints it.
func (s *Session) Apply(ctx context.Context, n client.Notice) error {
	switch p := n.Payload.(type) {
	case signaling.RoomSnapshot:
		// Already rendered from the join ack.
	case signaling.ParticipantJoinedPayload:
		s.names[p.Participant.ID] = p.Participant.Name
		ui.PrintEvent(ui.IconPeer, fmt.Sprintf("%s joined", s.label(p.Participant.ID)))
	case signaling.ParticipantLeftPayload:
		ui.PrintEvent(ui.IconPeer, fmt.Sprintf("%s left", s.label(p.ParticipantID)))
		delete(s.names, p.ParticipantID)
	case signaling.NewHostPayload:
		s.host = p.HostID
		if s.IsHost() {
			ui.PrintEvent(ui.IconHost, "You are now the host")
		} else {
			ui.PrintEvent(ui.IconHost, fmt.Sprintf("%s is now the host", s.label(p.HostID)))
		}
	case signaling.MediaToggledPayload:
		icon, what := ui.IconVideo, "video"
		if n.Type == signaling.TypeAudioToggled {
			icon, what = ui.IconAudio, "audio"
		}
		ui.PrintEvent(icon, fmt.Sprintf("%s turned %s %s", s.label(p.ParticipantID), what, onOff(p.Enabled)))
	case signaling.ScreenShareToggledPayload:
		verb := "stopped"
		if p.IsSharing {
			verb = "started"
		}
		ui.PrintEvent(ui.IconScreen, fmt.Sprintf("%s %s sharing their screen", s.label(p.ParticipantID), verb))
	case signaling.ChatEntry:
		s.printEntry(p)
	case signaling.RelayPayload:
		ui.PrintEvent(ui.IconSignal, fmt.Sprintf("%s from %s", n.Type, s.label(p.FromID)))
	case signaling.ForceMutePayload:
		if !p.Muted {
			ui.PrintEvent(ui.IconMute, "The host lifted your mute")
			return nil
		}
		ui.PrintEvent(ui.IconMute, "The host muted you")
		if s.audio {
			s.audio = false
			return s.wrap("toggle audio", s.actions.ToggleAudio(ctx, false))
		}
	case signaling.KickedPayload:
		ui.PrintEvent(ui.IconKick, fmt.Sprintf("You were removed from %s", p.RoomID))
		return NewError("room", ErrKicked)
	}
	return nil
}

func (s *Session) printEntry(e signaling.ChatEntry) {
	sender := ui.SenderStyle.Render(e.SenderName)
	if e.SenderID == s.self {
		sender = ui.SenderStyle.Render("you")
	}

	switch {
	case e.IsPrivate:
		to := s.label(e.TargetID)
		if e.TargetID == s.self {
			to = "you"
		}
		ui.PrintEvent(ui.IconChat, fmt.Sprintf("%s %s %s", sender, ui.PrivateStyle.Render("-> "+to+":"), e.Message))
	case e.Kind == signaling.KindFile && e.File != nil:
		ui.PrintEvent(ui.IconFile, fmt.Sprintf("%s shared %s (%s)", sender, e.File.Name, ui.FormatSize(e.File.Size)))
	default:
		ui.PrintEvent(ui.IconChat, fmt.Sprintf("%s: %s", sender, e.Message))
	}
}

func (s *Session) printParticipants() {
	ids := lo.Keys(s.names)
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids)+1)
	rows = append(rows, []string{s.role(s.self), "you", ui.Truncate(s.self, 12)})
	for _, id := range ids {
		rows = append(rows, []string{s.role(id), s.names[id], ui.Truncate(id, 12)})
	}
	fmt.Fprintln(ui.Output, ui.TableView([]string{"", "Name", "ID"}, rows))
}

func (s *Session) role(id string) string {
	if id == s.host {
		return ui.IconHost
	}
	return ""
}

// resolve finds a participant by exact id, unique id prefix or name.
func (s *Session) resolve(who string) (string, error) {
	if _, ok := s.names[who]; ok {
		return who, nil
	}

	ids := lo.Keys(s.names)
	byPrefix := lo.Filter(ids, func(id string, _ int) bool {
		return strings.HasPrefix(id, who)
	})
	if len(byPrefix) == 1 {
		return byPrefix[0], nil
	}

	byName := lo.Filter(ids, func(id string, _ int) bool {
		return strings.EqualFold(s.names[id], who)
	})
	switch len(byName) {
	case 1:
		return byName[0], nil
	case 0:
		if len(byPrefix) > 1 {
			return "", fmt.Errorf("%q matches %d participants; use more of the id", who, len(byPrefix))
		}
		return "", fmt.Errorf("no participant matches %q", who)
	default:
		return "", fmt.Errorf("%d participants are named %q; use an id prefix", len(byName), who)
	}
}

func (s *Session) label(id string) string {
	if name := s.names[id]; name != "" {
		return name
	}
	return ui.Truncate(id, 8)
}

func (s *Session) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(op, err)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
