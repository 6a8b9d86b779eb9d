package cli

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCommand = errors.New("unknown command")

// Input is one parsed line typed into a joined room.
type Input struct {
	Cmd    string
	Target string
	Text   string
}

const (
	cmdSay    = "say"
	cmdVideo  = "video"
	cmdAudio  = "audio"
	cmdShare  = "share"
	cmdFile   = "file"
	cmdDM     = "dm"
	cmdKick   = "kick"
	cmdMute   = "mute"
	cmdUnmute = "unmute"
	cmdWho    = "who"
	cmdHelp   = "help"
	cmdLeave  = "leave"
	cmdQuit   = "quit"
)

const helpText = `Type a line to chat. Commands:
  /video            toggle your camera flag
  /audio            toggle your microphone flag
  /share            toggle screen sharing
  /file <path>      share a file with the room
  /dm <who> <text>  private message
  /kick <who>       remove a participant (host only)
  /mute <who>       ask a participant to mute (host only)
  /unmute <who>     lift a mute request (host only)
  /who              list participants
  /leave            leave the room and exit
  /quit             disconnect and exit
<who> is a participant name or id prefix.`

// ParseInput turns a typed line into an Input. Blank lines yield a zero
// Input.
func ParseInput(line string) (Input, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Input{}, nil
	}
	if !strings.HasPrefix(line, "/") {
		return Input{Cmd: cmdSay, Text: line}, nil
	}

	name, rest, _ := strings.Cut(line[1:], " ")
	name = strings.ToLower(name)
	rest = strings.TrimSpace(rest)

	switch name {
	case cmdVideo, cmdAudio, cmdShare, cmdWho, cmdHelp, cmdLeave, cmdQuit:
		return Input{Cmd: name}, nil
	case cmdFile:
		if rest == "" {
			return Input{}, fmt.Errorf("usage: /file <path>")
		}
		return Input{Cmd: name, Text: rest}, nil
	case cmdKick, cmdMute, cmdUnmute:
		if rest == "" || strings.ContainsRune(rest, ' ') {
			return Input{}, fmt.Errorf("usage: /%s <who>", name)
		}
		return Input{Cmd: name, Target: rest}, nil
	case cmdDM:
		target, text, _ := strings.Cut(rest, " ")
		text = strings.TrimSpace(text)
		if target == "" || text == "" {
			return Input{}, fmt.Errorf("usage: /dm <who> <text>")
		}
		return Input{Cmd: name, Target: target, Text: text}, nil
	default:
		return Input{}, fmt.Errorf("%w: /%s (try /help)", ErrUnknownCommand, name)
	}
}
