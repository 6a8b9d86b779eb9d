package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/BioHazard786/huddle/internal/signaling"
)

const (
	DefaultServer = "http://localhost:8080"
	DefaultCodec  = "json"
)

// Options holds the connection settings shared by every command.
type Options struct {
	Server string
	Codec  string
}

// Resolve fills unset fields with the following priority:
// 1. CLI flags - highest priority
// 2. Environment variables (HUDDLE_SERVER, HUDDLE_CODEC)
// 3. Hardcoded defaults - lowest priority
func (o Options) Resolve(getenv func(string) string) (Options, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if o.Server == "" {
		o.Server = getenv("HUDDLE_SERVER")
	}
	if o.Server == "" {
		o.Server = DefaultServer
	}
	o.Server = strings.TrimSuffix(o.Server, "/")

	if o.Codec == "" {
		o.Codec = getenv("HUDDLE_CODEC")
	}
	if o.Codec == "" {
		o.Codec = DefaultCodec
	}
	o.Codec = strings.ToLower(o.Codec)
	if _, err := o.Subprotocol(); err != nil {
		return o, err
	}
	return o, nil
}

// Subprotocol maps the codec name to the websocket subprotocol.
func (o Options) Subprotocol() (string, error) {
	switch o.Codec {
	case "json":
		return signaling.SubprotocolJSON, nil
	case "msgpack":
		return signaling.SubprotocolMsgpack, nil
	default:
		return "", fmt.Errorf("unknown codec %q (want json or msgpack)", o.Codec)
	}
}
