package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/BioHazard786/huddle/internal/client"
	"github.com/BioHazard786/huddle/internal/roomname"
	"github.com/BioHazard786/huddle/internal/signaling"
	"github.com/BioHazard786/huddle/internal/ui"
)

type joinOptions struct {
	name   string
	avatar string
}

func newJoinCmd(opts *Options) *cobra.Command {
	var jo joinOptions

	cmd := &cobra.Command{
		Use:   "join [roomId]",
		Short: "Join a room as an interactive chat peer",
		Long: `Join a room and stay in it as a peer. Lines typed on stdin are sent as chat
messages; lines starting with / are commands (see /help). Without a room id a
fresh memorable one is generated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoin(cmd.Context(), opts, jo, args, cmd.InOrStdin())
		},
	}
	cmd.Flags().StringVarP(&jo.name, "name", "n", "", "display name (default $USER)")
	cmd.Flags().StringVar(&jo.avatar, "avatar", "", "avatar URL")
	return cmd
}

func runJoin(ctx context.Context, opts *Options, jo joinOptions, args []string, stdin io.Reader) error {
	api, resolved, err := newAPI(opts)
	if err != nil {
		return err
	}
	subprotocol, _ := resolved.Subprotocol()

	roomID := ""
	if len(args) > 0 {
		roomID = args[0]
	} else {
		roomID, err = roomname.Generate(func(id string) bool {
			exists, err := api.RoomExists(ctx, id)
			return err == nil && exists
		})
		if err != nil {
			return NewError("generate room id", err)
		}
	}

	stop := ui.RunConnectionSpinner("Connecting to " + resolved.Server)
	peer, err := client.Dial(ctx, resolved.Server, subprotocol, slog.Default())
	stop()
	if err != nil {
		return WrapError("connect to server", err, resolved.Server)
	}
	defer peer.Close()

	user := signaling.UserData{
		Name:   lo.CoalesceOrEmpty(jo.name, os.Getenv("USER"), "guest"),
		Avatar: jo.avatar,
	}
	ack, err := peer.Join(ctx, roomID, user)
	if err != nil {
		return NewError("join room", err)
	}

	session := NewSession(peer, ack)
	printWelcome(session, ack, peer.Subprotocol())

	return session.Run(ctx, readLines(ctx, stdin), peer.Incoming())
}

func printWelcome(s *Session, ack signaling.JoinAck, subprotocol string) {
	role := "guest"
	if s.IsHost() {
		role = ui.IconHost + " host"
	}
	ui.RenderSummary(ui.IconRoom+" "+ack.RoomID, []ui.KeyValue{
		{Key: "You", Value: ui.Truncate(ack.ParticipantID, 12)},
		{Key: "Role", Value: role},
		{Key: "Others here", Value: fmt.Sprint(len(ack.Participants))},
		{Key: "Screens shared", Value: fmt.Sprint(len(ack.ActiveStreams))},
		{Key: "Codec", Value: subprotocol},
	})
	for _, e := range ack.ChatHistory {
		s.printEntry(e)
	}
	ui.PrintInfo("Type a message, or /help for commands")
}

// readLines forwards stdin lines until EOF or ctx ends.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
