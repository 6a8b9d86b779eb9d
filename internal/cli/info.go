package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BioHazard786/huddle/internal/client"
	"github.com/BioHazard786/huddle/internal/ui"
)

func newAPI(opts *Options) (*client.API, Options, error) {
	resolved, err := opts.Resolve(nil)
	if err != nil {
		return nil, resolved, NewError("load options", err)
	}
	api, err := client.NewAPI(resolved.Server)
	if err != nil {
		return nil, resolved, NewError("load options", err)
	}
	return api, resolved, nil
}

func newHealthCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, resolved, err := newAPI(opts)
			if err != nil {
				return err
			}

			stop := ui.RunSpinner("Checking " + resolved.Server)
			health, err := api.Health(cmd.Context())
			stop()
			if err != nil {
				return WrapError("health check", err, resolved.Server)
			}

			uptime := time.Duration(health.Uptime * float64(time.Second))
			ui.PrintSuccessf("%s is %s (up %s)", resolved.Server, health.Status, ui.FormatDuration(uptime))
			return nil
		},
	}
}

func newStatsCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show room, participant and memory totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, resolved, err := newAPI(opts)
			if err != nil {
				return err
			}

			stop := ui.RunSpinner("Fetching stats")
			stats, err := api.Stats(cmd.Context())
			stop()
			if err != nil {
				return WrapError("fetch stats", err, resolved.Server)
			}

			ui.RenderSummary("Server stats", []ui.KeyValue{
				{Key: "Rooms", Value: fmt.Sprint(stats.TotalRooms)},
				{Key: "Participants", Value: fmt.Sprint(stats.TotalParticipants)},
				{Key: "Heap used", Value: ui.FormatSize(int64(stats.MemoryUsage.HeapUsed))},
				{Key: "Heap total", Value: ui.FormatSize(int64(stats.MemoryUsage.HeapTotal))},
				{Key: "RSS", Value: ui.FormatSize(int64(stats.MemoryUsage.RSS))},
			})
			return nil
		},
	}
}

func newRoomCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "room <roomId>",
		Short: "Show a room's occupancy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newAPI(opts)
			if err != nil {
				return err
			}

			info, err := api.RoomInfo(cmd.Context(), args[0])
			if err != nil {
				return NewError("look up room", err)
			}

			ui.RenderSummary(ui.IconRoom+" "+info.ID, []ui.KeyValue{
				{Key: "Participants", Value: fmt.Sprintf("%d / %d", info.ParticipantCount, info.MaxParticipants)},
				{Key: "Created", Value: info.CreatedAt.Local().Format(time.DateTime)},
				{Key: "Age", Value: ui.FormatDuration(time.Since(info.CreatedAt))},
			})
			return nil
		},
	}
}
