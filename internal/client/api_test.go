package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BioHazard786/huddle/internal/signaling"
)

func TestAPI_Health(t *testing.T) {
	ts := newTestServer(t, 10)
	api, err := NewAPI(ts.URL)
	require.NoError(t, err)

	health, err := api.Health(testContext(t))
	require.NoError(t, err)
	require.Equal(t, "OK", health.Status)
	require.GreaterOrEqual(t, health.Uptime, 0.0)
}

func TestAPI_RoomInfoAndStats(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t, 5)
	ctx := testContext(t)
	api, err := NewAPI(ts.URL + "/")
	req.NoError(err)

	_, err = api.RoomInfo(ctx, "nowhere")
	req.ErrorIs(err, ErrRoomNotFound)
	exists, err := api.RoomExists(ctx, "nowhere")
	req.NoError(err)
	req.False(exists)

	alice := dial(t, ts, "")
	_, err = alice.Join(ctx, "daily sync", signaling.UserData{Name: "Alice"})
	req.NoError(err)

	info, err := api.RoomInfo(ctx, "daily sync")
	req.NoError(err)
	req.Equal("daily sync", info.ID)
	req.Equal(1, info.ParticipantCount)
	req.Equal(5, info.MaxParticipants)

	exists, err = api.RoomExists(ctx, "daily sync")
	req.NoError(err)
	req.True(exists)

	stats, err := api.Stats(ctx)
	req.NoError(err)
	req.Equal(1, stats.TotalRooms)
	req.Equal(1, stats.TotalParticipants)
	req.EqualValues(10, stats.MemoryUsage.HeapUsed)
}

func TestNewAPI_RejectsWebsocketScheme(t *testing.T) {
	_, err := NewAPI("ws://localhost:8080")
	require.Error(t, err)
}
