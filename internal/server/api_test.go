package server

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

func TestAPI_Root(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t, nil)

	var body bannerResponse
	resp := getJSON(t, ts.URL+"/", &body)

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("running", body.Status)
	req.NotEmpty(body.Message)
	req.WithinDuration(time.Now(), body.Timestamp, time.Minute)
}

func TestAPI_UnknownPath(t *testing.T) {
	resp := getJSON(t, newTestServer(t, nil).URL+"/nope", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Health(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t, nil)

	var body HealthResponse
	resp := getJSON(t, ts.URL+"/api/health", &body)

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("application/json", resp.Header.Get("Content-Type"))
	req.Equal("OK", body.Status)
	req.GreaterOrEqual(body.Uptime, 0.0)
}

func TestAPI_RoomInfo(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t, nil)
	join(t, dial(t, ts), "math-101", "Prof")

	var info struct {
		ID               string    `json:"id"`
		ParticipantCount int       `json:"participantCount"`
		MaxParticipants  int       `json:"maxParticipants"`
		CreatedAt        time.Time `json:"createdAt"`
	}
	resp := getJSON(t, ts.URL+"/api/rooms/math-101/info", &info)

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("math-101", info.ID)
	req.Equal(1, info.ParticipantCount)
	req.Equal(2, info.MaxParticipants)
	req.False(info.CreatedAt.IsZero())
}

func TestAPI_RoomInfoNotFound(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t, nil)

	var body ErrorResponse
	resp := getJSON(t, ts.URL+"/api/rooms/ghost/info", &body)

	req.Equal(http.StatusNotFound, resp.StatusCode)
	req.Equal("Room not found", body.Error)
}

func TestAPI_Stats(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t, nil)
	join(t, dial(t, ts), "a", "x")
	join(t, dial(t, ts), "a", "y")
	join(t, dial(t, ts), "b", "z")

	var body map[string]any
	resp := getJSON(t, ts.URL+"/api/server/stats", &body)

	req.Equal(http.StatusOK, resp.StatusCode)
	req.EqualValues(2, body["totalRooms"])
	req.EqualValues(3, body["totalParticipants"])
	req.Equal(map[string]any{"rss": 3.0, "heapTotal": 2.0, "heapUsed": 1.0}, body["memoryUsage"])
}

func TestAPI_Metrics(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t, nil)
	join(t, dial(t, ts), "a", "x")

	resp, err := http.Get(ts.URL + "/metrics")
	req.NoError(err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	req.NoError(err)

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Contains(string(raw), "huddle_rooms_active 1")
	req.Contains(string(raw), `huddle_events_received_total{event="join-room"} 1`)
}
