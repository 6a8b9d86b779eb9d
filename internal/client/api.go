package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BioHazard786/huddle/internal/server"
	"github.com/BioHazard786/huddle/internal/signaling"
)

var ErrRoomNotFound = errors.New("client: room not found")

// StatusError is a non-200 reply from the API.
type StatusError struct {
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.Path, e.Code, e.Message)
}

// API reads the server's HTTP endpoints.
type API struct {
	base string
	http *http.Client
}

func NewAPI(baseURL string) (*API, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: want http or https", baseURL)
	}
	return &API{
		base: strings.TrimSuffix(u.String(), "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (a *API) Health(ctx context.Context) (server.HealthResponse, error) {
	var out server.HealthResponse
	err := a.get(ctx, "/api/health", &out)
	return out, err
}

func (a *API) Stats(ctx context.Context) (server.StatsResponse, error) {
	var out server.StatsResponse
	err := a.get(ctx, "/api/server/stats", &out)
	return out, err
}

// RoomInfo returns ErrRoomNotFound for unknown rooms.
func (a *API) RoomInfo(ctx context.Context, roomID string) (signaling.RoomInfo, error) {
	var out signaling.RoomInfo
	err := a.get(ctx, "/api/rooms/"+url.PathEscape(roomID)+"/info", &out)
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return out, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	return out, err
}

// RoomExists is the room-id collision check used when generating names.
func (a *API) RoomExists(ctx context.Context, roomID string) (bool, error) {
	_, err := a.RoomInfo(ctx, roomID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrRoomNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (a *API) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body server.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Error == "" {
			body.Error = http.StatusText(resp.StatusCode)
		}
		return &StatusError{Path: path, Code: resp.StatusCode, Message: body.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}
