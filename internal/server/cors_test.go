package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOriginPolicy(t *testing.T) {
	req := require.New(t)
	p := NewOriginPolicy([]string{"http://localhost:3000", "HTTPS://App.Example/", "not a url"})

	req.True(p.Allows("http://localhost:3000"))
	req.True(p.Allows("https://app.example"))
	req.True(p.Allows("https://APP.example/"))
	req.False(p.Allows("http://localhost:3001"))
	req.False(p.Allows("https://app.example/path"))
	req.False(p.Allows(""))

	wildcard := NewOriginPolicy([]string{"*"})
	req.True(wildcard.Allows("https://anything.example"))

	req.False(NewOriginPolicy(nil).Allows("http://localhost:3000"))
}

func TestCORS_Preflight(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t, []string{"https://app.example"})

	r, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/health", nil)
	req.NoError(err)
	r.Header.Set("Origin", "https://app.example")
	r.Header.Set("Access-Control-Request-Method", "GET")
	resp, err := http.DefaultClient.Do(r)
	req.NoError(err)
	resp.Body.Close()

	req.Equal(http.StatusNoContent, resp.StatusCode)
	req.Equal("https://app.example", resp.Header.Get("Access-Control-Allow-Origin"))
	req.Contains(resp.Header.Get("Access-Control-Allow-Methods"), "GET")
}

func TestCORS_SimpleRequest(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t, []string{"https://app.example"})

	for origin, allowed := range map[string]bool{
		"https://app.example":  true,
		"https://evil.example": false,
	} {
		r, err := http.NewRequest(http.MethodGet, ts.URL+"/api/health", nil)
		req.NoError(err)
		r.Header.Set("Origin", origin)
		resp, err := http.DefaultClient.Do(r)
		req.NoError(err)
		resp.Body.Close()

		req.Equal(http.StatusOK, resp.StatusCode)
		if allowed {
			req.Equal(origin, resp.Header.Get("Access-Control-Allow-Origin"))
		} else {
			req.Empty(resp.Header.Get("Access-Control-Allow-Origin"))
		}
	}
}
