package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	req.NoError(err)
	req.Equal(8080, cfg.Port)
	req.Equal(":8080", cfg.Addr())
	req.Equal("info", cfg.LogLevel)
	req.Equal("text", cfg.LogFormat)
	req.Equal([]string{"http://localhost:3000", "http://localhost:8000"}, cfg.Origins())
	req.Equal(100, cfg.MaxParticipants)
	req.Equal(500, cfg.ChatHistoryLimit)
	req.EqualValues(10485760, cfg.MaxFileSize)
	req.EqualValues(16777216, cfg.MaxMessageBytes)
	req.Equal(256, cfg.SendBuffer)
	req.Equal(30*time.Second, cfg.SweepInterval)
	req.EqualValues(524288000, cfg.MemoryWarnBytes)
	req.Equal(25*time.Second, cfg.PingInterval)
	req.Equal(60*time.Second, cfg.PongWait)
	req.Equal(15*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	req := require.New(t)
	t.Setenv("HUDDLE_HOST", "127.0.0.1")
	t.Setenv("HUDDLE_PORT", "9000")
	t.Setenv("HUDDLE_LOG_FORMAT", "json")
	t.Setenv("HUDDLE_ALLOWED_ORIGINS", " https://a.example/ , ,https://b.example")
	t.Setenv("HUDDLE_MAX_PARTICIPANTS", "4")
	t.Setenv("HUDDLE_SWEEP_INTERVAL", "2m")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	req.NoError(err)
	req.Equal("127.0.0.1:9000", cfg.Addr())
	req.Equal("json", cfg.LogFormat)
	req.Equal([]string{"https://a.example", "https://b.example"}, cfg.Origins())
	req.Equal(4, cfg.MaxParticipants)
	req.Equal(2*time.Minute, cfg.SweepInterval)
}

func TestLoad_DotEnvFile(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), ".env")
	req.NoError(os.WriteFile(path, []byte("HUDDLE_PORT=7070\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("HUDDLE_PORT") })

	cfg, err := Load(path)

	req.NoError(err)
	req.Equal(7070, cfg.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"HUDDLE_PORT":             "70000",
		"HUDDLE_LOG_FORMAT":       "xml",
		"HUDDLE_MAX_PARTICIPANTS": "0",
		"HUDDLE_PING_INTERVAL":    "90s",
		"HUDDLE_SWEEP_INTERVAL":   "10ms",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.Error(t, err)
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	t.Setenv("HUDDLE_PORT", "eighty")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
