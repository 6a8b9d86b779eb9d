package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{10 << 20, "10.00 MB"},
		{3 << 30, "3.00 GB"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatSize(tt.in))
	}
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "42s", FormatDuration(42*time.Second))
	require.Equal(t, "2m 5s", FormatDuration(2*time.Minute+5*time.Second))
	require.Equal(t, "1h 0m 3s", FormatDuration(time.Hour+3*time.Second))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", Truncate("short", 10))
	require.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	require.Equal(t, "ä", Truncate("äöü", 1))
}

func TestTableViewEmpty(t *testing.T) {
	require.Contains(t, TableView([]string{"A"}, nil), "Nothing to show")
}

func TestSummaryViewContainsRows(t *testing.T) {
	out := SummaryView([]KeyValue{{"Rooms", "3"}, {"Participants", "7"}})
	require.Contains(t, out, "Rooms")
	require.Contains(t, out, "Participants")
	require.Contains(t, out, "7")
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	prev := Output
	Output = &buf
	t.Cleanup(func() { Output = prev })

	sp := NewSimpleSpinner("working")
	sp.Start()
	sp.Stop()
	sp.Stop()
	require.Contains(t, buf.String(), "working")
}
