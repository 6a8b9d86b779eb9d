package roomname

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func listOf(word string) int {
	for i, l := range lists {
		for _, w := range l {
			if w == word {
				return i
			}
		}
	}
	return -1
}

func TestGenerateUsesDistinctLists(t *testing.T) {
	for range 50 {
		id, err := Generate(nil)
		require.NoError(t, err)

		parts := strings.Split(id, "-")
		require.Len(t, parts, Words)

		seen := make(map[int]bool)
		for _, p := range parts {
			idx := listOf(p)
			require.NotEqual(t, -1, idx, "unknown word %q", p)
			seen[idx] = true
		}
		require.Len(t, seen, Words, "words of %q share a list", id)
	}
}

func TestGenerateSkipsTakenIDs(t *testing.T) {
	var tried []string
	calls := 0
	id, err := Generate(func(id string) bool {
		calls++
		tried = append(tried, id)
		return calls < 3
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, tried[2], id)
}

func TestGenerateGivesUp(t *testing.T) {
	_, err := Generate(func(string) bool { return true })
	require.ErrorIs(t, err, ErrExhausted)
}
