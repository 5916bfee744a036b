package tools

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidV4Pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestUUIDGenerator_Version4(t *testing.T) {
	g := NewUUIDGenerator()
	ids, err := g.Generate("u1", MaxUUIDBatch, UUIDFormat{})
	require.NoError(t, err)
	require.Len(t, ids, MaxUUIDBatch)

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		assert.Regexp(t, uuidV4Pattern, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, len(ids))
}

func TestUUIDGenerator_HistoryKeepsLastTen(t *testing.T) {
	g := NewUUIDGenerator()
	var all []string
	for i := 0; i < 12; i++ {
		ids, err := g.Generate("u1", 1, UUIDFormat{})
		require.NoError(t, err)
		all = append(all, ids...)
	}

	hist := g.History("u1")
	require.Len(t, hist, UUIDHistoryLimit)
	assert.Equal(t, all[11], hist[0])
	assert.Equal(t, all[2], hist[9])

	assert.Empty(t, g.History("u2"))
	g.Clear("u1")
	assert.Empty(t, g.History("u1"))
}

func TestUUIDGenerator_Format(t *testing.T) {
	g := NewUUIDGenerator()
	ids, err := g.Generate("u1", 1, UUIDFormat{Uppercase: true, NoHyphens: true})
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9A-F]{12}4[0-9A-F]{3}[89AB][0-9A-F]{15}$`, ids[0])
}

func TestUUIDGenerator_InvalidCount(t *testing.T) {
	g := NewUUIDGenerator()
	_, err := g.Generate("u1", 0, UUIDFormat{})
	assert.ErrorIs(t, err, ErrInvalidCount)
	_, err = g.Generate("u1", MaxUUIDBatch+1, UUIDFormat{})
	assert.ErrorIs(t, err, ErrInvalidCount)
}
