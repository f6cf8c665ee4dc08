package forum

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "forum-backend/pkg/errors"
)

func TestDeriveChannelID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "General", "general"},
		{"whitespace to hyphen", "Platform Team", "platform-team"},
		{"collapses runs of whitespace", "a   b", "a-b"},
		{"strips special characters", "Q&A (misc.)", "qa-misc"},
		{"strips quotes and stars", `"best" *ideas*`, "best-ideas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveChannelID(tt.input))
		})
	}
}

func TestNewChannel(t *testing.T) {
	channel, err := NewChannel("General", "alice", VisibilityPublic)
	require.NoError(t, err)

	assert.Equal(t, "general", channel.ChannelID)
	assert.Equal(t, "General", channel.Name)
	assert.Equal(t, "alice", channel.CreatedBy)
	assert.Zero(t, channel.TotalQuestions)
	require.Len(t, channel.Participants, 1)
	assert.Equal(t, Participant{Name: "alice", IsOwner: true}, channel.Participants[0])
	assert.Equal(t, channel.CreatedAt, channel.UpdatedAt)
}

func TestNewChannel_NameTooLong(t *testing.T) {
	_, err := NewChannel(strings.Repeat("x", MaxChannelNameLength+1), "alice", VisibilityPublic)

	assert.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))
}

func TestNewChannel_NameWithoutKeyCharacters(t *testing.T) {
	_, err := NewChannel("???", "alice", VisibilityPublic)

	assert.True(t, appErrors.IsValidation(err))
}

func TestParseVisibility(t *testing.T) {
	for _, input := range []string{"PUBLIC", "public", " Public "} {
		v, err := ParseVisibility(input)
		require.NoError(t, err)
		assert.Equal(t, VisibilityPublic, v)
	}

	v, err := ParseVisibility("private")
	require.NoError(t, err)
	assert.Equal(t, VisibilityPrivate, v)

	_, err = ParseVisibility("hidden")
	assert.True(t, appErrors.IsValidation(err))
}
