package forum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "forum-backend/pkg/errors"
)

func TestParseVoteOperation(t *testing.T) {
	up, err := ParseVoteOperation("up")
	require.NoError(t, err)
	assert.Equal(t, VoteUp, up)
	assert.Equal(t, 1, up.Delta())

	down, err := ParseVoteOperation("DOWN")
	require.NoError(t, err)
	assert.Equal(t, VoteDown, down)
	assert.Equal(t, -1, down.Delta())

	_, err = ParseVoteOperation("sideways")
	assert.True(t, appErrors.IsValidation(err))

	_, err = ParseVoteOperation("")
	assert.True(t, appErrors.IsValidation(err))
}
