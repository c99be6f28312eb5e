package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{7}$`)

func TestNewDisplayHash(t *testing.T) {
	id := uuid.New()
	createdAt := time.Now()

	t.Run("Seven lowercase hex characters", func(t *testing.T) {
		hash, err := NewDisplayHash(id, "alice", createdAt)
		require.NoError(t, err)
		assert.Regexp(t, hexPattern, hash)
	})

	t.Run("Same inputs still differ thanks to random entropy", func(t *testing.T) {
		a, err := NewDisplayHash(id, "alice", createdAt)
		require.NoError(t, err)
		b, err := NewDisplayHash(id, "alice", createdAt)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}
