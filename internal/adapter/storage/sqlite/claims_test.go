package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimStore_TryClaim(t *testing.T) {
	store, err := NewClaimStore(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	first, err := store.TryClaim("job-1")
	require.NoError(t, err)
	assert.True(t, first)

	second, err := store.TryClaim("job-1")
	require.NoError(t, err)
	assert.False(t, second)
}

func TestClaimStore_ClaimsSurviveReopen(t *testing.T) {
	dataDir := t.TempDir()

	store, err := NewClaimStore(dataDir)
	require.NoError(t, err)

	claimed, err := store.TryClaim("job-1")
	require.NoError(t, err)
	require.True(t, claimed)
	require.NoError(t, store.Close())

	reopened, err := NewClaimStore(dataDir)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	again, err := reopened.TryClaim("job-1")
	require.NoError(t, err)
	assert.False(t, again, "claim must survive a restart")

	fresh, err := reopened.TryClaim("job-2")
	require.NoError(t, err)
	assert.True(t, fresh)
}
