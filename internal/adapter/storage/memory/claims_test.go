package memory

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimStore_TryClaim(t *testing.T) {
	store := NewClaimStore()

	first, err := store.TryClaim("job-1")
	require.NoError(t, err)
	assert.True(t, first)

	second, err := store.TryClaim("job-1")
	require.NoError(t, err)
	assert.False(t, second, "second claim for the same job must fail")

	other, err := store.TryClaim("job-2")
	require.NoError(t, err)
	assert.True(t, other, "different job is claimable")
}

func TestClaimStore_ConcurrentClaims(t *testing.T) {
	store := NewClaimStore()

	const goroutines = 32
	var successes atomic.Int64
	var wg sync.WaitGroup

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.TryClaim("job-1")
			assert.NoError(t, err)
			if ok {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes.Load(), "exactly one goroutine wins the claim")
}

func TestClaimStore_ManyJobs(t *testing.T) {
	store := NewClaimStore()

	for i := range 100 {
		ok, err := store.TryClaim(fmt.Sprintf("job-%d", i))
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
