package purge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clipvault/clipvault/src/CVApi/types"
)

func TestCanPurgeNoCooldown(t *testing.T) {
	dec := canPurgeAt(&types.Channel{}, time.Now())
	require.True(t, dec.Allowed)
	require.Nil(t, dec.CooldownUntil)
}

func TestCanPurgeExpiredCooldown(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	dec := canPurgeAt(&types.Channel{PurgeCooldown: &past}, now)
	require.True(t, dec.Allowed)
}

func TestCanPurgeActiveCooldown(t *testing.T) {
	now := time.Now()
	future := now.Add(30 * time.Minute)
	dec := canPurgeAt(&types.Channel{PurgeCooldown: &future}, now)
	require.False(t, dec.Allowed)
	require.NotNil(t, dec.CooldownUntil)
	// the denial surfaces the stored timestamp exactly
	require.True(t, dec.CooldownUntil.Equal(future))
}

func TestCanPurgeBoundaryIsStrict(t *testing.T) {
	now := time.Now()
	dec := canPurgeAt(&types.Channel{PurgeCooldown: &now}, now)
	require.True(t, dec.Allowed)
}
