package purge

import (
	"time"

	"github.com/clipvault/clipvault/src/CVApi/types"
)

// Decision is the outcome of a cooldown check. CooldownUntil is set only on
// deny and carries the stored timestamp unmodified so callers can surface an
// exact retry time.
type Decision struct {
	Allowed       bool
	CooldownUntil *time.Time
}

// CanPurge checks the channel's purge cooldown against the current time. It
// must be called at admission time, never against a cached decision; the
// worker that completes a purge owns setting the next cooldown.
func CanPurge(channel *types.Channel) Decision {
	return canPurgeAt(channel, time.Now())
}

func canPurgeAt(channel *types.Channel, now time.Time) Decision {
	if channel.PurgeCooldown != nil && channel.PurgeCooldown.After(now) {
		return Decision{Allowed: false, CooldownUntil: channel.PurgeCooldown}
	}
	return Decision{Allowed: true}
}
