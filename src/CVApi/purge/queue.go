package purge

import (
	"context"

	"github.com/clipvault/clipvault/src/CVApi/data"
	"github.com/redis/go-redis/v9"
)

// Enqueue publishes a purge job for the worker process and returns the job id.
// Callers must pass the cooldown gate first; the gate and the enqueue are not
// one transaction, which is acceptable because purging is idempotent.
func Enqueue(ctx context.Context, rdb *redis.Client, guildID, channelID, requestedBy string) (string, error) {
	return data.PublishPurge(ctx, rdb, map[string]interface{}{
		"guild_id":     guildID,
		"channel_id":   channelID,
		"requested_by": requestedBy,
	})
}
