package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const streamPurges = "clipvault.purges"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishPurge enqueues a purge job for the worker and returns the stream
// entry id, which doubles as the job id.
func PublishPurge(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) (string, error) {
	return rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamPurges,
		Values: payload,
	}).Result()
}
