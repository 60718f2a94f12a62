package cleanup

import (
	"context"

	mongodb "loanservicing/internal/pkg/db/mongo"
	redisdb "loanservicing/internal/pkg/db/redis"
	"loanservicing/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

func CleanupResources(ctx context.Context, mongoClient *mongodb.MongoClient, redisClient *redisdb.RedisClient, scheduler *cron.Cron) {
	if scheduler != nil {
		stopCtx := scheduler.Stop()
		select {
		case <-stopCtx.Done():
		case <-ctx.Done():
			logger.CtxWarn(ctx, "Timed out waiting for scheduled jobs to finish")
		}
	}
	if mongoClient != nil && mongoClient.Client != nil {
		if err := mongodb.Disconnect(mongoClient.Client); err != nil {
			logger.CtxError(ctx, "Failed to disconnect from MongoDB", err)
		}
	}
	if redisClient != nil && redisClient.Client != nil {
		if err := redisdb.Disconnect(redisClient.Client); err != nil {
			logger.CtxError(ctx, "Failed to disconnect from Redis", err)
		}
	}
}
