package routes

import (
	"context"
	"fmt"
	"time"

	"github.com/dhbw-mensa/backend/configs"
	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/services"
	"github.com/dhbw-mensa/backend/ws"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/redis/go-redis/v9"
)

// BuildExternals connects whatever the config enables. The returned close
// func releases the connections.
func BuildExternals(ctx context.Context, cfg *configs.Config, log *logger.Logger) (Externals, func(), error) {
	var ext Externals
	closeFn := func() {}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:        cfg.RedisAddr,
			DialTimeout: 5 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return ext, closeFn, fmt.Errorf("redis ping: %w", err)
		}
		ext.SessionStore = services.NewRedisSessionStore(rdb, "")
		bus := ws.NewRedisBus(rdb, cfg.RedisChannel, log)
		ext.Bus = bus
		closeFn = func() { _ = bus.Close() }
		log.Info("redis enabled", "addr", cfg.RedisAddr, "channel", cfg.RedisChannel)
	}

	if cfg.SESFromEmail == "" && cfg.S3Bucket == "" {
		return ext, closeFn, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		closeFn()
		return ext, func() {}, fmt.Errorf("aws config load failed: %w", err)
	}
	if cfg.SESFromEmail != "" {
		ext.Mailer = services.NewSESMailer(ses.NewFromConfig(awsCfg), cfg.SESFromEmail)
		log.Info("ses mailer enabled", "from", cfg.SESFromEmail)
	}
	if cfg.S3Bucket != "" {
		ext.Images = services.NewS3ImageStore(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3PublicURL)
		log.Info("s3 image store enabled", "bucket", cfg.S3Bucket)
	}
	return ext, closeFn, nil
}
