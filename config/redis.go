package config

import (
	"context"

	"hotelbooking/services/logger"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis trả về nil, nil khi REDIS_ADDR chưa được cấu hình
func ConnectRedis(ctx context.Context, cfg *Config, log logger.Logger) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUser,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	res, err := rdb.Ping(ctx).Result()
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}

	log.Info("Kết nối Redis thành công: %s", res)
	return rdb, nil
}
