package db

import (
	"context"

	"menux/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis is nil when no server is reachable; callers fall back to in-process state.
var Redis *redis.Client

func InitRedis(cfg config.RedisConfig) {
	var opt *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			log.Warn().Err(err).Msg("failed to parse Redis URL, running without redis")
			return
		}
		opt = parsed
	} else {
		opt = &redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       0,
		}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Str("addr", opt.Addr).Msg("redis connection failed, running without redis")
		_ = client.Close()
		return
	}
	Redis = client
	log.Info().Str("addr", opt.Addr).Msg("redis connected")
}

func CloseRedis() {
	if Redis != nil {
		_ = Redis.Close()
	}
}
