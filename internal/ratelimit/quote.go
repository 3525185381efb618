package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agrilinklabs/agrilink/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyQuoteClient = "quote:client:%s"

// QuoteLimiter throttles the public quote endpoint per client IP. A nil
// limiter (redis not configured) allows everything.
type QuoteLimiter struct {
	enabled bool

	bucket *TokenBucket
	locker *Locker

	rate  float64
	burst int
}

func NewQuoteLimiter(cfg config.Config) (*QuoteLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.QuoteRate <= 0 || limitCfg.QuoteBurst <= 0 {
		return nil, errors.New("quote rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &QuoteLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		locker:  NewLocker(client),
		rate:    limitCfg.QuoteRate,
		burst:   limitCfg.QuoteBurst,
	}, nil
}

func (l *QuoteLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *QuoteLimiter) AllowClient(ctx context.Context, clientIP string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyQuoteClient, strings.TrimSpace(clientIP)), l.rate, l.burst)
}

// SharedLocker exposes the redis locker so startup jobs can coordinate
// across replicas. Nil when rate limiting is disabled.
func (l *QuoteLimiter) SharedLocker() *Locker {
	if !l.Enabled() {
		return nil
	}
	return l.locker
}
